package service

import (
	"errors"
	"testing"

	"loan-interest/domain"
	"loan-interest/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockLoanRepository struct {
	*repository.LoanRepositoryMemory
	ReplaceCalled bool
}

func (m *MockLoanRepository) Replace(id domain.LoanID, loan domain.Loan) bool {
	m.ReplaceCalled = true
	return m.LoanRepositoryMemory.Replace(id, loan)
}

func newTestService() (*LoanService, *MockLoanRepository) {
	repo := &MockLoanRepository{LoanRepositoryMemory: repository.NewLoanRepositoryMemory()}
	return NewLoanService(repo), repo
}

func mustCreate(t *testing.T, svc *LoanService, p domain.LoanParams) domain.LoanID {
	t.Helper()
	id, err := svc.Create(p)
	require.NoError(t, err)
	return id
}

func TestLoanService_Create(t *testing.T) {
	svc, _ := newTestService()

	id := mustCreate(t, svc, params(date(2020, 1, 1), date(2020, 1, 5), 1000, 0.05, 0.01))
	assert.Equal(t, domain.LoanID(1), id)

	loan, ok := svc.Get(id)
	require.True(t, ok)
	assert.InDelta(t, 0.6575, loan.TotalInterest, 0.0001)
	require.Len(t, loan.DailyAccruals, 4)
	assert.Equal(t, date(2020, 1, 2), loan.DailyAccruals[0].Date)
	assert.Equal(t, date(2020, 1, 5), loan.DailyAccruals[3].Date)
	assert.Equal(t, "USD", loan.Currency)
}

func TestLoanService_CreateIDsIncrease(t *testing.T) {
	svc, _ := newTestService()

	var last domain.LoanID
	for i := 0; i < 5; i++ {
		id := mustCreate(t, svc, domain.DefaultLoanParams())
		assert.Greater(t, uint32(id), uint32(last))
		last = id
	}
}

type exhaustedRepository struct {
	*repository.LoanRepositoryMemory
}

func (exhaustedRepository) Insert(domain.Loan) (domain.LoanID, error) {
	return 0, repository.ErrLoanIDsExhausted
}

func TestLoanService_CreateFailsWhenIDsExhausted(t *testing.T) {
	svc := NewLoanService(exhaustedRepository{repository.NewLoanRepositoryMemory()})

	_, err := svc.Create(domain.DefaultLoanParams())

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrLoanIDsExhausted))
	assert.Empty(t, svc.List())
}

func TestLoanService_Update(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newTestService()
		mustCreate(t, svc, domain.DefaultLoanParams())
		before := svc.List()

		err := svc.Update(999, domain.DefaultLoanParams())

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrLoanNotFound))
		assert.Contains(t, err.Error(), "999")
		assert.Equal(t, before, svc.List())
	})

	t.Run("known id replaces params and derived fields", func(t *testing.T) {
		svc, repo := newTestService()
		id := mustCreate(t, svc, params(date(2020, 1, 1), date(2020, 1, 5), 1000, 0.05, 0.01))

		err := svc.Update(id, params(date(2021, 3, 1), date(2021, 3, 3), 5000, 0.02, 0))
		require.NoError(t, err)
		assert.True(t, repo.ReplaceCalled)

		loan, ok := svc.Get(id)
		require.True(t, ok)
		assert.Equal(t, 5000.0, loan.Principal)
		assert.Equal(t, ComputeAccrual(loan.LoanParams).TotalInterest, loan.TotalInterest)
		require.Len(t, loan.DailyAccruals, 2)
		assert.Equal(t, date(2021, 3, 2), loan.DailyAccruals[0].Date)
		_, stale := loan.AccrualOn(date(2020, 1, 2))
		assert.False(t, stale)
	})

	t.Run("update to zero length range clears accruals", func(t *testing.T) {
		svc, _ := newTestService()
		id := mustCreate(t, svc, domain.DefaultLoanParams())

		p := domain.DefaultLoanParams()
		p.EndDate = p.StartDate
		require.NoError(t, svc.Update(id, p))

		loan, _ := svc.Get(id)
		assert.Empty(t, loan.DailyAccruals)
		assert.Equal(t, 0.0, loan.TotalInterest)
	})
}

func TestLoanService_Get(t *testing.T) {
	svc, _ := newTestService()

	_, ok := svc.Get(1)
	assert.False(t, ok)

	id := mustCreate(t, svc, domain.DefaultLoanParams())
	loan, ok := svc.Get(id)
	require.True(t, ok)

	loan.DailyAccruals[0].InterestWithMargin = -1
	fresh, _ := svc.Get(id)
	assert.NotEqual(t, -1.0, fresh.DailyAccruals[0].InterestWithMargin)
}

func TestLoanService_List(t *testing.T) {
	svc, _ := newTestService()
	assert.Empty(t, svc.List())

	a := mustCreate(t, svc, domain.DefaultLoanParams())
	b := mustCreate(t, svc, domain.DefaultLoanParams())
	require.NoError(t, svc.Update(a, domain.DefaultLoanParams()))

	entries := svc.List()
	require.Len(t, entries, 2)
	assert.Equal(t, a, entries[0].ID)
	assert.Equal(t, b, entries[1].ID)
}
