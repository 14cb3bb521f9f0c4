package service

import (
	"errors"
	"fmt"

	"loan-interest/domain"
	"loan-interest/repository"

	log "github.com/sirupsen/logrus"
)

var ErrLoanNotFound = errors.New("loan not found")

// LoanService is the loan registry. Every stored loan has derived figures
// consistent with its parameters.
type LoanService struct {
	repo repository.LoanRepository
}

// NewLoanService creates a new LoanService with the given repository.
func NewLoanService(repo repository.LoanRepository) *LoanService {
	return &LoanService{repo: repo}
}

// Create stores a new loan built from params and returns its identifier.
// It fails only when the identifier space is exhausted.
func (s *LoanService) Create(params domain.LoanParams) (domain.LoanID, error) {
	loan := NewLoan(params)
	id, err := s.repo.Insert(loan)
	if err != nil {
		log.WithError(err).Error("Failed to store loan")
		return 0, fmt.Errorf("create loan: %w", err)
	}

	log.WithFields(log.Fields{
		"loan_id":        id,
		"principal":      params.Principal,
		"currency":       params.Currency,
		"days":           len(loan.DailyAccruals),
		"total_interest": loan.TotalInterest,
	}).Info("Loan created")

	return id, nil
}

// Update replaces the parameters of an existing loan and recomputes its
// accruals. The stored record is swapped in one step.
func (s *LoanService) Update(id domain.LoanID, params domain.LoanParams) error {
	loan := NewLoan(params)
	if !s.repo.Replace(id, loan) {
		log.WithField("loan_id", id).Warn("Update requested for unknown loan")
		return fmt.Errorf("loan with ID %d: %w", id, ErrLoanNotFound)
	}

	log.WithFields(log.Fields{
		"loan_id":        id,
		"principal":      params.Principal,
		"currency":       params.Currency,
		"days":           len(loan.DailyAccruals),
		"total_interest": loan.TotalInterest,
	}).Info("Loan updated")

	return nil
}

// Get returns a copy of the loan stored under id.
func (s *LoanService) Get(id domain.LoanID) (domain.Loan, bool) {
	return s.repo.Get(id)
}

// List returns every loan ordered by ascending identifier.
func (s *LoanService) List() []domain.LoanEntry {
	return s.repo.List()
}
