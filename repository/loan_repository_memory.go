package repository

import (
	"math"
	"sort"
	"sync"

	"loan-interest/domain"
)

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
// Records live for the lifetime of the process.
type LoanRepositoryMemory struct {
	mu     sync.RWMutex
	data   map[domain.LoanID]domain.Loan
	nextID domain.LoanID
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		data:   make(map[domain.LoanID]domain.Loan),
		nextID: 1,
	}
}

// Insert stores the loan under the next identifier. Identifiers are never
// reused; once the counter reaches math.MaxUint32 Insert refuses new loans.
func (r *LoanRepositoryMemory) Insert(loan domain.Loan) (domain.LoanID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nextID == math.MaxUint32 {
		return 0, ErrLoanIDsExhausted
	}
	id := r.nextID
	r.data[id] = loan.Clone()
	r.nextID++
	return id, nil
}

// Replace swaps the stored record for id. It reports false when id is unknown.
func (r *LoanRepositoryMemory) Replace(id domain.LoanID, loan domain.Loan) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return false
	}
	r.data[id] = loan.Clone()
	return true
}

func (r *LoanRepositoryMemory) Get(id domain.LoanID) (domain.Loan, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loan, ok := r.data[id]
	if !ok {
		return domain.Loan{}, false
	}
	return loan.Clone(), true
}

// List returns a snapshot of every record ordered by ascending identifier.
func (r *LoanRepositoryMemory) List() []domain.LoanEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]domain.LoanEntry, 0, len(r.data))
	for id, loan := range r.data {
		entries = append(entries, domain.LoanEntry{ID: id, Loan: loan.Clone()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}
