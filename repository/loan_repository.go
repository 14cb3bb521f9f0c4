package repository

import (
	"errors"

	"loan-interest/domain"
)

var ErrLoanIDsExhausted = errors.New("loan identifiers exhausted")

// LoanRepository stores loan records under registry-assigned identifiers.
type LoanRepository interface {
	Insert(loan domain.Loan) (domain.LoanID, error)
	Replace(id domain.LoanID, loan domain.Loan) bool
	Get(id domain.LoanID) (domain.Loan, bool)
	List() []domain.LoanEntry
}
