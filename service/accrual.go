package service

import (
	"loan-interest/domain"
)

const daysPerYear = 365.0

// Accrual holds the figures derived from a loan's parameters.
type Accrual struct {
	TotalInterest float64
	DailyAccruals []domain.DailyAccrual
}

// ComputeAccrual calculates simple daily interest for every elapsed day after
// the start date up to and including the end date.
//
// The total is principal * daily rate * days rather than the sum of the daily
// figures, so a negative day count yields a negative total with no entries.
func ComputeAccrual(p domain.LoanParams) Accrual {
	days := domain.DaysBetween(p.StartDate, p.EndDate)
	dailyRate := (p.BaseRate + p.Margin) / daysPerYear
	dailyRateNoMargin := p.BaseRate / daysPerYear

	accruals := make([]domain.DailyAccrual, 0, max(days, 0))
	start := domain.DateOf(p.StartDate)
	for day := 1; day <= days; day++ {
		accruals = append(accruals, domain.DailyAccrual{
			Date:                  start.AddDate(0, 0, day),
			InterestWithMargin:    p.Principal * dailyRate,
			InterestWithoutMargin: p.Principal * dailyRateNoMargin,
			DaysElapsed:           day,
		})
	}

	return Accrual{
		TotalInterest: p.Principal * dailyRate * float64(days),
		DailyAccruals: accruals,
	}
}

// NewLoan builds a loan record whose derived fields are computed from params.
func NewLoan(params domain.LoanParams) domain.Loan {
	accrual := ComputeAccrual(params)
	return domain.Loan{
		LoanParams:    params,
		TotalInterest: accrual.TotalInterest,
		DailyAccruals: accrual.DailyAccruals,
	}
}
