package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted by the input layers.
const DateLayout = "2006-01-02"

var ErrInvalidLoanParams = errors.New("invalid loan parameters")

type LoanID uint32

// LoanParams is the caller-supplied part of a loan. BaseRate and Margin are
// annual fractional rates (0.05 = 5%).
type LoanParams struct {
	StartDate time.Time
	EndDate   time.Time
	Principal float64
	Currency  string
	BaseRate  float64
	Margin    float64
}

// DailyAccrual is the interest accrued on one elapsed day of a loan.
type DailyAccrual struct {
	Date                  time.Time
	InterestWithMargin    float64
	InterestWithoutMargin float64
	DaysElapsed           int
}

// Loan is a loan record together with its derived accrual figures.
// DailyAccruals is ordered by ascending Date.
type Loan struct {
	LoanParams
	TotalInterest float64
	DailyAccruals []DailyAccrual
}

type LoanEntry struct {
	ID   LoanID
	Loan Loan
}

// DefaultLoanParams returns the values offered to the user when a new loan
// is entered.
func DefaultLoanParams() LoanParams {
	return LoanParams{
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC),
		Principal: 1000,
		Currency:  "USD",
		BaseRate:  0.05,
		Margin:    0.01,
	}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the signed number of whole calendar days from start to end.
// It works on Unix seconds because time.Duration saturates at about 292 years.
func DaysBetween(start, end time.Time) int {
	return int((DateOf(end).Unix() - DateOf(start).Unix()) / secondsPerDay)
}

// Validate checks the parameters the way the input layers require before a
// loan reaches the registry.
func (p LoanParams) Validate() error {
	if p.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidLoanParams)
	}
	if p.EndDate.IsZero() {
		return fmt.Errorf("%w: end date is required", ErrInvalidLoanParams)
	}
	if DateOf(p.EndDate).Before(DateOf(p.StartDate)) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidLoanParams,
			p.EndDate.Format(DateLayout), p.StartDate.Format(DateLayout))
	}
	if !isFinite(p.Principal) || p.Principal < 0 {
		return fmt.Errorf("%w: principal must be a non-negative number", ErrInvalidLoanParams)
	}
	if strings.TrimSpace(p.Currency) == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidLoanParams)
	}
	if !isFinite(p.BaseRate) {
		return fmt.Errorf("%w: base rate must be a finite number", ErrInvalidLoanParams)
	}
	if !isFinite(p.Margin) {
		return fmt.Errorf("%w: margin must be a finite number", ErrInvalidLoanParams)
	}
	dailyInterest := p.Principal * ((p.BaseRate + p.Margin) / 365)
	if !isFinite(dailyInterest) || !isFinite(dailyInterest*float64(DaysBetween(p.StartDate, p.EndDate))) {
		return fmt.Errorf("%w: interest for this principal and rate overflows", ErrInvalidLoanParams)
	}
	return nil
}

// AccrualOn returns the accrual recorded for the given calendar date.
func (l Loan) AccrualOn(date time.Time) (DailyAccrual, bool) {
	date = DateOf(date)
	i := sort.Search(len(l.DailyAccruals), func(i int) bool {
		return !l.DailyAccruals[i].Date.Before(date)
	})
	if i < len(l.DailyAccruals) && l.DailyAccruals[i].Date.Equal(date) {
		return l.DailyAccruals[i], true
	}
	return DailyAccrual{}, false
}

// Clone returns a copy that shares no memory with l.
func (l Loan) Clone() Loan {
	c := l
	if l.DailyAccruals != nil {
		c.DailyAccruals = make([]DailyAccrual, len(l.DailyAccruals))
		copy(c.DailyAccruals, l.DailyAccruals)
	}
	return c
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
