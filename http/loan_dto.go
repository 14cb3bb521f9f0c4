package http

import (
	"fmt"

	"loan-interest/domain"
)

// loanRequest is the body of create and update requests. Rates are given in
// percent and converted to fractions before reaching the registry.
type loanRequest struct {
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Principal       float64 `json:"principal"`
	Currency        string  `json:"currency"`
	BaseRatePercent float64 `json:"base_rate_percent"`
	MarginPercent   float64 `json:"margin_percent"`
}

func (r loanRequest) toParams() (domain.LoanParams, error) {
	start, err := domain.ParseDate(r.StartDate)
	if err != nil {
		return domain.LoanParams{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := domain.ParseDate(r.EndDate)
	if err != nil {
		return domain.LoanParams{}, fmt.Errorf("end_date: %w", err)
	}
	params := domain.LoanParams{
		StartDate: start,
		EndDate:   end,
		Principal: r.Principal,
		Currency:  r.Currency,
		BaseRate:  r.BaseRatePercent / 100,
		Margin:    r.MarginPercent / 100,
	}
	if err := params.Validate(); err != nil {
		return domain.LoanParams{}, err
	}
	return params, nil
}

type createLoanResponse struct {
	ID domain.LoanID `json:"id"`
}

type dailyAccrualResponse struct {
	Date                  string  `json:"date"`
	DaysElapsed           int     `json:"days_elapsed"`
	InterestWithMargin    float64 `json:"interest_with_margin"`
	InterestWithoutMargin float64 `json:"interest_without_margin"`
}

type loanResponse struct {
	ID            domain.LoanID          `json:"id"`
	StartDate     string                 `json:"start_date"`
	EndDate       string                 `json:"end_date"`
	Principal     float64                `json:"principal"`
	Currency      string                 `json:"currency"`
	BaseRate      float64                `json:"base_rate"`
	Margin        float64                `json:"margin"`
	TotalInterest float64                `json:"total_interest"`
	DailyAccruals []dailyAccrualResponse `json:"daily_accruals"`
}

func newLoanResponse(id domain.LoanID, loan domain.Loan) loanResponse {
	accruals := make([]dailyAccrualResponse, 0, len(loan.DailyAccruals))
	for _, a := range loan.DailyAccruals {
		accruals = append(accruals, dailyAccrualResponse{
			Date:                  a.Date.Format(domain.DateLayout),
			DaysElapsed:           a.DaysElapsed,
			InterestWithMargin:    a.InterestWithMargin,
			InterestWithoutMargin: a.InterestWithoutMargin,
		})
	}
	return loanResponse{
		ID:            id,
		StartDate:     loan.StartDate.Format(domain.DateLayout),
		EndDate:       loan.EndDate.Format(domain.DateLayout),
		Principal:     loan.Principal,
		Currency:      loan.Currency,
		BaseRate:      loan.BaseRate,
		Margin:        loan.Margin,
		TotalInterest: loan.TotalInterest,
		DailyAccruals: accruals,
	}
}
