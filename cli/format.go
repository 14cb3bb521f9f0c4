package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"loan-interest/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// amount renders v rounded to cents followed by the full float value, so
// nothing shown to the user is rounded early.
func amount(v float64, currency string) string {
	return fmt.Sprintf("%s %s (%s)", decimal.NewFromFloat(v).StringFixed(2), currency, exact(v))
}

func exact(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// percent renders a fractional rate as a percentage without float noise.
func percent(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(hundred).String()
}

func writeLoan(w io.Writer, loan domain.Loan) {
	fmt.Fprintf(w, "Start Date:      %s\n", loan.StartDate.Format(domain.DateLayout))
	fmt.Fprintf(w, "End Date:        %s\n", loan.EndDate.Format(domain.DateLayout))
	fmt.Fprintf(w, "Loan Amount:     %s %s\n", exact(loan.Principal), loan.Currency)
	fmt.Fprintf(w, "Base Rate:       %s%%\n", percent(loan.BaseRate))
	fmt.Fprintf(w, "Margin:          %s%%\n", percent(loan.Margin))
	fmt.Fprintf(w, "Total Interest:  %s\n", amount(loan.TotalInterest, loan.Currency))

	if len(loan.DailyAccruals) == 0 {
		fmt.Fprintln(w, "No daily accruals.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Day\tDate\tInterest\tInterest (no margin)")
	for _, a := range loan.DailyAccruals {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			a.DaysElapsed,
			a.Date.Format(domain.DateLayout),
			exact(a.InterestWithMargin),
			exact(a.InterestWithoutMargin),
		)
	}
	tw.Flush()
}
