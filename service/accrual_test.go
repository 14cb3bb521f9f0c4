package service

import (
	"testing"
	"time"

	"loan-interest/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func params(start, end time.Time, principal, base, margin float64) domain.LoanParams {
	return domain.LoanParams{
		StartDate: start,
		EndDate:   end,
		Principal: principal,
		Currency:  "USD",
		BaseRate:  base,
		Margin:    margin,
	}
}

func TestComputeAccrual_FourDayLoan(t *testing.T) {
	principal, base, margin := 1000.0, 0.05, 0.01
	acc := ComputeAccrual(params(date(2020, 1, 1), date(2020, 1, 5), principal, base, margin))

	assert.Equal(t, principal*((base+margin)/365)*4, acc.TotalInterest)
	assert.InDelta(t, 0.6575, acc.TotalInterest, 0.0001)

	require.Len(t, acc.DailyAccruals, 4)
	for i, a := range acc.DailyAccruals {
		assert.Equal(t, date(2020, 1, 2+i), a.Date)
		assert.Equal(t, i+1, a.DaysElapsed)
		assert.InDelta(t, 0.16438, a.InterestWithMargin, 0.00001)
		assert.InDelta(t, 0.13699, a.InterestWithoutMargin, 0.00001)
	}
}

func TestComputeAccrual_SameDay(t *testing.T) {
	acc := ComputeAccrual(params(date(2020, 1, 1), date(2020, 1, 1), 1000, 0.05, 0.01))

	assert.Empty(t, acc.DailyAccruals)
	assert.Equal(t, 0.0, acc.TotalInterest)
}

func TestComputeAccrual_EndBeforeStart(t *testing.T) {
	principal, base, margin := 1000.0, 0.05, 0.01
	acc := ComputeAccrual(params(date(2020, 1, 5), date(2020, 1, 1), principal, base, margin))

	assert.Empty(t, acc.DailyAccruals)
	assert.Equal(t, principal*((base+margin)/365)*-4, acc.TotalInterest)
	assert.Less(t, acc.TotalInterest, 0.0)
}

func TestComputeAccrual_Properties(t *testing.T) {
	for _, tc := range []struct {
		name      string
		start     time.Time
		end       time.Time
		principal float64
		base      float64
		margin    float64
	}{
		{"one year leap", date(2020, 1, 1), date(2021, 1, 1), 25000, 0.035, 0.015},
		{"month end", date(2021, 1, 31), date(2021, 3, 1), 1e6, 0.0425, 0},
		{"zero principal", date(2022, 6, 1), date(2022, 6, 30), 0, 0.05, 0.01},
		{"negative margin", date(2023, 3, 1), date(2023, 3, 11), 500, 0.05, -0.01},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := params(tc.start, tc.end, tc.principal, tc.base, tc.margin)
			acc := ComputeAccrual(p)
			days := domain.DaysBetween(tc.start, tc.end)

			require.Len(t, acc.DailyAccruals, days)
			assert.Equal(t, tc.principal*((tc.base+tc.margin)/365)*float64(days), acc.TotalInterest)

			sum := 0.0
			for k, a := range acc.DailyAccruals {
				assert.Equal(t, k+1, a.DaysElapsed)
				assert.Equal(t, tc.start.AddDate(0, 0, k+1), a.Date)
				sum += a.InterestWithMargin
			}
			assert.InDelta(t, acc.TotalInterest, sum, 1e-6)
			assert.Equal(t, tc.end, acc.DailyAccruals[days-1].Date)
		})
	}
}

func TestComputeAccrual_LongRangeEndsOnEndDate(t *testing.T) {
	start, end := date(2000, 1, 1), date(2400, 1, 1)
	acc := ComputeAccrual(params(start, end, 1000, 0.05, 0.01))

	require.Len(t, acc.DailyAccruals, 146097)
	last := acc.DailyAccruals[len(acc.DailyAccruals)-1]
	assert.Equal(t, end, last.Date)
	assert.Equal(t, 146097, last.DaysElapsed)
}

func TestNewLoan(t *testing.T) {
	p := params(date(2020, 1, 1), date(2020, 1, 3), 1000, 0.05, 0.01)
	loan := NewLoan(p)

	assert.Equal(t, p, loan.LoanParams)
	assert.Len(t, loan.DailyAccruals, 2)
	assert.Equal(t, ComputeAccrual(p).TotalInterest, loan.TotalInterest)
}
