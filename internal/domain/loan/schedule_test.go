package loan

import (
	"testing"
	"time"

	"loan-engine/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmortizationSchedule(t *testing.T) {
	startDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("should reject a pending loan", func(t *testing.T) {
		l, err := NewLoan(1, d("10000"), 12, d("5.0"))
		require.NoError(t, err)

		_, err = l.AmortizationSchedule()
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	})

	t.Run("should produce equal flat installments at zero rate", func(t *testing.T) {
		// Zero-rate loans cannot pass through the application path, but the
		// generator still guards the annuity formula's zero denominator.
		l := &Loan{
			Principal:          d("10000"),
			TermMonths:         12,
			AnnualInterestRate: decimal.Zero,
			Status:             StatusActive,
			StartDate:          startDate,
			Balance:            d("10000"),
		}

		schedule, err := l.AmortizationSchedule()
		require.NoError(t, err)
		require.Len(t, schedule, 12)

		flat := d("10000").Div(d("12"))
		totalPaid := decimal.Zero
		for i, entry := range schedule {
			assert.Equal(t, i+1, entry.Month)
			assert.True(t, entry.Interest.IsZero())
			if i < 11 {
				assert.True(t, entry.Payment.Equal(flat))
			}
			totalPaid = totalPaid.Add(entry.Payment)
		}

		assert.True(t, schedule[11].RemainingBalance.Equal(decimal.Zero))
		assert.InDelta(t, 10000, totalPaid.InexactFloat64(), 0.01)
	})

	t.Run("should amortize a positive-rate loan to zero", func(t *testing.T) {
		l := activeLoan(t, "10000", 12, "5.0")

		schedule, err := l.AmortizationSchedule()
		require.NoError(t, err)
		require.Len(t, schedule, 12)

		// Standard annuity payment for 10000 at 5% over 12 months.
		assert.InDelta(t, 856.07, schedule[0].Payment.InexactFloat64(), 0.01)
		assert.InDelta(t, 41.67, schedule[0].Interest.InexactFloat64(), 0.01)

		totalPaid := decimal.Zero
		totalPrincipal := decimal.Zero
		prevInterest := schedule[0].Interest
		for i, entry := range schedule {
			totalPaid = totalPaid.Add(entry.Payment)
			totalPrincipal = totalPrincipal.Add(entry.Principal)
			if i > 0 {
				assert.True(t, entry.Interest.LessThan(prevInterest), "interest should decline month over month")
				prevInterest = entry.Interest
			}
		}

		assert.True(t, schedule[11].RemainingBalance.Equal(decimal.Zero))
		assert.True(t, totalPaid.GreaterThan(d("10000")), "total payments must exceed principal at a positive rate")
		assert.InDelta(t, 10000, totalPrincipal.InexactFloat64(), 0.01)
	})

	t.Run("should collapse a single-installment term to one balloon payment", func(t *testing.T) {
		l := activeLoan(t, "1000", 1, "5.0")

		schedule, err := l.AmortizationSchedule()
		require.NoError(t, err)
		require.Len(t, schedule, 1)

		assert.True(t, schedule[0].Principal.Equal(d("1000")))
		assert.InDelta(t, 1004.17, schedule[0].Payment.InexactFloat64(), 0.005)
		assert.True(t, schedule[0].RemainingBalance.Equal(decimal.Zero))
	})

	t.Run("should be a projection independent of repayment history", func(t *testing.T) {
		l := activeLoan(t, "10000", 12, "5.0")
		before, err := l.AmortizationSchedule()
		require.NoError(t, err)

		require.NoError(t, l.MakeRepayment(startDate.AddDate(0, 1, 0), d("2000")))

		after, err := l.AmortizationSchedule()
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestDueDates(t *testing.T) {
	t.Run("should advance month by month from the start date", func(t *testing.T) {
		l, err := NewLoan(1, d("10000"), 12, d("5.0"))
		require.NoError(t, err)
		require.NoError(t, l.Approve(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))

		schedule, err := l.AmortizationSchedule()
		require.NoError(t, err)

		assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), schedule[0].DueDate)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), schedule[11].DueDate)
	})

	t.Run("should clamp end-of-month start days to the 28th", func(t *testing.T) {
		l, err := NewLoan(1, d("10000"), 3, d("5.0"))
		require.NoError(t, err)
		require.NoError(t, l.Approve(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)))

		schedule, err := l.AmortizationSchedule()
		require.NoError(t, err)

		assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), schedule[0].DueDate)
		assert.Equal(t, time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC), schedule[1].DueDate)
		assert.Equal(t, time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC), schedule[2].DueDate)
	})

	t.Run("should roll over the year boundary", func(t *testing.T) {
		l, err := NewLoan(1, d("10000"), 2, d("5.0"))
		require.NoError(t, err)
		require.NoError(t, l.Approve(time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)))

		schedule, err := l.AmortizationSchedule()
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), schedule[0].DueDate)
		assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), schedule[1].DueDate)
	})
}

func TestNextDue(t *testing.T) {
	t.Run("should reject a pending loan", func(t *testing.T) {
		l, err := NewLoan(1, d("10000"), 12, d("5.0"))
		require.NoError(t, err)

		_, err = l.NextDue()
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	})

	t.Run("should return the first installment before any payment", func(t *testing.T) {
		l := activeLoan(t, "10000", 12, "5.0")

		next, err := l.NextDue()
		require.NoError(t, err)
		assert.False(t, next.AllPaid)
		assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), next.DueDate)
		assert.InDelta(t, 856.07, next.PaymentAmount.InexactFloat64(), 0.01)
	})

	t.Run("should advance one installment per recorded repayment", func(t *testing.T) {
		l := activeLoan(t, "10000", 12, "5.0")

		first, err := l.NextDue()
		require.NoError(t, err)

		require.NoError(t, l.MakeRepayment(first.DueDate, first.PaymentAmount))

		second, err := l.NextDue()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), second.DueDate)
		assert.NotEqual(t, first.DueDate, second.DueDate)
	})

	t.Run("should report all paid when repayments cover the whole term", func(t *testing.T) {
		l := activeLoan(t, "10000", 2, "5.0")

		// Sub-interest payments keep the loan active while consuming
		// scheduled installments one per repayment.
		date := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 2; i++ {
			require.NoError(t, l.MakeRepayment(date.AddDate(0, i, 0), d("10")))
		}

		next, err := l.NextDue()
		require.NoError(t, err)
		assert.True(t, next.AllPaid)
		assert.True(t, next.PaymentAmount.IsZero())
	})
}
