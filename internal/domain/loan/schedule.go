package loan

import (
	"time"

	"loan-engine/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

type ScheduleEntry struct {
	Month            int
	DueDate          time.Time
	Payment          Money
	Principal        Money
	Interest         Money
	RemainingBalance Money
}

type NextDuePayment struct {
	DueDate       time.Time
	PaymentAmount Money
	Principal     Money
	Interest      Money

	// AllPaid marks that every scheduled installment already has a
	// matching repayment on record.
	AllPaid bool
}

// AmortizationSchedule projects the fixed-payment schedule from the
// original terms. It deliberately ignores the repayment history: the
// projection is what the loan looked like on the day it was approved.
func (l *Loan) AmortizationSchedule() ([]ScheduleEntry, error) {
	if l.Status == StatusPending {
		return nil, apperrors.NewStateError("generate amortization schedule for", string(l.Status))
	}

	monthlyRate := l.MonthlyRate()
	term := decimal.NewFromInt(int64(l.TermMonths))

	// Annuity payment P*r*(1+r)^n / ((1+r)^n - 1). The flat division
	// covers the zero-rate case, where the annuity denominator is zero,
	// and the single-installment case.
	var payment Money
	if monthlyRate.IsPositive() && l.TermMonths > 1 {
		compound := one.Add(monthlyRate).Pow(term)
		payment = l.Principal.Mul(monthlyRate).Mul(compound).Div(compound.Sub(one))
	} else {
		payment = l.Principal.Div(term)
	}

	schedule := make([]ScheduleEntry, 0, l.TermMonths)
	remaining := l.Principal

	for month := 1; month <= l.TermMonths; month++ {
		interest := remaining.Mul(monthlyRate)
		principal := payment.Sub(interest)

		// The closing installment clears whatever balance is left, so the
		// schedule lands on exactly zero despite rounding drift.
		if month == l.TermMonths {
			principal = remaining
			payment = principal.Add(interest)
		}

		remaining = remaining.Sub(principal)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, ScheduleEntry{
			Month:            month,
			DueDate:          dueDate(l.StartDate, month),
			Payment:          payment,
			Principal:        principal,
			Interest:         interest,
			RemainingBalance: remaining,
		})
	}

	return schedule, nil
}

// dueDate adds the given number of calendar months to start, clamping the
// day of month to 28 so every month length is safe. time.AddDate is
// unsuitable here: it normalizes overflow, so Jan 31 plus one month would
// become Mar 3 instead of Feb 28.
func dueDate(start time.Time, months int) time.Time {
	totalMonths := int(start.Month()) - 1 + months
	year := start.Year() + totalMonths/12
	month := time.Month(totalMonths%12 + 1)

	day := start.Day()
	if day > 28 {
		day = 28
	}

	return time.Date(year, month, day, 0, 0, 0, 0, start.Location())
}

// NextDue reports the upcoming scheduled installment, assuming each
// recorded repayment consumed exactly one installment regardless of its
// actual amount.
func (l *Loan) NextDue() (*NextDuePayment, error) {
	if l.Status != StatusActive {
		return nil, apperrors.NewStateError("get next due payment for", string(l.Status))
	}

	schedule, err := l.AmortizationSchedule()
	if err != nil {
		return nil, err
	}

	made := len(l.Repayments)
	if made >= len(schedule) {
		return &NextDuePayment{AllPaid: true}, nil
	}

	next := schedule[made]
	return &NextDuePayment{
		DueDate:       next.DueDate,
		PaymentAmount: next.Payment,
		Principal:     next.Principal,
		Interest:      next.Interest,
	}, nil
}
