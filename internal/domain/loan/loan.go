package loan

import (
	"fmt"
	"time"

	"loan-engine/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type Money = decimal.Decimal

type Status string

const (
	StatusPending Status = "PENDING"
	StatusActive  Status = "ACTIVE"
	StatusPaid    Status = "PAID"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)

	// Balances within a cent of zero are snapped to exactly zero and the
	// loan is considered fully paid.
	paidOffThreshold = decimal.NewFromFloat(0.01)
)

type Repayment struct {
	Date   time.Time
	Amount Money
}

type Loan struct {
	ID         int64
	Principal  Money
	TermMonths int

	// AnnualInterestRate is in percent, e.g. 5.0 means 5% per year.
	AnnualInterestRate Money

	Status    Status
	StartDate time.Time

	Balance       Money
	InterestPaid  Money
	PrincipalPaid Money

	// Repayments is append-only; insertion order is the order the payments
	// were made, not validated against calendar order.
	Repayments []Repayment
}

// NewLoan creates a pending loan application. The id is assigned by the
// caller (normally the service's id sequence).
func NewLoan(id int64, principal Money, termMonths int, annualInterestRate Money) (*Loan, error) {
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be positive, got %s", apperrors.ErrInvalidArgument, principal)
	}
	if termMonths <= 0 {
		return nil, fmt.Errorf("%w: term months must be positive, got %d", apperrors.ErrInvalidArgument, termMonths)
	}
	if !annualInterestRate.IsPositive() {
		return nil, fmt.Errorf("%w: annual interest rate must be positive, got %s", apperrors.ErrInvalidArgument, annualInterestRate)
	}

	return &Loan{
		ID:                 id,
		Principal:          principal,
		TermMonths:         termMonths,
		AnnualInterestRate: annualInterestRate,
		Status:             StatusPending,
		Balance:            principal,
		InterestPaid:       decimal.Zero,
		PrincipalPaid:      decimal.Zero,
	}, nil
}

// MonthlyRate is the periodic accrual rate: annual percent / 100 / 12.
func (l *Loan) MonthlyRate() Money {
	return l.AnnualInterestRate.Div(hundred).Div(twelve)
}

// Approve activates a pending loan, stamping its start date and
// re-affirming the balance at the original principal.
func (l *Loan) Approve(today time.Time) error {
	if l.Status != StatusPending {
		return apperrors.NewStateError("approve", string(l.Status))
	}

	l.Status = StatusActive
	l.StartDate = today
	l.Balance = l.Principal
	return nil
}

// MakeRepayment allocates the amount between interest and principal.
// Every repayment is charged exactly one month's interest on the
// pre-payment balance; the payment date is recorded but never used for
// accrual. A failed repayment leaves the loan untouched.
func (l *Loan) MakeRepayment(date time.Time, amount Money) error {
	if l.Status != StatusActive {
		return apperrors.NewStateError("make repayment on", string(l.Status))
	}

	interestDue := l.Balance.Mul(l.MonthlyRate())
	totalDue := l.Balance.Add(interestDue)

	if amount.GreaterThan(totalDue) {
		return apperrors.NewOverpaymentError(amount, totalDue)
	}

	principalPortion := decimal.Min(amount.Sub(interestDue), l.Balance)
	if interestDue.GreaterThan(amount) {
		// Payment does not cover even the accrued interest: all of it is
		// interest and the balance stays put.
		interestDue = amount
		principalPortion = decimal.Zero
	}

	l.InterestPaid = l.InterestPaid.Add(interestDue)
	l.PrincipalPaid = l.PrincipalPaid.Add(principalPortion)
	l.Balance = l.Balance.Sub(principalPortion)
	l.Repayments = append(l.Repayments, Repayment{Date: date, Amount: amount})

	if l.Balance.Abs().LessThan(paidOffThreshold) {
		l.Balance = decimal.Zero
		l.Status = StatusPaid
	}

	return nil
}

func (l *Loan) GetStatus() Status {
	return l.Status
}

type PaymentSummary struct {
	TotalPaid        Money
	InterestPaid     Money
	PrincipalPaid    Money
	RemainingBalance Money
}

// TotalPaid sums the recorded repayments and reports the cumulative
// interest/principal split alongside the outstanding balance.
func (l *Loan) TotalPaid() PaymentSummary {
	total := decimal.Zero
	for _, r := range l.Repayments {
		total = total.Add(r.Amount)
	}

	return PaymentSummary{
		TotalPaid:        total,
		InterestPaid:     l.InterestPaid,
		PrincipalPaid:    l.PrincipalPaid,
		RemainingBalance: l.Balance,
	}
}

// PayoffAmount is what would close the loan with a single payment: the
// outstanding balance plus one month's interest on it.
func (l *Loan) PayoffAmount() (Money, error) {
	if l.Status != StatusActive {
		return decimal.Zero, apperrors.NewStateError("get payoff amount for", string(l.Status))
	}

	return l.Balance.Add(l.Balance.Mul(l.MonthlyRate())), nil
}
