package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("loan not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrInvalidState = errors.New("invalid loan state")

	ErrOverpayment = errors.New("payment exceeds total due")
)

type StateError struct {
	Operation string
	Status    string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s loan with status %s", e.Operation, e.Status)
}

func NewStateError(operation, status string) error {

	return fmt.Errorf("%w: %w", ErrInvalidState, &StateError{Operation: operation, Status: status})
}

type OverpaymentError struct {
	Attempted decimal.Decimal
	TotalDue  decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment amount %s exceeds total due %s", e.Attempted.StringFixed(2), e.TotalDue.StringFixed(2))
}

func NewOverpaymentError(attempted, totalDue decimal.Decimal) error {

	return fmt.Errorf("%w: %w", ErrOverpayment, &OverpaymentError{Attempted: attempted, TotalDue: totalDue})
}
