package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-engine/internal/infrastructure/monitoring"
	"loan-engine/internal/pkg/apperrors"
	"loan-engine/internal/pkg/clock"
	"loan-engine/internal/pkg/idgen"
)

type LoanService interface {
	Apply(ctx context.Context, principal Money, termMonths int, annualInterestRate Money) (*Loan, error)

	Approve(ctx context.Context, loanID int64) (*Loan, error)

	MakeRepayment(ctx context.Context, loanID int64, date time.Time, amount Money) error

	GetStatus(ctx context.Context, loanID int64) (Status, error)

	GetTotalPaid(ctx context.Context, loanID int64) (PaymentSummary, error)

	GetSchedule(ctx context.Context, loanID int64) ([]ScheduleEntry, error)

	GetNextDue(ctx context.Context, loanID int64) (*NextDuePayment, error)

	GetPayoffAmount(ctx context.Context, loanID int64) (Money, error)
}

type loanServiceImpl struct {
	repo   Repository
	ids    *idgen.Sequence
	clock  clock.Clock
	logger *slog.Logger
}

func NewLoanService(repo Repository, ids *idgen.Sequence, clk clock.Clock, logger *slog.Logger) LoanService {
	return &loanServiceImpl{repo: repo, ids: ids, clock: clk, logger: logger}
}

func (s *loanServiceImpl) Apply(ctx context.Context, principal Money, termMonths int, annualInterestRate Money) (*Loan, error) {
	s.logger.Info("Processing loan application",
		"principal", principal.String(), "termMonths", termMonths, "annualInterestRate", annualInterestRate.String())

	l, err := NewLoan(s.ids.Next(), principal, termMonths, annualInterestRate)
	if err != nil {
		s.logger.Error("Loan application rejected", "error", err)
		return nil, err
	}

	if err := s.repo.Save(ctx, l); err != nil {
		s.logger.Error("Failed to store loan", "loanID", l.ID, "error", err)
		return nil, fmt.Errorf("failed to store loan: %w", err)
	}

	monitoring.RecordApplication()
	s.logger.Info("Loan application accepted", "loanID", l.ID)
	return l, nil
}

func (s *loanServiceImpl) Approve(ctx context.Context, loanID int64) (*Loan, error) {
	s.logger.Info("Approving loan", "loanID", loanID)

	l, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if err := l.Approve(s.clock.Today()); err != nil {
		s.logger.Error("Loan approval rejected", "loanID", loanID, "status", string(l.Status), "error", err)
		return nil, err
	}

	monitoring.RecordApproval()
	s.logger.Info("Loan approved", "loanID", loanID, "startDate", l.StartDate.Format(time.DateOnly))
	return l, nil
}

func (s *loanServiceImpl) MakeRepayment(ctx context.Context, loanID int64, date time.Time, amount Money) error {
	s.logger.Info("Making repayment", "loanID", loanID, "amount", amount.String())

	// The entity trusts its caller on this one; the service is the boundary.
	if !amount.IsPositive() {
		monitoring.RecordRepayment("failure_amount")
		s.logger.Error("Rejected non-positive repayment amount", "loanID", loanID, "amount", amount.String())
		return fmt.Errorf("%w: repayment amount must be positive, got %s", apperrors.ErrInvalidArgument, amount)
	}

	l, err := s.getLoan(ctx, loanID)
	if err != nil {
		monitoring.RecordRepayment("failure_not_found")
		return err
	}

	if err := l.MakeRepayment(date, amount); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrOverpayment):
			monitoring.RecordRepayment("failure_overpayment")
			s.logger.Error("Repayment exceeds total due", "loanID", loanID, "amount", amount.String(), "error", err)
		case errors.Is(err, apperrors.ErrInvalidState):
			monitoring.RecordRepayment("failure_state")
			s.logger.Error("Repayment not allowed in current status", "loanID", loanID, "status", string(l.Status), "error", err)
		default:
			monitoring.RecordRepayment("failure_internal")
			s.logger.Error("Repayment failed", "loanID", loanID, "error", err)
		}
		return err
	}

	monitoring.RecordRepayment("success")
	if l.Status == StatusPaid {
		monitoring.RecordPaidOff()
		s.logger.Info("Loan fully paid", "loanID", loanID)
	}

	s.logger.Info("Repayment processed", "loanID", loanID, "amount", amount.String(), "balance", l.Balance.String())
	return nil
}

func (s *loanServiceImpl) GetStatus(ctx context.Context, loanID int64) (Status, error) {
	l, err := s.getLoan(ctx, loanID)
	if err != nil {
		return "", err
	}
	return l.GetStatus(), nil
}

func (s *loanServiceImpl) GetTotalPaid(ctx context.Context, loanID int64) (PaymentSummary, error) {
	l, err := s.getLoan(ctx, loanID)
	if err != nil {
		return PaymentSummary{}, err
	}
	return l.TotalPaid(), nil
}

func (s *loanServiceImpl) GetSchedule(ctx context.Context, loanID int64) ([]ScheduleEntry, error) {
	s.logger.Info("Generating amortization schedule", "loanID", loanID)

	l, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	schedule, err := l.AmortizationSchedule()
	if err != nil {
		s.logger.Error("Failed to generate amortization schedule", "loanID", loanID, "status", string(l.Status), "error", err)
		return nil, err
	}
	return schedule, nil
}

func (s *loanServiceImpl) GetNextDue(ctx context.Context, loanID int64) (*NextDuePayment, error) {
	l, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	next, err := l.NextDue()
	if err != nil {
		s.logger.Error("Failed to determine next due payment", "loanID", loanID, "status", string(l.Status), "error", err)
		return nil, err
	}
	return next, nil
}

func (s *loanServiceImpl) GetPayoffAmount(ctx context.Context, loanID int64) (Money, error) {
	l, err := s.getLoan(ctx, loanID)
	if err != nil {
		return Money{}, err
	}

	payoff, err := l.PayoffAmount()
	if err != nil {
		s.logger.Error("Failed to compute payoff amount", "loanID", loanID, "status", string(l.Status), "error", err)
		return Money{}, err
	}
	return payoff, nil
}

func (s *loanServiceImpl) getLoan(ctx context.Context, loanID int64) (*Loan, error) {
	l, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("Loan not found", "loanID", loanID)
			return nil, err
		}
		s.logger.Error("Failed to load loan", "loanID", loanID, "error", err)
		return nil, fmt.Errorf("failed to load loan %d: %w", loanID, err)
	}
	return l, nil
}
