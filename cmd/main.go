package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"loan-engine/internal/config"
	"loan-engine/internal/domain/loan"
	"loan-engine/internal/infrastructure/logging"
	"loan-engine/internal/infrastructure/memory"
	"loan-engine/internal/pkg/clock"
	"loan-engine/internal/pkg/idgen"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

func main() {
	cfg, logger := initializeApp()

	service := initializeService(logger)

	if err := runSimulation(context.Background(), cfg, service, logger); err != nil {
		logger.Error("Simulation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Simulation complete.")
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeService(logger *slog.Logger) loan.LoanService {
	logger.Info("Initializing application components...")
	repo := memory.NewLoanRepository(logger)
	return loan.NewLoanService(repo, idgen.NewSequence(), clock.System(), logger)
}

// runSimulation drives one loan through its whole lifecycle: apply,
// approve, inspect the schedule, pay the first installment, and report the
// derived views.
func runSimulation(ctx context.Context, cfg *config.Config, service loan.LoanService, logger *slog.Logger) error {
	principal, err := decimal.NewFromString(cfg.Loan.Principal)
	if err != nil {
		return fmt.Errorf("invalid loan.principal %q: %w", cfg.Loan.Principal, err)
	}
	annualRate, err := decimal.NewFromString(cfg.Loan.AnnualInterestRate)
	if err != nil {
		return fmt.Errorf("invalid loan.annualInterestRate %q: %w", cfg.Loan.AnnualInterestRate, err)
	}

	applied, err := service.Apply(ctx, principal, cfg.Loan.TermMonths, annualRate)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	approved, err := service.Approve(ctx, applied.ID)
	if err != nil {
		return fmt.Errorf("approve: %w", err)
	}

	schedule, err := service.GetSchedule(ctx, approved.ID)
	if err != nil {
		return fmt.Errorf("generate schedule: %w", err)
	}
	logSchedule(logger, schedule)

	next, err := service.GetNextDue(ctx, approved.ID)
	if err != nil {
		return fmt.Errorf("next due: %w", err)
	}
	logger.Info("Next due payment",
		"dueDate", next.DueDate.Format(time.DateOnly),
		"paymentAmount", next.PaymentAmount.StringFixed(2))

	if err := service.MakeRepayment(ctx, approved.ID, next.DueDate, next.PaymentAmount); err != nil {
		return fmt.Errorf("repay: %w", err)
	}

	summary, err := service.GetTotalPaid(ctx, approved.ID)
	if err != nil {
		return fmt.Errorf("total paid: %w", err)
	}
	logger.Info("Totals after first installment",
		"totalPaid", summary.TotalPaid.StringFixed(2),
		"interestPaid", summary.InterestPaid.StringFixed(2),
		"principalPaid", summary.PrincipalPaid.StringFixed(2),
		"remainingBalance", summary.RemainingBalance.StringFixed(2))

	payoff, err := service.GetPayoffAmount(ctx, approved.ID)
	if err != nil {
		return fmt.Errorf("payoff amount: %w", err)
	}
	logger.Info("Current payoff amount", "amount", payoff.StringFixed(2))

	return nil
}

func logSchedule(logger *slog.Logger, schedule []loan.ScheduleEntry) {
	logger.Info("Amortization schedule generated", "installments", len(schedule))
	for _, entry := range schedule {
		logger.Info("Installment",
			"month", entry.Month,
			"dueDate", entry.DueDate.Format(time.DateOnly),
			"payment", entry.Payment.StringFixed(2),
			"principal", entry.Principal.StringFixed(2),
			"interest", entry.Interest.StringFixed(2),
			"remainingBalance", entry.RemainingBalance.StringFixed(2))
	}
}
