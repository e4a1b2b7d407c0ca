package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"loan-engine/internal/domain/loan"
	"loan-engine/internal/pkg/apperrors"
)

// LoanRepository keeps loans for the lifetime of the process, keyed by id.
// The mutex guards the map only; exclusive writer access per loan remains
// the caller's responsibility.
type LoanRepository struct {
	mu     sync.RWMutex
	loans  map[int64]*loan.Loan
	logger *slog.Logger
}

func NewLoanRepository(logger *slog.Logger) *LoanRepository {
	return &LoanRepository{
		loans:  make(map[int64]*loan.Loan),
		logger: logger,
	}
}

func (r *LoanRepository) Save(_ context.Context, l *loan.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loans[l.ID] = l
	r.logger.Debug("Loan stored", "loanID", l.ID)
	return nil
}

func (r *LoanRepository) GetLoanByID(_ context.Context, loanID int64) (*loan.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.loans[loanID]
	if !ok {
		return nil, fmt.Errorf("%w: loan with ID %d", apperrors.ErrNotFound, loanID)
	}
	return l, nil
}
