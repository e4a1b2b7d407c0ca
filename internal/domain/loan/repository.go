package loan

import "context"

type Repository interface {
	Save(ctx context.Context, loan *Loan) error

	GetLoanByID(ctx context.Context, loanID int64) (*Loan, error)
}
