package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"coin-desk.backend/internal/domain/entities"
)

// TransactionRepository defines ledger entry operations. Transactions are
// append-only: the single status transition out of pending is the only
// permitted mutation.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)

	// ResolvePending moves a pending transaction to a terminal status.
	// It fails with ErrInvalidState when the record is already terminal,
	// so a review can be applied at most once.
	ResolvePending(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error

	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error)
	ListPendingDeposits(ctx context.Context) ([]*entities.Transaction, error)
	SumCompletedByType(ctx context.Context, txType entities.TransactionType) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, status entities.TransactionStatus) (int64, error)
}
