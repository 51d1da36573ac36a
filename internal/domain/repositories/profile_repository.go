package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"coin-desk.backend/internal/domain/entities"
)

// ProfileRepository defines profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entities.Profile, error)
	Update(ctx context.Context, profile *entities.Profile) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetLevel(ctx context.Context, id uuid.UUID, level entities.AccountLevel) error

	// UpgradeGoldToPremium promotes the account to premium only when its
	// current level is exactly gold, so a concurrent admin change is
	// never clobbered. A no-op when the level already moved.
	UpgradeGoldToPremium(ctx context.Context, id uuid.UUID) error

	// SetBalance overwrites the balance and, when level is non-empty, the
	// tier, bumping updated_at.
	SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal, level entities.AccountLevel) error

	// AdjustBalance applies a signed delta as a single server-side
	// statement and returns the resulting balance. A debit that would
	// drive the balance below zero fails with ErrInsufficientBalance
	// without modifying the row.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)

	// AdjustBalanceUnchecked applies a signed delta without the
	// non-negative floor. Trade settlement uses it: a loss larger than
	// the reserved margin legitimately drives the balance negative.
	AdjustBalanceUnchecked(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)

	List(ctx context.Context, search string) ([]*entities.Profile, error)
	Count(ctx context.Context) (int64, error)
}
