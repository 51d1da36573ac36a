package repositories

import (
	"context"

	"coin-desk.backend/internal/domain/entities"
)

// WalletRepository defines platform deposit wallet operations
type WalletRepository interface {
	// GetActiveByMethod returns the active wallet configured for a
	// method, ErrNotFound when none is.
	GetActiveByMethod(ctx context.Context, method entities.WithdrawalMethod) (*entities.PlatformWallet, error)

	List(ctx context.Context) ([]*entities.PlatformWallet, error)

	// Upsert inserts the wallet for its method, or overwrites the stored
	// address and active flag when a row for the method already exists.
	// The entity is updated with the stored identity and timestamps.
	Upsert(ctx context.Context, wallet *entities.PlatformWallet) error
}
