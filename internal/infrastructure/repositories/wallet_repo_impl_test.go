package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
)

func TestWalletRepository_UpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	repo := NewWalletRepository(db, nil)
	ctx := context.Background()

	w := &entities.PlatformWallet{
		Method:   entities.WithdrawalMethodERC20,
		Address:  "0x1111111111111111111111111111111111111111",
		IsActive: true,
	}
	require.NoError(t, repo.Upsert(ctx, w))
	require.NotZero(t, w.ID)
	require.False(t, w.CreatedAt.IsZero())

	got, err := repo.GetActiveByMethod(ctx, entities.WithdrawalMethodERC20)
	require.NoError(t, err)
	require.Equal(t, w.ID, got.ID)
	require.Equal(t, w.Address, got.Address)

	// A second upsert for the same method overwrites instead of inserting.
	w2 := &entities.PlatformWallet{
		Method:   entities.WithdrawalMethodERC20,
		Address:  "0x2222222222222222222222222222222222222222",
		IsActive: true,
	}
	require.NoError(t, repo.Upsert(ctx, w2))
	require.Equal(t, w.ID, w2.ID)

	got, err = repo.GetActiveByMethod(ctx, entities.WithdrawalMethodERC20)
	require.NoError(t, err)
	require.Equal(t, "0x2222222222222222222222222222222222222222", got.Address)

	wallets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 1)
}

func TestWalletRepository_InactiveOrMissingReadsAsNotFound(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	repo := NewWalletRepository(db, nil)
	ctx := context.Background()

	_, err := repo.GetActiveByMethod(ctx, entities.WithdrawalMethodBTC)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	w := &entities.PlatformWallet{
		Method:   entities.WithdrawalMethodBTC,
		Address:  "bc1qexampledepositaddress",
		IsActive: false,
	}
	require.NoError(t, repo.Upsert(ctx, w))

	// The row exists but is disabled, so users do not see it.
	_, err = repo.GetActiveByMethod(ctx, entities.WithdrawalMethodBTC)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	wallets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	require.False(t, wallets[0].IsActive)
}

func TestWalletRepository_ListOrdersByMethod(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	repo := NewWalletRepository(db, nil)
	ctx := context.Background()

	for _, w := range []*entities.PlatformWallet{
		{Method: entities.WithdrawalMethodETH, Address: "0xeth", IsActive: true},
		{Method: entities.WithdrawalMethodBTC, Address: "bc1btc", IsActive: true},
	} {
		require.NoError(t, repo.Upsert(ctx, w))
	}

	wallets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	require.Equal(t, entities.WithdrawalMethodBTC, wallets[0].Method)
	require.Equal(t, entities.WithdrawalMethodETH, wallets[1].Method)
}
