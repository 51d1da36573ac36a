package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/usecases"
)

type adminFixture struct {
	profileRepo *MockProfileRepository
	txRepo      *MockTransactionRepository
	tradeRepo   *MockTradeRepository
	walletRepo  *MockWalletRepository
	usecase     *usecases.AdminUsecase
}

func newAdminFixture() *adminFixture {
	profileRepo := new(MockProfileRepository)
	txRepo := new(MockTransactionRepository)
	tradeRepo := new(MockTradeRepository)
	walletRepo := new(MockWalletRepository)
	return &adminFixture{
		profileRepo: profileRepo,
		txRepo:      txRepo,
		tradeRepo:   tradeRepo,
		walletRepo:  walletRepo,
		usecase:     usecases.NewAdminUsecase(profileRepo, txRepo, tradeRepo, walletRepo),
	}
}

func TestAdminStats(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	f.profileRepo.On("Count", ctx).Return(int64(12), nil)
	f.txRepo.On("CountByStatus", ctx, entities.TransactionStatusPending).Return(int64(3), nil)
	f.txRepo.On("SumCompletedByType", ctx, entities.TransactionTypeDeposit).Return(decimal.NewFromInt(1450), nil)
	f.tradeRepo.On("CountOpen", ctx).Return(int64(5), nil)

	stats, err := f.usecase.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.PendingTransactions)
	assert.True(t, stats.TotalDeposited.Equal(decimal.NewFromInt(1450)))
	assert.Equal(t, int64(5), stats.OpenTrades)
}

func TestAdminSetUserLevel(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	userID := uuid.New()

	err := f.usecase.SetUserLevel(ctx, userID, entities.AccountLevel("platinum"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	f.profileRepo.AssertNotCalled(t, "SetLevel", ctx, userID, entities.AccountLevel("platinum"))

	f.profileRepo.On("SetLevel", ctx, userID, entities.LevelPremium).Return(nil)
	require.NoError(t, f.usecase.SetUserLevel(ctx, userID, entities.LevelPremium))
}

func TestAdminSetUserActive(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.profileRepo.On("SetActive", ctx, userID, false).Return(nil)
	require.NoError(t, f.usecase.SetUserActive(ctx, userID, false))
	f.profileRepo.AssertExpectations(t)
}

func TestAdminListUsers(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	want := []*entities.Profile{{ID: uuid.New(), Email: "a@example.com"}}

	f.profileRepo.On("List", ctx, "alice").Return(want, nil)

	got, err := f.usecase.ListUsers(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAdminPendingDeposits(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	want := []*entities.Transaction{{ID: uuid.New(), Type: entities.TransactionTypeDeposit}}

	f.txRepo.On("ListPendingDeposits", ctx).Return(want, nil)

	got, err := f.usecase.PendingDeposits(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAdminListWallets(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	want := []*entities.PlatformWallet{
		{ID: uuid.New(), Method: entities.WithdrawalMethodBTC, Address: "bc1qdeposit", IsActive: true},
	}

	f.walletRepo.On("List", ctx).Return(want, nil)

	got, err := f.usecase.ListWallets(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAdminSetWallet(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	active := true

	f.walletRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.PlatformWallet")).Return(nil)

	wallet, err := f.usecase.SetWallet(ctx, entities.WithdrawalMethodERC20, &entities.SetWalletAddressInput{
		Address: "0x2222222222222222222222222222222222222222",
		Active:  &active,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.WithdrawalMethodERC20, wallet.Method)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", wallet.Address)
	assert.True(t, wallet.IsActive)
	f.walletRepo.AssertExpectations(t)
}

func TestAdminSetWallet_UnknownMethod(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	active := true

	_, err := f.usecase.SetWallet(ctx, "paypal", &entities.SetWalletAddressInput{
		Address: "somewhere",
		Active:  &active,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	f.walletRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
