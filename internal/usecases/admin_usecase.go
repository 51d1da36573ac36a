package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/domain/repositories"
)

// PlatformStats summarizes platform activity for the admin dashboard
type PlatformStats struct {
	TotalUsers          int64           `json:"totalUsers"`
	PendingTransactions int64           `json:"pendingTransactions"`
	TotalDeposited      decimal.Decimal `json:"totalDeposited"`
	OpenTrades          int64           `json:"openTrades"`
}

// AdminUsecase handles user management and reporting
type AdminUsecase struct {
	profileRepo repositories.ProfileRepository
	txRepo      repositories.TransactionRepository
	tradeRepo   repositories.TradeRepository
	walletRepo  repositories.WalletRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	profileRepo repositories.ProfileRepository,
	txRepo repositories.TransactionRepository,
	tradeRepo repositories.TradeRepository,
	walletRepo repositories.WalletRepository,
) *AdminUsecase {
	return &AdminUsecase{
		profileRepo: profileRepo,
		txRepo:      txRepo,
		tradeRepo:   tradeRepo,
		walletRepo:  walletRepo,
	}
}

// ListUsers lists profiles with optional search
func (u *AdminUsecase) ListUsers(ctx context.Context, search string) ([]*entities.Profile, error) {
	return u.profileRepo.List(ctx, search)
}

// PendingDeposits returns the deposit review queue
func (u *AdminUsecase) PendingDeposits(ctx context.Context) ([]*entities.Transaction, error) {
	return u.txRepo.ListPendingDeposits(ctx)
}

// SetUserActive toggles the login gate on an account
func (u *AdminUsecase) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error {
	return u.profileRepo.SetActive(ctx, userID, active)
}

// SetUserLevel overwrites an account's tier
func (u *AdminUsecase) SetUserLevel(ctx context.Context, userID uuid.UUID, level entities.AccountLevel) error {
	if !level.Valid() {
		return domainerrors.ErrInvalidInput
	}
	return u.profileRepo.SetLevel(ctx, userID, level)
}

// ListWallets returns every configured deposit wallet, active or not
func (u *AdminUsecase) ListWallets(ctx context.Context) ([]*entities.PlatformWallet, error) {
	return u.walletRepo.List(ctx)
}

// SetWallet stores the deposit address and active flag for a method,
// creating the row on first configuration.
func (u *AdminUsecase) SetWallet(ctx context.Context, method entities.WithdrawalMethod, input *entities.SetWalletAddressInput) (*entities.PlatformWallet, error) {
	if !method.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}

	wallet := &entities.PlatformWallet{
		Method:   method,
		Address:  input.Address,
		IsActive: *input.Active,
	}
	if err := u.walletRepo.Upsert(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// Stats aggregates platform counters
func (u *AdminUsecase) Stats(ctx context.Context) (*PlatformStats, error) {
	totalUsers, err := u.profileRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := u.txRepo.CountByStatus(ctx, entities.TransactionStatusPending)
	if err != nil {
		return nil, err
	}

	deposited, err := u.txRepo.SumCompletedByType(ctx, entities.TransactionTypeDeposit)
	if err != nil {
		return nil, err
	}

	openTrades, err := u.tradeRepo.CountOpen(ctx)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalUsers:          totalUsers,
		PendingTransactions: pending,
		TotalDeposited:      deposited,
		OpenTrades:          openTrades,
	}, nil
}
