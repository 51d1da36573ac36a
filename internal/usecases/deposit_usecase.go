package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/domain/repositories"
	"coin-desk.backend/pkg/logger"
)

// DepositUsecase handles the pending -> {completed, rejected} deposit
// workflow, including the balance credit and tier auto-upgrade.
type DepositUsecase struct {
	txRepo      repositories.TransactionRepository
	profileRepo repositories.ProfileRepository
	walletRepo  repositories.WalletRepository
	ledger      *LedgerUsecase
	uow         repositories.UnitOfWork
}

// NewDepositUsecase creates a new deposit usecase
func NewDepositUsecase(
	txRepo repositories.TransactionRepository,
	profileRepo repositories.ProfileRepository,
	walletRepo repositories.WalletRepository,
	ledger *LedgerUsecase,
	uow repositories.UnitOfWork,
) *DepositUsecase {
	return &DepositUsecase{
		txRepo:      txRepo,
		profileRepo: profileRepo,
		walletRepo:  walletRepo,
		ledger:      ledger,
		uow:         uow,
	}
}

// DepositAddress returns the platform wallet receiving deposits for a
// method. ErrNotFound when no active wallet is configured for it.
func (u *DepositUsecase) DepositAddress(ctx context.Context, method entities.WithdrawalMethod) (*entities.PlatformWallet, error) {
	if !method.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	return u.walletRepo.GetActiveByMethod(ctx, method)
}

// Request files a pending deposit for later admin review. No balance is
// touched until the review completes it.
func (u *DepositUsecase) Request(ctx context.Context, userID uuid.UUID, input *entities.DepositRequestInput) (*entities.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerrors.ErrInvalidInput
	}

	if _, err := u.profileRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	tx := &entities.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      entities.TransactionTypeDeposit,
		Amount:    input.Amount,
		Status:    entities.TransactionStatusPending,
		CreatedAt: time.Now(),
	}
	if input.Method != "" {
		tx.Details.Method = null.StringFrom(input.Method)
	}

	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Review resolves a pending deposit. Approving credits the amount and,
// when the new balance crosses the premium threshold, upgrades a gold
// account to premium. Reviewing an already-terminal deposit fails with
// ErrInvalidState and never double-credits.
func (u *DepositUsecase) Review(ctx context.Context, transactionID uuid.UUID, decision entities.ReviewDecision) (*entities.Transaction, error) {
	tx, err := u.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.Type != entities.TransactionTypeDeposit {
		return nil, domainerrors.ErrInvalidState
	}
	if tx.Status.Terminal() {
		return nil, domainerrors.ErrInvalidState
	}

	status := entities.TransactionStatus(decision)
	if !status.Valid() || status == entities.TransactionStatusPending {
		return nil, domainerrors.ErrInvalidInput
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.txRepo.ResolvePending(txCtx, transactionID, status); err != nil {
			return err
		}

		if status != entities.TransactionStatusCompleted {
			return nil
		}

		newBalance, err := u.ledger.ApplyDelta(txCtx, tx.UserID, tx.Amount)
		if err != nil {
			return err
		}

		if newBalance.GreaterThanOrEqual(PremiumUpgradeThreshold) {
			if err := u.profileRepo.UpgradeGoldToPremium(txCtx, tx.UserID); err != nil {
				return err
			}
		}

		logger.Info(txCtx, "deposit approved",
			zap.String("transaction_id", transactionID.String()),
			zap.String("user_id", tx.UserID.String()),
			zap.String("amount", tx.Amount.String()),
			zap.String("new_balance", newBalance.String()),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	tx.Status = status
	return tx, nil
}
