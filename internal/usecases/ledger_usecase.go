package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"coin-desk.backend/internal/domain/entities"
	"coin-desk.backend/internal/domain/repositories"
)

// LedgerUsecase is the single authority for reading and mutating an
// account's balance and tier. Every balance-affecting workflow goes
// through it.
type LedgerUsecase struct {
	profileRepo repositories.ProfileRepository
	txRepo      repositories.TransactionRepository
}

// NewLedgerUsecase creates a new ledger usecase
func NewLedgerUsecase(profileRepo repositories.ProfileRepository, txRepo repositories.TransactionRepository) *LedgerUsecase {
	return &LedgerUsecase{profileRepo: profileRepo, txRepo: txRepo}
}

// GetBalance returns the current balance of an account
func (u *LedgerUsecase) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return profile.Balance, nil
}

// SetBalance overwrites the balance and, when level is non-empty, the
// tier. updated_at is bumped by the store.
func (u *LedgerUsecase) SetBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal, level entities.AccountLevel) error {
	return u.profileRepo.SetBalance(ctx, userID, balance, level)
}

// ApplyDelta applies a signed delta to the balance as one server-side
// statement and returns the new balance. A debit that would drive the
// balance below zero fails with ErrInsufficientBalance.
func (u *LedgerUsecase) ApplyDelta(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	return u.profileRepo.AdjustBalance(ctx, userID, delta)
}

// ApplyDeltaUnchecked applies a signed delta without the non-negative
// floor. Only trade settlement uses it: a loss larger than the reserved
// margin legitimately drives the balance negative.
func (u *LedgerUsecase) ApplyDeltaUnchecked(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	return u.profileRepo.AdjustBalanceUnchecked(ctx, userID, delta)
}

// History returns a page of the account's transactions, newest first,
// along with the total count.
func (u *LedgerUsecase) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error) {
	return u.txRepo.GetByUserID(ctx, userID, limit, offset)
}
