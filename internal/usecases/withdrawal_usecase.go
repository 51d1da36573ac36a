package usecases

import (
	"context"
	"regexp"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/domain/repositories"
	"coin-desk.backend/pkg/crypto"
	"coin-desk.backend/pkg/logger"
	"coin-desk.backend/pkg/redis"
)

var verificationCodePattern = regexp.MustCompile(`^\d{6}$`)

// WithdrawalUsecase implements the two-phase withdrawal workflow:
// request -> out-of-band code verification -> pending transaction.
// The balance is never debited here; settlement happens when an operator
// later resolves the pending withdrawal.
type WithdrawalUsecase struct {
	profileRepo repositories.ProfileRepository
	txRepo      repositories.TransactionRepository
	intents     *redis.IntentStore
}

// NewWithdrawalUsecase creates a new withdrawal usecase
func NewWithdrawalUsecase(
	profileRepo repositories.ProfileRepository,
	txRepo repositories.TransactionRepository,
	intents *redis.IntentStore,
) *WithdrawalUsecase {
	return &WithdrawalUsecase{
		profileRepo: profileRepo,
		txRepo:      txRepo,
		intents:     intents,
	}
}

// Request validates the withdrawal and issues a verification challenge.
// Nothing is persisted to the store: the intent lives in Redis until
// confirmed or expired.
func (u *WithdrawalUsecase) Request(ctx context.Context, userID uuid.UUID, input *entities.RequestWithdrawalInput) (*entities.WithdrawalChallenge, error) {
	if input.Amount.LessThan(MinWithdrawalAmount) {
		return nil, domainerrors.ErrMinimumAmount
	}
	if input.Address == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	if !input.Method.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	if (input.Method == entities.WithdrawalMethodETH || input.Method == entities.WithdrawalMethodERC20) && !common.IsHexAddress(input.Address) {
		return nil, domainerrors.NewError("invalid destination address", domainerrors.ErrInvalidInput)
	}

	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if input.Amount.GreaterThan(profile.Balance) {
		return nil, domainerrors.ErrInsufficientBalance
	}

	code, err := crypto.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}

	challengeID := uuid.New().String()
	intent := &redis.IntentData{
		UserID:  userID.String(),
		Amount:  input.Amount.String(),
		Address: input.Address,
		Method:  string(input.Method),
		Code:    code,
	}
	if err := u.intents.CreateIntent(ctx, challengeID, intent, WithdrawalIntentTTL); err != nil {
		return nil, err
	}

	u.deliverCode(ctx, profile.Email, code)

	return &entities.WithdrawalChallenge{ChallengeID: challengeID}, nil
}

// Confirm verifies the submitted code and records the pending
// withdrawal. The consumed intent is removed so a code works once.
func (u *WithdrawalUsecase) Confirm(ctx context.Context, userID uuid.UUID, input *entities.ConfirmWithdrawalInput) (*entities.Transaction, error) {
	if !verificationCodePattern.MatchString(input.Code) {
		return nil, domainerrors.ErrInvalidCode
	}

	intent, err := u.intents.GetIntent(ctx, input.ChallengeID)
	if err != nil {
		// Expired, unknown or tampered challenge all read the same to
		// the caller.
		return nil, domainerrors.ErrInvalidCode
	}
	if intent.UserID != userID.String() {
		return nil, domainerrors.ErrForbidden
	}
	if intent.Code != input.Code {
		return nil, domainerrors.ErrInvalidCode
	}

	amount, err := decimal.NewFromString(intent.Amount)
	if err != nil {
		return nil, domainerrors.ErrInvalidCode
	}

	tx := &entities.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      entities.TransactionTypeWithdrawal,
		Amount:    amount.Neg(),
		Status:    entities.TransactionStatusPending,
		CreatedAt: time.Now(),
		Details: entities.TransactionDetails{
			Address: null.StringFrom(intent.Address),
			Method:  null.StringFrom(intent.Method),
		},
	}
	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	if err := u.intents.DeleteIntent(ctx, input.ChallengeID); err != nil {
		logger.Warn(ctx, "failed to delete withdrawal intent", zap.Error(err))
	}

	logger.Info(ctx, "withdrawal recorded",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("amount", amount.String()),
	)
	return tx, nil
}

// ResendCode reissues a fresh challenge code, invalidating the previous
// one.
func (u *WithdrawalUsecase) ResendCode(ctx context.Context, userID uuid.UUID, challengeID string) error {
	intent, err := u.intents.GetIntent(ctx, challengeID)
	if err != nil {
		return domainerrors.ErrNotFound
	}
	if intent.UserID != userID.String() {
		return domainerrors.ErrForbidden
	}

	code, err := crypto.GenerateVerificationCode()
	if err != nil {
		return err
	}
	intent.Code = code

	if err := u.intents.CreateIntent(ctx, challengeID, intent, WithdrawalIntentTTL); err != nil {
		return err
	}

	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	u.deliverCode(ctx, profile.Email, code)
	return nil
}

// deliverCode hands the code to the out-of-band channel. Wire an email
// provider here; for now delivery is a log line.
func (u *WithdrawalUsecase) deliverCode(ctx context.Context, email, code string) {
	logger.Info(ctx, "withdrawal verification code issued",
		zap.String("email", email),
		zap.String("code", code),
	)
}
