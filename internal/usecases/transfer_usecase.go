package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/domain/repositories"
	"coin-desk.backend/pkg/logger"
)

// TransferUsecase moves balance between two premium accounts, recording
// a symmetric pair of transfer transactions.
type TransferUsecase struct {
	profileRepo repositories.ProfileRepository
	txRepo      repositories.TransactionRepository
	ledger      *LedgerUsecase
	uow         repositories.UnitOfWork
}

// NewTransferUsecase creates a new transfer usecase
func NewTransferUsecase(
	profileRepo repositories.ProfileRepository,
	txRepo repositories.TransactionRepository,
	ledger *LedgerUsecase,
	uow repositories.UnitOfWork,
) *TransferUsecase {
	return &TransferUsecase{
		profileRepo: profileRepo,
		txRepo:      txRepo,
		ledger:      ledger,
		uow:         uow,
	}
}

// Transfer debits the sender and credits the recipient inside one unit
// of work. All validation happens before any mutation; a credit-leg
// failure after the debit surfaces as PartialFailure so the caller can
// tell "nothing happened" from "reconcile this".
func (u *TransferUsecase) Transfer(ctx context.Context, senderID uuid.UUID, input *entities.TransferInput) (*entities.TransferResult, error) {
	if input.Amount.LessThan(MinTransferAmount) {
		return nil, domainerrors.ErrMinimumAmount
	}

	sender, err := u.profileRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if input.Amount.GreaterThan(sender.Balance) {
		return nil, domainerrors.ErrInsufficientBalance
	}
	if input.RecipientEmail == sender.Email {
		return nil, domainerrors.ErrSelfTransfer
	}

	recipient, err := u.profileRepo.GetByEmail(ctx, input.RecipientEmail)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrRecipientNotFound
		}
		return nil, err
	}

	if sender.Level != entities.LevelPremium || recipient.Level != entities.LevelPremium {
		return nil, domainerrors.ErrTierRequired
	}

	result := &entities.TransferResult{}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		senderBalance, err := u.ledger.ApplyDelta(txCtx, senderID, input.Amount.Neg())
		if err != nil {
			return err
		}
		result.SenderBalance = senderBalance

		recipientBalance, err := u.ledger.ApplyDelta(txCtx, recipient.ID, input.Amount)
		if err != nil {
			return &domainerrors.PartialFailure{
				CompletedLeg: domainerrors.TransferLegDebit,
				FailedLeg:    domainerrors.TransferLegCredit,
				Err:          err,
			}
		}
		result.RecipientBalance = recipientBalance

		now := time.Now()
		debit := &entities.Transaction{
			ID:        uuid.New(),
			UserID:    senderID,
			Type:      entities.TransactionTypeTransfer,
			Amount:    input.Amount.Neg(),
			Status:    entities.TransactionStatusCompleted,
			CreatedAt: now,
			Details: entities.TransactionDetails{
				CounterpartEmail: null.StringFrom(recipient.Email),
				Note:             null.StringFrom("Internal transfer"),
			},
		}
		credit := &entities.Transaction{
			ID:        uuid.New(),
			UserID:    recipient.ID,
			Type:      entities.TransactionTypeTransfer,
			Amount:    input.Amount,
			Status:    entities.TransactionStatusCompleted,
			CreatedAt: now,
			Details: entities.TransactionDetails{
				CounterpartEmail: null.StringFrom(sender.Email),
				Note:             null.StringFrom("Internal transfer received"),
			},
		}

		if err := u.txRepo.Create(txCtx, debit); err != nil {
			return err
		}
		return u.txRepo.Create(txCtx, credit)
	})
	if err != nil {
		var pf *domainerrors.PartialFailure
		if errors.As(err, &pf) {
			// The unit of work rolled the debit back; report the
			// sequence anyway so operators can audit the attempt.
			logger.Error(ctx, "transfer credit leg failed",
				zap.String("sender_id", senderID.String()),
				zap.String("recipient_id", recipient.ID.String()),
				zap.String("amount", input.Amount.String()),
				zap.Error(pf),
			)
		}
		return nil, err
	}

	logger.Info(ctx, "transfer completed",
		zap.String("sender_id", senderID.String()),
		zap.String("recipient_id", recipient.ID.String()),
		zap.String("amount", input.Amount.String()),
	)
	return result, nil
}
