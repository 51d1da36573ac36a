package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/infrastructure/events"
	"coin-desk.backend/internal/infrastructure/models"
)

// TransactionRepository implements ledger entry operations
type TransactionRepository struct {
	db   *gorm.DB
	feed *events.Feed
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB, feed *events.Feed) *TransactionRepository {
	return &TransactionRepository{db: db, feed: feed}
}

// Create appends a ledger entry
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	details, err := json.Marshal(tx.Details)
	if err != nil {
		return err
	}

	m := &models.Transaction{
		ID:        tx.ID,
		UserID:    tx.UserID,
		Type:      string(tx.Type),
		Amount:    tx.Amount,
		Status:    string(tx.Status),
		Details:   string(details),
		CreatedAt: tx.CreatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	r.feed.Publish(ctx, "transactions", events.EventInsert, tx)
	return nil
}

// GetByID gets a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toTransactionEntity(&m)
}

// ResolvePending moves a pending transaction to a terminal status. The
// status guard in the WHERE clause makes the transition at-most-once even
// under concurrent reviews.
func (r *TransactionRepository) ResolvePending(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, string(entities.TransactionStatusPending)).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var m models.Transaction
		if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		return domainerrors.ErrInvalidState
	}
	r.feed.Publish(ctx, "transactions", events.EventUpdate, map[string]interface{}{
		"id":     id,
		"status": status,
	})
	return nil
}

// GetByUserID lists a user's transactions newest first, with total count
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var txModels []models.Transaction
	if err := query.Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]*entities.Transaction, 0, len(txModels))
	for i := range txModels {
		tx, err := toTransactionEntity(&txModels[i])
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, tx)
	}
	return txs, total, nil
}

// ListPendingDeposits returns the admin review queue, oldest first, with
// the owning profile joined in.
func (r *TransactionRepository) ListPendingDeposits(ctx context.Context) ([]*entities.Transaction, error) {
	var txModels []models.Transaction
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Profile").
		Where("type = ? AND status = ?", string(entities.TransactionTypeDeposit), string(entities.TransactionStatusPending)).
		Order("created_at ASC").
		Find(&txModels).Error
	if err != nil {
		return nil, err
	}

	txs := make([]*entities.Transaction, 0, len(txModels))
	for i := range txModels {
		tx, err := toTransactionEntity(&txModels[i])
		if err != nil {
			return nil, err
		}
		if txModels[i].Profile != nil {
			tx.Profile = toProfileEntity(txModels[i].Profile)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// SumCompletedByType totals completed transaction amounts of one type
func (r *TransactionRepository) SumCompletedByType(ctx context.Context, txType entities.TransactionType) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).
		Select("SUM(amount)").
		Where("type = ? AND status = ?", string(txType), string(entities.TransactionStatusCompleted)).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// CountByStatus counts transactions in one status
func (r *TransactionRepository) CountByStatus(ctx context.Context, status entities.TransactionStatus) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func toTransactionEntity(m *models.Transaction) (*entities.Transaction, error) {
	var details entities.TransactionDetails
	if m.Details != "" {
		if err := json.Unmarshal([]byte(m.Details), &details); err != nil {
			return nil, err
		}
	}
	return &entities.Transaction{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      entities.TransactionType(m.Type),
		Amount:    m.Amount,
		Status:    entities.TransactionStatus(m.Status),
		Details:   details,
		CreatedAt: m.CreatedAt,
	}, nil
}
