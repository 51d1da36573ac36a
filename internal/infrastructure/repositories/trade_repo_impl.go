package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/infrastructure/events"
	"coin-desk.backend/internal/infrastructure/models"
)

// TradeRepository implements position data operations
type TradeRepository struct {
	db   *gorm.DB
	feed *events.Feed
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *gorm.DB, feed *events.Feed) *TradeRepository {
	return &TradeRepository{db: db, feed: feed}
}

// Create inserts a new position
func (r *TradeRepository) Create(ctx context.Context, trade *entities.Trade) error {
	m := &models.Trade{
		ID:        trade.ID,
		UserID:    trade.UserID,
		Symbol:    trade.Symbol,
		Side:      string(trade.Side),
		Amount:    trade.Amount,
		Price:     trade.Price,
		Leverage:  trade.Leverage,
		Status:    string(trade.Status),
		CreatedAt: trade.CreatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	r.feed.Publish(ctx, "trades", events.EventInsert, trade)
	return nil
}

// GetByID gets a trade by ID
func (r *TradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Trade, error) {
	var m models.Trade
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toTradeEntity(&m), nil
}

// CloseOpen marks an open trade closed. The status guard keeps the
// transition at-most-once under concurrent closes.
func (r *TradeRepository) CloseOpen(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Trade{}).
		Where("id = ? AND status = ?", id, string(entities.TradeStatusOpen)).
		Updates(map[string]interface{}{
			"status":    string(entities.TradeStatusClosed),
			"closed_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var m models.Trade
		if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		return domainerrors.ErrInvalidState
	}
	r.feed.Publish(ctx, "trades", events.EventUpdate, map[string]interface{}{
		"id":       id,
		"status":   entities.TradeStatusClosed,
		"closedAt": now,
	})
	return nil
}

// GetByUserID lists a user's trades, optionally filtered by status
func (r *TradeRepository) GetByUserID(ctx context.Context, userID uuid.UUID, status entities.TradeStatus) ([]*entities.Trade, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var tradeModels []models.Trade
	if err := query.Find(&tradeModels).Error; err != nil {
		return nil, err
	}

	trades := make([]*entities.Trade, 0, len(tradeModels))
	for i := range tradeModels {
		trades = append(trades, toTradeEntity(&tradeModels[i]))
	}
	return trades, nil
}

// CountOpen counts open positions across all users
func (r *TradeRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Trade{}).
		Where("status = ?", string(entities.TradeStatusOpen)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func toTradeEntity(m *models.Trade) *entities.Trade {
	return &entities.Trade{
		ID:        m.ID,
		UserID:    m.UserID,
		Symbol:    m.Symbol,
		Side:      entities.TradeSide(m.Side),
		Amount:    m.Amount,
		Price:     m.Price,
		Leverage:  m.Leverage,
		Status:    entities.TradeStatus(m.Status),
		CreatedAt: m.CreatedAt,
		ClosedAt:  null.TimeFromPtr(m.ClosedAt),
	}
}
