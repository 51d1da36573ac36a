package repositories

import (
	"context"

	"github.com/google/uuid"

	"coin-desk.backend/internal/domain/entities"
)

// TradeRepository defines position data operations
type TradeRepository interface {
	Create(ctx context.Context, trade *entities.Trade) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Trade, error)

	// CloseOpen marks an open trade closed, setting closed_at. It fails
	// with ErrInvalidState when the trade is already closed.
	CloseOpen(ctx context.Context, id uuid.UUID) error

	GetByUserID(ctx context.Context, userID uuid.UUID, status entities.TradeStatus) ([]*entities.Trade, error)
	CountOpen(ctx context.Context) (int64, error)
}
