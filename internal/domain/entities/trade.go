package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TradeSide represents the direction of a position
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// Valid reports whether the side is buy or sell.
func (s TradeSide) Valid() bool {
	return s == TradeSideBuy || s == TradeSideSell
}

// TradeStatus represents the lifecycle state of a position
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

// Trade is a leveraged position. Margin (amount * leverage) is reserved
// from the balance at open and released, plus or minus P&L, at close.
type Trade struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Symbol    string          `json:"symbol"`
	Side      TradeSide       `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
	Leverage  int             `json:"leverage"`
	Status    TradeStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	ClosedAt  null.Time       `json:"closedAt,omitempty"`
}

// Margin returns the balance amount consumed by the position.
func (t *Trade) Margin() decimal.Decimal {
	return t.Amount.Mul(decimal.NewFromInt(int64(t.Leverage)))
}

// OpenTradeInput represents input for opening a position
type OpenTradeInput struct {
	Symbol   string          `json:"symbol" binding:"required,max=10"`
	Side     TradeSide       `json:"side" binding:"required,oneof=buy sell"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Leverage int             `json:"leverage" binding:"required,min=1,max=100"`
}

// CloseTradeResult reports the settlement of a closed position
type CloseTradeResult struct {
	Trade      *Trade          `json:"trade"`
	ClosePrice decimal.Decimal `json:"closePrice"`
	PnL        decimal.Decimal `json:"pnl"`
	NewBalance decimal.Decimal `json:"newBalance"`
}
