package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/domain/repositories"
	"coin-desk.backend/internal/infrastructure/pricing"
	"coin-desk.backend/pkg/logger"
)

// TradingUsecase opens and closes leveraged positions. Margin
// (amount * leverage) is reserved from the balance at open and released,
// plus or minus realized P&L, at close.
type TradingUsecase struct {
	tradeRepo   repositories.TradeRepository
	txRepo      repositories.TransactionRepository
	profileRepo repositories.ProfileRepository
	ledger      *LedgerUsecase
	prices      pricing.Source
	uow         repositories.UnitOfWork
}

// NewTradingUsecase creates a new trading usecase
func NewTradingUsecase(
	tradeRepo repositories.TradeRepository,
	txRepo repositories.TransactionRepository,
	profileRepo repositories.ProfileRepository,
	ledger *LedgerUsecase,
	prices pricing.Source,
	uow repositories.UnitOfWork,
) *TradingUsecase {
	return &TradingUsecase{
		tradeRepo:   tradeRepo,
		txRepo:      txRepo,
		profileRepo: profileRepo,
		ledger:      ledger,
		prices:      prices,
		uow:         uow,
	}
}

// OpenTrade validates, reserves margin and inserts the open position.
// Trade insert and margin debit run in one unit of work: a failure in
// either leaves neither.
func (u *TradingUsecase) OpenTrade(ctx context.Context, userID uuid.UUID, input *entities.OpenTradeInput) (*entities.Trade, error) {
	if !input.Side.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	if input.Leverage < 1 || input.Leverage > MaxLeverage {
		return nil, domainerrors.ErrInvalidInput
	}
	if input.Amount.LessThan(MinTradeAmount) {
		return nil, domainerrors.ErrMinimumAmount
	}

	entryPrice, err := u.prices.GetCurrentPrice(ctx, input.Symbol)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NewError("unknown symbol", domainerrors.ErrInvalidInput)
		}
		return nil, err
	}

	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	trade := &entities.Trade{
		ID:        uuid.New(),
		UserID:    userID,
		Symbol:    input.Symbol,
		Side:      input.Side,
		Amount:    input.Amount,
		Price:     entryPrice,
		Leverage:  input.Leverage,
		Status:    entities.TradeStatusOpen,
		CreatedAt: time.Now(),
	}

	margin := trade.Margin()
	if margin.GreaterThan(profile.Balance) {
		return nil, domainerrors.ErrInsufficientBalance
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.tradeRepo.Create(txCtx, trade); err != nil {
			return err
		}
		if _, err := u.ledger.ApplyDelta(txCtx, userID, margin.Neg()); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "trade opened",
		zap.String("trade_id", trade.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("symbol", trade.Symbol),
		zap.String("side", string(trade.Side)),
		zap.String("margin", margin.String()),
	)
	return trade, nil
}

// CloseTrade settles an open position at the current market price.
//
// P&L multiplies the price delta by amount and leverage; the full margin
// is returned regardless of the sign of the P&L, so a loss exceeding the
// margin drives the balance negative.
func (u *TradingUsecase) CloseTrade(ctx context.Context, userID, tradeID uuid.UUID) (*entities.CloseTradeResult, error) {
	trade, err := u.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if trade.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}
	if trade.Status != entities.TradeStatusOpen {
		return nil, domainerrors.ErrInvalidState
	}

	currentPrice, err := u.prices.GetCurrentPrice(ctx, trade.Symbol)
	if err != nil {
		return nil, err
	}

	exposure := trade.Amount.Mul(decimal.NewFromInt(int64(trade.Leverage)))
	var pnl decimal.Decimal
	if trade.Side == entities.TradeSideBuy {
		pnl = currentPrice.Sub(trade.Price).Mul(exposure)
	} else {
		pnl = trade.Price.Sub(currentPrice).Mul(exposure)
	}

	margin := trade.Margin()
	var newBalance decimal.Decimal

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.tradeRepo.CloseOpen(txCtx, tradeID); err != nil {
			return err
		}

		newBalance, err = u.ledger.ApplyDeltaUnchecked(txCtx, userID, margin.Add(pnl))
		if err != nil {
			return err
		}

		record := &entities.Transaction{
			ID:        uuid.New(),
			UserID:    userID,
			Type:      entities.TransactionTypeTrade,
			Amount:    pnl,
			Status:    entities.TransactionStatusCompleted,
			CreatedAt: time.Now(),
			Details: entities.TransactionDetails{
				TradeID:  null.StringFrom(tradeID.String()),
				Symbol:   null.StringFrom(trade.Symbol),
				Side:     null.StringFrom(string(trade.Side)),
				Leverage: null.IntFrom(trade.Leverage),
			},
		}
		return u.txRepo.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	trade.Status = entities.TradeStatusClosed
	trade.ClosedAt = null.TimeFrom(time.Now())

	logger.Info(ctx, "trade closed",
		zap.String("trade_id", tradeID.String()),
		zap.String("user_id", userID.String()),
		zap.String("pnl", pnl.String()),
		zap.String("new_balance", newBalance.String()),
	)

	return &entities.CloseTradeResult{
		Trade:      trade,
		ClosePrice: currentPrice,
		PnL:        pnl,
		NewBalance: newBalance,
	}, nil
}

// ListTrades lists the caller's trades, optionally filtered by status
func (u *TradingUsecase) ListTrades(ctx context.Context, userID uuid.UUID, status entities.TradeStatus) ([]*entities.Trade, error) {
	return u.tradeRepo.GetByUserID(ctx, userID, status)
}
