package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/interfaces/http/middleware"
	"coin-desk.backend/internal/interfaces/http/response"
	"coin-desk.backend/internal/usecases"
)

type tradingService interface {
	OpenTrade(ctx context.Context, userID uuid.UUID, input *entities.OpenTradeInput) (*entities.Trade, error)
	CloseTrade(ctx context.Context, userID, tradeID uuid.UUID) (*entities.CloseTradeResult, error)
	ListTrades(ctx context.Context, userID uuid.UUID, status entities.TradeStatus) ([]*entities.Trade, error)
}

// TradeHandler handles trading endpoints
type TradeHandler struct {
	tradingUsecase tradingService
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(tradingUsecase *usecases.TradingUsecase) *TradeHandler {
	return &TradeHandler{tradingUsecase: tradingUsecase}
}

// OpenTrade opens a leveraged position
// POST /api/v1/trades
func (h *TradeHandler) OpenTrade(c *gin.Context) {
	var input entities.OpenTradeInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	trade, err := h.tradingUsecase.OpenTrade(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"trade": trade})
}

// CloseTrade closes an open position and settles its P&L
// POST /api/v1/trades/:id/close
func (h *TradeHandler) CloseTrade(c *gin.Context) {
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid trade ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	result, err := h.tradingUsecase.CloseTrade(c.Request.Context(), userID, tradeID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Trade not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListTrades lists the user's trades, optionally filtered by status
// GET /api/v1/trades?status=open
func (h *TradeHandler) ListTrades(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	status := entities.TradeStatus(c.Query("status"))
	if status != "" && status != entities.TradeStatusOpen && status != entities.TradeStatusClosed {
		response.Error(c, domainerrors.BadRequest("Invalid status filter"))
		return
	}

	trades, err := h.tradingUsecase.ListTrades(c.Request.Context(), userID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	if trades == nil {
		trades = []*entities.Trade{}
	}

	response.Success(c, http.StatusOK, gin.H{"trades": trades})
}
