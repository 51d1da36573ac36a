package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/infrastructure/pricing"
	"coin-desk.backend/internal/interfaces/http/response"
)

// MarketHandler serves current market quotes
type MarketHandler struct {
	source pricing.Source
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(source pricing.Source) *MarketHandler {
	return &MarketHandler{source: source}
}

// ListQuotes returns the current quote table
// GET /api/v1/market/quotes
func (h *MarketHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.source.ListQuotes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quotes": quotes})
}

// GetQuote returns the current price for one symbol
// GET /api/v1/market/quotes/:symbol
func (h *MarketHandler) GetQuote(c *gin.Context) {
	symbol := c.Param("symbol")

	price, err := h.source.GetCurrentPrice(c.Request.Context(), symbol)
	if err != nil {
		response.Error(c, domainerrors.NotFound("Unknown symbol"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"symbol": symbol,
		"price":  price,
	})
}
