package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/interfaces/http/middleware"
	"coin-desk.backend/internal/interfaces/http/response"
	"coin-desk.backend/internal/usecases"
	"coin-desk.backend/pkg/utils"
)

type ledgerService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error)
}

type depositService interface {
	Request(ctx context.Context, userID uuid.UUID, input *entities.DepositRequestInput) (*entities.Transaction, error)
	DepositAddress(ctx context.Context, method entities.WithdrawalMethod) (*entities.PlatformWallet, error)
}

// WalletHandler handles balance, transaction history and deposit endpoints
type WalletHandler struct {
	ledgerUsecase  ledgerService
	depositUsecase depositService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(ledgerUsecase *usecases.LedgerUsecase, depositUsecase *usecases.DepositUsecase) *WalletHandler {
	return &WalletHandler{
		ledgerUsecase:  ledgerUsecase,
		depositUsecase: depositUsecase,
	}
}

// GetBalance returns the current balance
// GET /api/v1/wallet/balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	balance, err := h.ledgerUsecase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"balance": balance})
}

// ListTransactions lists the user's transactions, newest first
// GET /api/v1/wallet/transactions
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	transactions, total, err := h.ledgerUsecase.History(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	if transactions == nil {
		transactions = []*entities.Transaction{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": transactions,
		"pagination":   utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// GetDepositAddress returns the platform wallet to send a deposit to
// GET /api/v1/wallet/deposit-address?method=
func (h *WalletHandler) GetDepositAddress(c *gin.Context) {
	method := entities.WithdrawalMethod(c.Query("method"))

	wallet, err := h.depositUsecase.DepositAddress(c.Request.Context(), method)
	if err != nil {
		if err == domainerrors.ErrInvalidInput {
			response.Error(c, domainerrors.BadRequest("Invalid deposit method"))
			return
		}
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Deposit address not configured"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallet": wallet})
}

// RequestDeposit files a deposit request for admin review
// POST /api/v1/wallet/deposits
func (h *WalletHandler) RequestDeposit(c *gin.Context) {
	var input entities.DepositRequestInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	tx, err := h.depositUsecase.Request(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":     "Deposit request submitted for review",
		"transaction": tx,
	})
}
