package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/interfaces/http/response"
	"coin-desk.backend/internal/usecases"
)

type adminService interface {
	ListUsers(ctx context.Context, search string) ([]*entities.Profile, error)
	PendingDeposits(ctx context.Context) ([]*entities.Transaction, error)
	SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error
	SetUserLevel(ctx context.Context, userID uuid.UUID, level entities.AccountLevel) error
	Stats(ctx context.Context) (*usecases.PlatformStats, error)
	ListWallets(ctx context.Context) ([]*entities.PlatformWallet, error)
	SetWallet(ctx context.Context, method entities.WithdrawalMethod, input *entities.SetWalletAddressInput) (*entities.PlatformWallet, error)
}

type depositReviewService interface {
	Review(ctx context.Context, transactionID uuid.UUID, decision entities.ReviewDecision) (*entities.Transaction, error)
}

// AdminHandler handles admin endpoints
type AdminHandler struct {
	adminUsecase   adminService
	depositUsecase depositReviewService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase, depositUsecase *usecases.DepositUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase:   adminUsecase,
		depositUsecase: depositUsecase,
	}
}

// ListUsers lists platform users, optionally filtered by email or name
// GET /api/v1/admin/users?search=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if users == nil {
		users = []*entities.Profile{}
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// PendingDeposits lists deposit requests awaiting review, oldest first
// GET /api/v1/admin/deposits/pending
func (h *AdminHandler) PendingDeposits(c *gin.Context) {
	deposits, err := h.adminUsecase.PendingDeposits(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if deposits == nil {
		deposits = []*entities.Transaction{}
	}

	response.Success(c, http.StatusOK, gin.H{"deposits": deposits})
}

// ReviewDeposit approves or rejects a pending deposit
// PUT /api/v1/admin/deposits/:id/review
func (h *AdminHandler) ReviewDeposit(c *gin.Context) {
	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid transaction ID"))
		return
	}

	var input entities.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tx, err := h.depositUsecase.Review(c.Request.Context(), txID, input.Decision)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Transaction not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":     "Deposit reviewed",
		"transaction": tx,
	})
}

// SetUserActive enables or disables an account
// PUT /api/v1/admin/users/:id/active
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.SetUserActive(c.Request.Context(), userID, *input.Active); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User updated"})
}

// SetUserLevel changes an account's tier
// PUT /api/v1/admin/users/:id/level
func (h *AdminHandler) SetUserLevel(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input struct {
		Level entities.AccountLevel `json:"level" binding:"required,oneof=gold premium admin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.SetUserLevel(c.Request.Context(), userID, input.Level); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User level updated"})
}

// ListWallets lists the platform deposit wallets
// GET /api/v1/admin/wallets
func (h *AdminHandler) ListWallets(c *gin.Context) {
	wallets, err := h.adminUsecase.ListWallets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if wallets == nil {
		wallets = []*entities.PlatformWallet{}
	}

	response.Success(c, http.StatusOK, gin.H{"wallets": wallets})
}

// SetWallet stores the deposit address for a method
// PUT /api/v1/admin/wallets/:method
func (h *AdminHandler) SetWallet(c *gin.Context) {
	method := entities.WithdrawalMethod(c.Param("method"))

	var input entities.SetWalletAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	wallet, err := h.adminUsecase.SetWallet(c.Request.Context(), method, &input)
	if err != nil {
		if err == domainerrors.ErrInvalidInput {
			response.Error(c, domainerrors.BadRequest("Invalid deposit method"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Wallet updated",
		"wallet":  wallet,
	})
}

// Stats returns platform-wide counters
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
