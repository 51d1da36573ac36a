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

type withdrawalService interface {
	Request(ctx context.Context, userID uuid.UUID, input *entities.RequestWithdrawalInput) (*entities.WithdrawalChallenge, error)
	Confirm(ctx context.Context, userID uuid.UUID, input *entities.ConfirmWithdrawalInput) (*entities.Transaction, error)
	ResendCode(ctx context.Context, userID uuid.UUID, challengeID string) error
}

type transferService interface {
	Transfer(ctx context.Context, senderID uuid.UUID, input *entities.TransferInput) (*entities.TransferResult, error)
}

// WithdrawalHandler handles withdrawal and internal transfer endpoints
type WithdrawalHandler struct {
	withdrawalUsecase withdrawalService
	transferUsecase   transferService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalUsecase *usecases.WithdrawalUsecase, transferUsecase *usecases.TransferUsecase) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalUsecase: withdrawalUsecase,
		transferUsecase:   transferUsecase,
	}
}

// RequestWithdrawal starts a withdrawal and issues a verification challenge
// POST /api/v1/withdrawals
func (h *WithdrawalHandler) RequestWithdrawal(c *gin.Context) {
	var input entities.RequestWithdrawalInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	challenge, err := h.withdrawalUsecase.Request(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{
		"message":     "Verification code sent",
		"challengeId": challenge.ChallengeID,
	})
}

// ConfirmWithdrawal completes a withdrawal with the delivered code
// POST /api/v1/withdrawals/confirm
func (h *WithdrawalHandler) ConfirmWithdrawal(c *gin.Context) {
	var input entities.ConfirmWithdrawalInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	tx, err := h.withdrawalUsecase.Confirm(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":     "Withdrawal submitted for processing",
		"transaction": tx,
	})
}

// ResendCode reissues the verification code for a pending challenge
// POST /api/v1/withdrawals/resend-code
func (h *WithdrawalHandler) ResendCode(c *gin.Context) {
	var input entities.ResendCodeInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.withdrawalUsecase.ResendCode(c.Request.Context(), userID, input.ChallengeID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Verification code resent"})
}

// Transfer moves funds to another account
// POST /api/v1/transfers
func (h *WithdrawalHandler) Transfer(c *gin.Context) {
	var input entities.TransferInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	result, err := h.transferUsecase.Transfer(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Transfer completed",
		"balance": result.SenderBalance,
	})
}
