package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "coin-desk.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error to an HTTP response. Mutation-sequence
// failures (PartialFailure) are reported distinctly from validation
// failures so the client can tell "nothing happened" from "something
// happened, contact support".
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	var partial *domainerrors.PartialFailure
	if errors.As(err, &partial) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":         "ERR_PARTIAL_FAILURE",
			"message":      "the operation partially completed, contact support",
			"completedLeg": partial.CompletedLeg,
			"failedLeg":    partial.FailedLeg,
		})
		return
	}

	status, code := statusFor(err)
	c.JSON(status, gin.H{
		"code":    code,
		"message": err.Error(),
	})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return http.StatusNotFound, "ERR_NOT_FOUND"
	case errors.Is(err, domainerrors.ErrRecipientNotFound):
		return http.StatusNotFound, "ERR_RECIPIENT_NOT_FOUND"
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return http.StatusConflict, "ERR_ALREADY_EXISTS"
	case errors.Is(err, domainerrors.ErrInvalidState):
		return http.StatusConflict, "ERR_INVALID_STATE"
	case errors.Is(err, domainerrors.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, "ERR_INSUFFICIENT_BALANCE"
	case errors.Is(err, domainerrors.ErrMinimumAmount):
		return http.StatusUnprocessableEntity, "ERR_MINIMUM_AMOUNT"
	case errors.Is(err, domainerrors.ErrSelfTransfer):
		return http.StatusUnprocessableEntity, "ERR_SELF_TRANSFER"
	case errors.Is(err, domainerrors.ErrTierRequired):
		return http.StatusForbidden, "ERR_TIER_REQUIRED"
	case errors.Is(err, domainerrors.ErrInvalidCode):
		return http.StatusUnprocessableEntity, "ERR_INVALID_CODE"
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return http.StatusBadRequest, "ERR_INVALID_INPUT"
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "ERR_INVALID_CREDENTIALS"
	case errors.Is(err, domainerrors.ErrAccountDisabled):
		return http.StatusForbidden, "ERR_ACCOUNT_DISABLED"
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "ERR_UNAUTHORIZED"
	case errors.Is(err, domainerrors.ErrForbidden):
		return http.StatusForbidden, "ERR_FORBIDDEN"
	default:
		return http.StatusInternalServerError, "ERR_INTERNAL"
	}
}
