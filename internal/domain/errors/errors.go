package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidState        = errors.New("invalid lifecycle state")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrTokenExpired        = errors.New("token expired")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrMinimumAmount       = errors.New("amount below minimum")
	ErrSelfTransfer        = errors.New("cannot transfer to own account")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrTierRequired        = errors.New("premium tier required")
	ErrInvalidCode         = errors.New("invalid verification code")
	ErrStore               = errors.New("store error")
)

// AppError represents an application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "ERR_NOT_FOUND", message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "ERR_INVALID_INPUT", message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "ERR_UNAUTHORIZED", message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "ERR_FORBIDDEN", message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "ERR_INTERNAL", "internal server error", err)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "ERR_BAD_REQUEST",
		Message: message,
		Err:     err,
	}
}

// TransferLeg identifies a leg of a two-account mutation.
type TransferLeg string

const (
	TransferLegDebit  TransferLeg = "DEBIT"
	TransferLegCredit TransferLeg = "CREDIT"
)

// PartialFailure reports a mutation sequence that failed after one leg had
// already been applied. Callers use it to distinguish "nothing happened"
// from "something happened, reconcile" when surfacing the failure.
type PartialFailure struct {
	CompletedLeg TransferLeg
	FailedLeg    TransferLeg
	Err          error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("partial failure: %s leg applied, %s leg failed: %v", e.CompletedLeg, e.FailedLeg, e.Err)
}

func (e *PartialFailure) Unwrap() error {
	return e.Err
}
