package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalMethod represents the settlement rail for a withdrawal
type WithdrawalMethod string

const (
	WithdrawalMethodBTC   WithdrawalMethod = "btc"
	WithdrawalMethodETH   WithdrawalMethod = "eth"
	WithdrawalMethodERC20 WithdrawalMethod = "erc20"
	WithdrawalMethodBank  WithdrawalMethod = "bank"
)

// Valid reports whether the method is a supported withdrawal method.
func (m WithdrawalMethod) Valid() bool {
	switch m {
	case WithdrawalMethodBTC, WithdrawalMethodETH, WithdrawalMethodERC20, WithdrawalMethodBank:
		return true
	}
	return false
}

// PlatformWallet is a platform-owned deposit address for one method.
// Users send funds to it; the admin panel manages the rows.
type PlatformWallet struct {
	ID        uuid.UUID        `json:"id"`
	Method    WithdrawalMethod `json:"method"`
	Address   string           `json:"address"`
	IsActive  bool             `json:"isActive"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// SetWalletAddressInput represents input for configuring a deposit wallet
type SetWalletAddressInput struct {
	Address string `json:"address" binding:"required,max=255"`
	Active  *bool  `json:"active" binding:"required"`
}

// RequestWithdrawalInput represents input for requesting a withdrawal
type RequestWithdrawalInput struct {
	Amount  decimal.Decimal  `json:"amount" binding:"required"`
	Address string           `json:"address" binding:"required"`
	Method  WithdrawalMethod `json:"method" binding:"required,oneof=btc eth erc20 bank"`
}

// WithdrawalChallenge is returned after a withdrawal request is accepted.
// The verification code itself is delivered out of band.
type WithdrawalChallenge struct {
	ChallengeID string `json:"challengeId"`
}

// ConfirmWithdrawalInput represents input for confirming a withdrawal
type ConfirmWithdrawalInput struct {
	ChallengeID string `json:"challengeId" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// ResendCodeInput represents input for reissuing a verification code
type ResendCodeInput struct {
	ChallengeID string `json:"challengeId" binding:"required"`
}

// TransferInput represents input for an internal transfer
type TransferInput struct {
	RecipientEmail string          `json:"recipientEmail" binding:"required,email"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
}

// TransferResult reports both legs of a completed transfer
type TransferResult struct {
	SenderBalance    decimal.Decimal `json:"senderBalance"`
	RecipientBalance decimal.Decimal `json:"recipientBalance"`
}
