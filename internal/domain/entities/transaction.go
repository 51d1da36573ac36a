package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TransactionType represents the kind of balance-affecting event
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTrade      TransactionType = "trade"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// Valid reports whether the type is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTrade, TransactionTypeTransfer:
		return true
	}
	return false
}

// TransactionStatus represents the lifecycle state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusRejected  TransactionStatus = "rejected"
)

// Valid reports whether the status is a known transaction status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is allowed.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusRejected
}

// TransactionDetails is the structured free-form payload attached to a
// transaction: destination address, counterpart email, originating trade.
type TransactionDetails struct {
	Address          null.String `json:"address,omitempty"`
	Method           null.String `json:"method,omitempty"`
	CounterpartEmail null.String `json:"counterpartEmail,omitempty"`
	Note             null.String `json:"note,omitempty"`
	TradeID          null.String `json:"tradeId,omitempty"`
	Symbol           null.String `json:"symbol,omitempty"`
	Side             null.String `json:"side,omitempty"`
	Leverage         null.Int    `json:"leverage,omitempty"`
}

// Transaction is an append-only ledger entry, one per balance-affecting
// event. Amount is signed: positive credits, negative debits.
type Transaction struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"userId"`
	Type      TransactionType    `json:"type"`
	Amount    decimal.Decimal    `json:"amount"`
	Status    TransactionStatus  `json:"status"`
	Details   TransactionDetails `json:"details"`
	CreatedAt time.Time          `json:"createdAt"`

	// Join, populated for admin review queues
	Profile *Profile `json:"profile,omitempty"`
}

// DepositRequestInput represents input for filing a deposit request
type DepositRequestInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"omitempty,max=50"`
}

// ReviewDecision is an admin's verdict on a pending transaction
type ReviewDecision string

const (
	ReviewApprove ReviewDecision = "completed"
	ReviewReject  ReviewDecision = "rejected"
)

// ReviewInput represents input for reviewing a pending deposit
type ReviewInput struct {
	Decision ReviewDecision `json:"decision" binding:"required,oneof=completed rejected"`
}
