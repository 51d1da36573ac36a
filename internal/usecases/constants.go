package usecases

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	// MinTradeAmount is the minimum notional for opening a position
	MinTradeAmount = decimal.NewFromInt(10)

	// MinWithdrawalAmount is the minimum withdrawal request amount
	MinWithdrawalAmount = decimal.NewFromInt(10)

	// MinTransferAmount is the minimum internal transfer amount
	MinTransferAmount = decimal.NewFromInt(1)

	// PremiumUpgradeThreshold is the balance at which a completed deposit
	// promotes a gold account to premium
	PremiumUpgradeThreshold = decimal.NewFromInt(70)
)

const (
	// MaxLeverage is the highest accepted leverage multiplier
	MaxLeverage = 100

	// WithdrawalIntentTTL is how long a withdrawal challenge stays valid
	WithdrawalIntentTTL = 10 * time.Minute
)
