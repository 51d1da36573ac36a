package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// AccountLevel represents the account tier gating feature access
type AccountLevel string

const (
	LevelGold    AccountLevel = "gold"
	LevelPremium AccountLevel = "premium"
	LevelAdmin   AccountLevel = "admin"
)

// Valid reports whether the level is one of the known tiers.
func (l AccountLevel) Valid() bool {
	switch l {
	case LevelGold, LevelPremium, LevelAdmin:
		return true
	}
	return false
}

// Profile represents a user account
type Profile struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	FullName    string          `json:"fullName,omitempty"`
	Level       AccountLevel    `json:"level"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"`
	LastLoginAt null.Time       `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	PasswordHash string `json:"-"`
}

// RegisterInput represents input for creating a profile
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"omitempty,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginInput represents input for profile login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Profile      *Profile `json:"profile"`
}

// UpdateProfileInput represents input for updating profile display fields
type UpdateProfileInput struct {
	FullName string `json:"fullName" binding:"required,max=100"`
}

// ChangePasswordInput represents input for changing the account password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=6"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}
