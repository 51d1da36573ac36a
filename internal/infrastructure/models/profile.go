package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Profile struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email        string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName     string          `gorm:"type:varchar(100)"`
	PasswordHash string          `gorm:"type:varchar(255);not null"`
	Level        string          `gorm:"type:varchar(20);not null;default:'gold'"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true"`
	LastLoginAt  *time.Time      `gorm:"type:timestamp"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
