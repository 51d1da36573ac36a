package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Trade struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Symbol    string          `gorm:"type:varchar(10);not null"`
	Side      string          `gorm:"type:varchar(4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Leverage  int             `gorm:"not null"`
	Status    string          `gorm:"type:varchar(10);not null;default:'open'"`
	CreatedAt time.Time
	ClosedAt  *time.Time `gorm:"type:timestamp"`
}
