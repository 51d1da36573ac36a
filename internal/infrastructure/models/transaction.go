package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Type      string          `gorm:"type:varchar(20);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Status    string          `gorm:"type:varchar(20);not null;default:'pending'"`
	Details   string          `gorm:"type:text"`
	CreatedAt time.Time

	Profile *Profile `gorm:"foreignKey:UserID"`
}
