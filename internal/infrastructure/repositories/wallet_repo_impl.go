package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/infrastructure/events"
	"coin-desk.backend/internal/infrastructure/models"
)

// WalletRepository implements platform deposit wallet operations
type WalletRepository struct {
	db   *gorm.DB
	feed *events.Feed
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB, feed *events.Feed) *WalletRepository {
	return &WalletRepository{db: db, feed: feed}
}

// GetActiveByMethod gets the active deposit wallet for a method
func (r *WalletRepository) GetActiveByMethod(ctx context.Context, method entities.WithdrawalMethod) (*entities.PlatformWallet, error) {
	var m models.Wallet
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("method = ? AND is_active = ?", string(method), true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWalletEntity(&m), nil
}

// List lists all configured deposit wallets
func (r *WalletRepository) List(ctx context.Context) ([]*entities.PlatformWallet, error) {
	var ms []models.Wallet
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("method asc").Find(&ms).Error; err != nil {
		return nil, err
	}

	wallets := make([]*entities.PlatformWallet, len(ms))
	for i := range ms {
		wallets[i] = toWalletEntity(&ms[i])
	}
	return wallets, nil
}

// Upsert inserts or overwrites the wallet row for the entity's method
func (r *WalletRepository) Upsert(ctx context.Context, wallet *entities.PlatformWallet) error {
	db := GetDB(ctx, r.db).WithContext(ctx)
	now := time.Now()

	result := db.Model(&models.Wallet{}).Where("method = ?", string(wallet.Method)).Updates(map[string]interface{}{
		"address":    wallet.Address,
		"is_active":  wallet.IsActive,
		"updated_at": now,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		m := &models.Wallet{
			ID:        uuid.New(),
			Method:    string(wallet.Method),
			Address:   wallet.Address,
			IsActive:  wallet.IsActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(m).Error; err != nil {
			return err
		}
		wallet.ID = m.ID
		wallet.CreatedAt = now
		wallet.UpdatedAt = now
		r.feed.Publish(ctx, "wallets", events.EventInsert, wallet)
		return nil
	}

	var m models.Wallet
	if err := db.Where("method = ?", string(wallet.Method)).First(&m).Error; err != nil {
		return err
	}
	wallet.ID = m.ID
	wallet.CreatedAt = m.CreatedAt
	wallet.UpdatedAt = m.UpdatedAt
	r.feed.Publish(ctx, "wallets", events.EventUpdate, wallet)
	return nil
}

func toWalletEntity(m *models.Wallet) *entities.PlatformWallet {
	return &entities.PlatformWallet{
		ID:        m.ID,
		Method:    entities.WithdrawalMethod(m.Method),
		Address:   m.Address,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
