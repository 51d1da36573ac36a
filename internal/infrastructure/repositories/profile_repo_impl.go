package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/infrastructure/events"
	"coin-desk.backend/internal/infrastructure/models"
)

// ProfileRepository implements profile data operations
type ProfileRepository struct {
	db   *gorm.DB
	feed *events.Feed
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB, feed *events.Feed) *ProfileRepository {
	return &ProfileRepository{db: db, feed: feed}
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	m := &models.Profile{
		ID:           profile.ID,
		Email:        profile.Email,
		FullName:     profile.FullName,
		PasswordHash: profile.PasswordHash,
		Level:        string(profile.Level),
		Balance:      profile.Balance,
		IsActive:     profile.IsActive,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	r.feed.Publish(ctx, "profiles", events.EventInsert, profile)
	return nil
}

// GetByID gets a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	var m models.Profile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

// GetByEmail gets a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	var m models.Profile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

// Update updates display fields of a profile
func (r *ProfileRepository) Update(ctx context.Context, profile *entities.Profile) error {
	updates := map[string]interface{}{
		"full_name":  profile.FullName,
		"level":      string(profile.Level),
		"is_active":  profile.IsActive,
		"updated_at": time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("id = ?", profile.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	r.feed.Publish(ctx, "profiles", events.EventUpdate, profile)
	return nil
}

// UpdatePassword replaces the password hash
func (r *ProfileRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateLastLogin stamps last_login_at
func (r *ProfileRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Update("last_login_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetActive toggles the login gate
func (r *ProfileRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetLevel overwrites the account tier
func (r *ProfileRepository) SetLevel(ctx context.Context, id uuid.UUID, level entities.AccountLevel) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"level":      string(level),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpgradeGoldToPremium promotes to premium only from gold
func (r *ProfileRepository) UpgradeGoldToPremium(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).
		Where("id = ? AND level = ?", id, string(entities.LevelGold)).
		Updates(map[string]interface{}{
			"level":      string(entities.LevelPremium),
			"updated_at": time.Now(),
		})
	return result.Error
}

// SetBalance overwrites the balance and optionally the tier
func (r *ProfileRepository) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal, level entities.AccountLevel) error {
	updates := map[string]interface{}{
		"balance":    balance,
		"updated_at": time.Now(),
	}
	if level != "" {
		updates["level"] = string(level)
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AdjustBalance applies a signed delta as one server-side statement with a
// non-negative floor, then reads the resulting balance back.
func (r *ProfileRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Exec(
		`UPDATE profiles SET balance = balance + ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL AND balance + ? >= 0`,
		delta, time.Now(), id, delta,
	)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing profile from an over-draw.
		if _, err := r.GetByID(ctx, id); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, domainerrors.ErrInsufficientBalance
	}

	return r.readBalance(ctx, id)
}

// AdjustBalanceUnchecked applies a signed delta without the floor
func (r *ProfileRepository) AdjustBalanceUnchecked(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Exec(
		`UPDATE profiles SET balance = balance + ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		delta, time.Now(), id,
	)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, domainerrors.ErrNotFound
	}

	return r.readBalance(ctx, id)
}

func (r *ProfileRepository) readBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	var m models.Profile
	if err := GetDB(ctx, r.db).WithContext(ctx).Select("balance").Where("id = ?", id).First(&m).Error; err != nil {
		return decimal.Zero, err
	}
	r.feed.Publish(ctx, "profiles", events.EventUpdate, map[string]interface{}{
		"id":      id,
		"balance": m.Balance,
	})
	return m.Balance, nil
}

// List lists profiles with optional search filter
func (r *ProfileRepository) List(ctx context.Context, search string) ([]*entities.Profile, error) {
	var profileModels []models.Profile
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	var profiles []*entities.Profile
	for i := range profileModels {
		profiles = append(profiles, toProfileEntity(&profileModels[i]))
	}
	return profiles, nil
}

// Count returns the number of profiles
func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toProfileEntity(m *models.Profile) *entities.Profile {
	return &entities.Profile{
		ID:           m.ID,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		Level:        entities.AccountLevel(m.Level),
		Balance:      m.Balance,
		IsActive:     m.IsActive,
		LastLoginAt:  null.TimeFromPtr(m.LastLoginAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
