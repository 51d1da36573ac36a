package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
)

func newProfile(email string, balance int64) *entities.Profile {
	return &entities.Profile{
		ID:           uuid.New(),
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "hash",
		Level:        entities.LevelGold,
		Balance:      decimal.NewFromInt(balance),
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db, nil)
	ctx := context.Background()

	p := newProfile("alice@example.com", 100)
	require.NoError(t, repo.Create(ctx, p))

	byID, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Email, byID.Email)
	require.True(t, byID.Balance.Equal(decimal.NewFromInt(100)))

	byEmail, err := repo.GetByEmail(ctx, p.Email)
	require.NoError(t, err)
	require.Equal(t, p.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileRepository_UpdateBranches(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db, nil)
	ctx := context.Background()

	p := newProfile("bob@example.com", 0)
	require.NoError(t, repo.Create(ctx, p))

	p.FullName = "Bob Updated"
	require.NoError(t, repo.Update(ctx, p))

	require.NoError(t, repo.UpdatePassword(ctx, p.ID, "new-hash"))
	require.NoError(t, repo.UpdateLastLogin(ctx, p.ID))
	require.NoError(t, repo.SetActive(ctx, p.ID, false))
	require.NoError(t, repo.SetLevel(ctx, p.ID, entities.LevelAdmin))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Bob Updated", got.FullName)
	require.Equal(t, "new-hash", got.PasswordHash)
	require.True(t, got.LastLoginAt.Valid)
	require.False(t, got.IsActive)
	require.Equal(t, entities.LevelAdmin, got.Level)

	missing := uuid.New()
	require.ErrorIs(t, repo.Update(ctx, &entities.Profile{ID: missing}), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdatePassword(ctx, missing, "x"), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdateLastLogin(ctx, missing), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.SetActive(ctx, missing, true), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.SetLevel(ctx, missing, entities.LevelGold), domainerrors.ErrNotFound)
}

func TestProfileRepository_UpgradeGoldToPremium(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db, nil)
	ctx := context.Background()

	p := newProfile("carol@example.com", 80)
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.UpgradeGoldToPremium(ctx, p.ID))
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.LevelPremium, got.Level)

	// Admin accounts are never touched by the conditional upgrade.
	require.NoError(t, repo.SetLevel(ctx, p.ID, entities.LevelAdmin))
	require.NoError(t, repo.UpgradeGoldToPremium(ctx, p.ID))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.LevelAdmin, got.Level)
}

func TestProfileRepository_SetBalance(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db, nil)
	ctx := context.Background()

	p := newProfile("dave@example.com", 10)
	require.NoError(t, repo.Create(ctx, p))

	// Balance only
	require.NoError(t, repo.SetBalance(ctx, p.ID, decimal.NewFromInt(50), ""))
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(50)))
	require.Equal(t, entities.LevelGold, got.Level)

	// Balance and level together
	require.NoError(t, repo.SetBalance(ctx, p.ID, decimal.NewFromInt(90), entities.LevelPremium))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(90)))
	require.Equal(t, entities.LevelPremium, got.Level)

	require.ErrorIs(t, repo.SetBalance(ctx, uuid.New(), decimal.Zero, ""), domainerrors.ErrNotFound)
}

func TestProfileRepository_AdjustBalance(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db, nil)
	ctx := context.Background()

	p := newProfile("erin@example.com", 100)
	require.NoError(t, repo.Create(ctx, p))

	newBalance, err := repo.AdjustBalance(ctx, p.ID, decimal.NewFromInt(-40))
	require.NoError(t, err)
	require.True(t, newBalance.Equal(decimal.NewFromInt(60)))

	newBalance, err = repo.AdjustBalance(ctx, p.ID, decimal.NewFromInt(15))
	require.NoError(t, err)
	require.True(t, newBalance.Equal(decimal.NewFromInt(75)))

	// Over-draw is rejected and the balance is untouched.
	_, err = repo.AdjustBalance(ctx, p.ID, decimal.NewFromInt(-76))
	require.ErrorIs(t, err, domainerrors.ErrInsufficientBalance)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(75)))

	// Draining to exactly zero is allowed.
	newBalance, err = repo.AdjustBalance(ctx, p.ID, decimal.NewFromInt(-75))
	require.NoError(t, err)
	require.True(t, newBalance.IsZero())

	_, err = repo.AdjustBalance(ctx, uuid.New(), decimal.NewFromInt(1))
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileRepository_AdjustBalanceUnchecked(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db, nil)
	ctx := context.Background()

	p := newProfile("frank@example.com", 20)
	require.NoError(t, repo.Create(ctx, p))

	newBalance, err := repo.AdjustBalanceUnchecked(ctx, p.ID, decimal.NewFromInt(-50))
	require.NoError(t, err)
	require.True(t, newBalance.Equal(decimal.NewFromInt(-30)))

	_, err = repo.AdjustBalanceUnchecked(ctx, uuid.New(), decimal.NewFromInt(1))
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileRepository_ListAndCount(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db, nil)
	ctx := context.Background()

	a := newProfile("grace@example.com", 0)
	a.FullName = "Grace Hopper"
	b := newProfile("heidi@example.com", 0)
	b.FullName = "Heidi Lamarr"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	byName, err := repo.List(ctx, "Hopper")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, a.ID, byName[0].ID)

	byEmail, err := repo.List(ctx, "heidi@")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	require.Equal(t, b.ID, byEmail[0].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}
