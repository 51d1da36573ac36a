package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
	"coin-desk.backend/internal/domain/repositories"
	"coin-desk.backend/pkg/crypto"
	"coin-desk.backend/pkg/jwt"
)

// AuthUsecase handles registration and login. A profile is created at
// first authentication with the gold tier and a zero balance.
type AuthUsecase struct {
	profileRepo repositories.ProfileRepository
	jwtService  *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(profileRepo repositories.ProfileRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		profileRepo: profileRepo,
		jwtService:  jwtService,
	}
}

// Register creates a new profile and returns an authenticated session
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	_, err := u.profileRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &entities.Profile{
		ID:           uuid.New(),
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: passwordHash,
		Level:        entities.LevelGold,
		Balance:      decimal.Zero,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(profile.ID, profile.Email, string(profile.Level))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		Profile:      profile,
	}, nil
}

// Login authenticates a profile and returns tokens. The disabled-account
// state is only revealed after a correct password.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	profile, err := u.profileRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, profile.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !profile.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}

	if err := u.profileRepo.UpdateLastLogin(ctx, profile.ID); err != nil {
		return nil, err
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(profile.ID, profile.Email, string(profile.Level))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		Profile:      profile,
	}, nil
}

// GetProfile returns the profile for an authenticated user
func (u *AuthUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	return u.profileRepo.GetByID(ctx, userID)
}

// UpdateProfile updates the profile's display fields and returns the
// stored profile.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.FullName = input.FullName
	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RefreshToken validates a refresh token and issues a fresh pair
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	profile, err := u.profileRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}
	if !profile.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(profile.ID, profile.Email, string(profile.Level))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		Profile:      profile,
	}, nil
}

// ChangePassword verifies the current password and stores a new hash
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, profile.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	newHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.profileRepo.UpdatePassword(ctx, userID, newHash)
}
