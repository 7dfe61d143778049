package auth

import (
	"context"
	"errors"
	"fmt"

	lwjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/auth"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/staff"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db        *database.DB
	staffRepo staff.StaffRepository
	jwtSvc    jwt.Service
}

func NewAuthService(db *database.DB, staffRepo staff.StaffRepository, jwtSvc jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:        db,
		staffRepo: staffRepo,
		jwtSvc:    jwtSvc,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, auth.RefreshToken, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, auth.RefreshToken{}, err
	}

	member, err := a.staffRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return auth.TokenResponse{}, auth.RefreshToken{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, auth.RefreshToken{}, fmt.Errorf("failed to get staff by email: %w", err)
	}

	if !member.IsActive {
		return auth.TokenResponse{}, auth.RefreshToken{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.RefreshToken{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := a.jwtSvc.GenerateAccessToken(member.ID, member.Email, member.VenueID, member.Role)
	if err != nil {
		return auth.TokenResponse{}, auth.RefreshToken{}, fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := a.jwtSvc.GenerateRefreshToken(member.ID)
	if err != nil {
		return auth.TokenResponse{}, auth.RefreshToken{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		StaffID:     member.ID,
		VenueID:     member.VenueID,
		Role:        string(member.Role),
		DisplayName: member.DisplayName,
	}, auth.RefreshToken{Token: refreshToken, ExpiresAt: refreshExpiresAt}, nil
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if a.jwtSvc.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	staffID, err := a.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, lwjwt.ErrTokenExpired()) {
			return auth.TokenResponse{}, auth.ErrTokenExpired
		}
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	member, err := a.staffRepo.GetByIDAnyVenue(ctx, staffID)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get staff: %w", err)
	}
	if !member.IsActive {
		return auth.TokenResponse{}, staff.ErrStaffInactive
	}

	accessToken, expiresAt, err := a.jwtSvc.GenerateAccessToken(member.ID, member.Email, member.VenueID, member.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		StaffID:     member.ID,
		VenueID:     member.VenueID,
		Role:        string(member.Role),
		DisplayName: member.DisplayName,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if _, err := a.jwtSvc.ValidateRefreshToken(refreshToken); err != nil {
		return nil
	}
	a.jwtSvc.RevokeToken(refreshToken)
	return nil
}
