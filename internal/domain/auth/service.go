package auth

import "context"

// AuthService defines first-party authentication operations
type AuthService interface {
	// Login verifies credentials and issues access + refresh tokens
	Login(ctx context.Context, req LoginRequest) (TokenResponse, RefreshToken, error)

	// Refresh exchanges a refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes a refresh token
	Logout(ctx context.Context, refreshToken string) error
}
