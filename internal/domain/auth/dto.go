package auth

import (
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RefreshToken carries the raw token and its expiry so the handler can
// set the cookie lifetime without knowing the JWT configuration.
type RefreshToken struct {
	Token     string
	ExpiresAt int64
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	StaffID     string `json:"staff_id"`
	VenueID     string `json:"venue_id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}
