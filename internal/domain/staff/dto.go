package staff

import (
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/validator"
)

type StaffResponse struct {
	ID          string `json:"id"`
	VenueID     string `json:"venue_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	HourlyRate  int64  `json:"hourly_rate"`
	IsActive    bool   `json:"is_active"`
}

type CreateStaffRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	HourlyRate  int64  `json:"hourly_rate"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if validator.IsEmpty(r.DisplayName) {
		errs = append(errs, validator.ValidationError{Field: "display_name", Message: "is required"})
	}
	if !validator.IsValidStaffRole(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'owner', 'manager' or 'cast'"})
	}
	if r.HourlyRate < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStaffRequest struct {
	ID          string
	DisplayName *string `json:"display_name,omitempty"`
	Role        *string `json:"role,omitempty"`
	HourlyRate  *int64  `json:"hourly_rate,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DisplayName != nil && validator.IsEmpty(*r.DisplayName) {
		errs = append(errs, validator.ValidationError{Field: "display_name", Message: "must not be empty"})
	}
	if r.Role != nil && !validator.IsValidStaffRole(*r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'owner', 'manager' or 'cast'"})
	}
	if r.HourlyRate != nil && *r.HourlyRate < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
