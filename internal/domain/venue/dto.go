package venue

import (
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/validator"
)

type VenueResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Timezone        string `json:"timezone"`
	DaySwitchHour   int    `json:"day_switch_hour"`
	DaySwitchMinute int    `json:"day_switch_minute"`
	TableCount      int    `json:"table_count"`
}

type UpdateVenueRequest struct {
	Name            *string `json:"name,omitempty"`
	Timezone        *string `json:"timezone,omitempty"`
	DaySwitchHour   *int    `json:"day_switch_hour,omitempty"`
	DaySwitchMinute *int    `json:"day_switch_minute,omitempty"`
	TableCount      *int    `json:"table_count,omitempty"`
}

func (r *UpdateVenueRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{Field: "timezone", Message: "must be a valid IANA timezone"})
	}
	if r.DaySwitchHour != nil && (*r.DaySwitchHour < 0 || *r.DaySwitchHour > 23) {
		errs = append(errs, validator.ValidationError{Field: "day_switch_hour", Message: "must be between 0 and 23"})
	}
	if r.DaySwitchMinute != nil && (*r.DaySwitchMinute < 0 || *r.DaySwitchMinute > 59) {
		errs = append(errs, validator.ValidationError{Field: "day_switch_minute", Message: "must be between 0 and 59"})
	}
	if r.TableCount != nil && *r.TableCount < 0 {
		errs = append(errs, validator.ValidationError{Field: "table_count", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
