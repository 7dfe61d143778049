package subscription

import (
	"github.com/shopspring/decimal"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/validator"
)

type PlanResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PricePerSeat decimal.Decimal `json:"price_per_seat"`
	MaxSeats     *int            `json:"max_seats,omitempty"`
}

type SubscriptionResponse struct {
	ID        string  `json:"id"`
	PlanID    string  `json:"plan_id"`
	PlanName  string  `json:"plan_name"`
	Status    string  `json:"status"`
	Seats     int     `json:"seats"`
	PeriodEnd string  `json:"period_end"`
}

type SubscribeRequest struct {
	PlanID string `json:"plan_id"`
	Seats  int    `json:"seats"`
}

func (r *SubscribeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PlanID) {
		errs = append(errs, validator.ValidationError{Field: "plan_id", Message: "is required"})
	}
	if r.Seats < 1 {
		errs = append(errs, validator.ValidationError{Field: "seats", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type InvoiceResponse struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	InvoiceURL *string         `json:"invoice_url,omitempty"`
	PaidAt     *string         `json:"paid_at,omitempty"`
}
