package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus represents the status of a venue subscription
type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusExpired InvoiceStatus = "expired"
)

// Plan represents a subscription plan
type Plan struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PricePerSeat decimal.Decimal `json:"price_per_seat"`
	MaxSeats     *int            `json:"max_seats,omitempty"` // nil = unlimited
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Subscription represents a venue's subscription
type Subscription struct {
	ID        string             `json:"id"`
	VenueID   string             `json:"venue_id"`
	PlanID    string             `json:"plan_id"`
	Status    SubscriptionStatus `json:"status"`
	Seats     int                `json:"seats"`
	PeriodEnd time.Time          `json:"period_end"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Joined fields
	PlanName     *string          `json:"plan_name,omitempty"`
	PricePerSeat *decimal.Decimal `json:"price_per_seat,omitempty"`
}

// IsUsable reports whether the subscription still grants access.
// Cancelled subscriptions keep access until period_end.
func (s *Subscription) IsUsable(now time.Time) bool {
	switch s.Status {
	case StatusActive, StatusTrial, StatusPastDue:
		return true
	case StatusCancelled:
		return now.Before(s.PeriodEnd)
	default:
		return false
	}
}

// Invoice represents a billing invoice issued via the payment provider
type Invoice struct {
	ID             string          `json:"id"`
	VenueID        string          `json:"venue_id"`
	SubscriptionID string          `json:"subscription_id"`
	ExternalID     string          `json:"external_id"`
	XenditID       *string         `json:"xendit_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Status         InvoiceStatus   `json:"status"`
	InvoiceURL     *string         `json:"invoice_url,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
