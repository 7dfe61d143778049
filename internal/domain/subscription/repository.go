package subscription

import (
	"context"
	"time"
)

// PlanRepository handles subscription plan data operations
type PlanRepository interface {
	// GetByID retrieves a plan by its ID
	GetByID(ctx context.Context, id string) (Plan, error)

	// ListActive retrieves all active plans
	ListActive(ctx context.Context) ([]Plan, error)
}

// SubscriptionRepository handles subscription data operations
type SubscriptionRepository interface {
	// GetByVenueID retrieves a subscription with plan joins
	GetByVenueID(ctx context.Context, venueID string) (Subscription, error)

	// Create creates a new subscription
	Create(ctx context.Context, subscription Subscription) (Subscription, error)

	// UpdateStatus updates subscription status
	UpdateStatus(ctx context.Context, id string, status SubscriptionStatus) error

	// Renew extends the period end after a paid invoice
	Renew(ctx context.Context, id string, periodEnd time.Time, status SubscriptionStatus) error

	// UpdateExpiredToStatus bulk-moves subscriptions past their period end
	UpdateExpiredToStatus(ctx context.Context, cutoff time.Time, fromStatuses []SubscriptionStatus, toStatus SubscriptionStatus) (int64, error)
}

// InvoiceRepository handles invoice data operations
type InvoiceRepository interface {
	// Create creates a new invoice
	Create(ctx context.Context, invoice Invoice) (Invoice, error)

	// GetByExternalID retrieves an invoice by its external (checkout) ID
	GetByExternalID(ctx context.Context, externalID string) (Invoice, error)

	// MarkPaid records a paid invoice
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error

	// ListByVenueID retrieves all invoices for a venue, newest first
	ListByVenueID(ctx context.Context, venueID string) ([]Invoice, error)

	// HasPending checks if the venue has a pending invoice
	HasPending(ctx context.Context, venueID string) (bool, error)

	// ExpireStale marks old pending invoices as expired and returns the
	// Xendit invoice IDs of the rows it touched so the hosted invoices
	// can be expired too
	ExpireStale(ctx context.Context, olderThan time.Time) ([]string, error)
}

// StaffCounter provides the active staff count for seat-limit checks.
// Implemented by the staff repository.
type StaffCounter interface {
	CountActiveByVenueID(ctx context.Context, venueID string) (int, error)
}
