package subscription

import "context"

// SubscriptionService defines business logic for subscription billing
type SubscriptionService interface {
	// ListPlans lists the purchasable plans
	ListPlans(ctx context.Context) ([]PlanResponse, error)

	// GetMySubscription retrieves the venue's subscription
	GetMySubscription(ctx context.Context, venueID string) (SubscriptionResponse, error)

	// Subscribe starts a subscription and issues the first invoice
	Subscribe(ctx context.Context, req SubscribeRequest) (InvoiceResponse, error)

	// ListInvoices lists the venue's invoices
	ListInvoices(ctx context.Context) ([]InvoiceResponse, error)

	// ProcessInvoicePaid handles a paid-invoice webhook event
	ProcessInvoicePaid(ctx context.Context, externalID string) error

	// CanAddStaff checks the venue's seat limit
	CanAddStaff(ctx context.Context, venueID string) (bool, error)

	// UpdateExpiredSubscriptions sweeps subscriptions past their period end
	UpdateExpiredSubscriptions(ctx context.Context) error

	// CleanupStaleInvoices expires old pending invoices
	CleanupStaleInvoices(ctx context.Context) error
}
