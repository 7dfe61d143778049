package subscription

import "errors"

var (
	// Subscription errors
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionExpired  = errors.New("subscription has expired")
	ErrAlreadySubscribed    = errors.New("venue already has an active subscription")

	// Plan errors
	ErrPlanNotFound  = errors.New("plan not found")
	ErrPlanNotActive = errors.New("plan is not active")

	// Seat errors
	ErrSeatLimitExceeded = errors.New("seat limit exceeded for current subscription")
	ErrSeatsBelowActive  = errors.New("seat count cannot be less than active staff")
	ErrExceedsPlanSeats  = errors.New("requested seats exceed plan maximum")

	// Invoice errors
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceAlreadyPaid   = errors.New("invoice has already been paid")
	ErrPendingInvoiceExists = errors.New("pending invoice already exists")

	// Webhook errors
	ErrInvalidWebhookSignature = errors.New("invalid webhook signature")
)
