package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uchiyama0208/nightbase-sub009/internal/config"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/subscription"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/xendit"
)

const (
	billingPeriod      = 30 * 24 * time.Hour
	invoiceDuration    = 48 * 60 * 60 // seconds
	staleInvoiceCutoff = 72 * time.Hour
)

// invoiceGateway is the slice of the Xendit client the service needs.
type invoiceGateway interface {
	CreateInvoice(req xendit.CreateInvoiceRequest) (*xendit.InvoiceResponse, error)
	ExpireInvoice(invoiceID string) (*xendit.InvoiceResponse, error)
}

type subscriptionService struct {
	db           *database.DB
	planRepo     subscription.PlanRepository
	subRepo      subscription.SubscriptionRepository
	invoiceRepo  subscription.InvoiceRepository
	staffCounter subscription.StaffCounter
	xenditClient invoiceGateway
	cfg          *config.Config
	logger       *slog.Logger
}

func NewSubscriptionService(
	db *database.DB,
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	invoiceRepo subscription.InvoiceRepository,
	staffCounter subscription.StaffCounter,
	xenditClient invoiceGateway,
	cfg *config.Config,
	logger *slog.Logger,
) subscription.SubscriptionService {
	return &subscriptionService{
		db:           db,
		planRepo:     planRepo,
		subRepo:      subRepo,
		invoiceRepo:  invoiceRepo,
		staffCounter: staffCounter,
		xenditClient: xenditClient,
		cfg:          cfg,
		logger:       logger,
	}
}

func getClaimsFromContext(ctx context.Context) (venueID, email string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	venueID, ok := claims["venue_id"].(string)
	if !ok || venueID == "" {
		return "", "", fmt.Errorf("venue_id claim is missing or invalid")
	}

	email, _ = claims["email"].(string)
	return venueID, email, nil
}

// ListPlans implements subscription.SubscriptionService.
func (s *subscriptionService) ListPlans(ctx context.Context) ([]subscription.PlanResponse, error) {
	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	resp := make([]subscription.PlanResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, subscription.PlanResponse{
			ID:           p.ID,
			Name:         p.Name,
			PricePerSeat: p.PricePerSeat,
			MaxSeats:     p.MaxSeats,
		})
	}
	return resp, nil
}

// GetMySubscription implements subscription.SubscriptionService.
func (s *subscriptionService) GetMySubscription(ctx context.Context, venueID string) (subscription.SubscriptionResponse, error) {
	sub, err := s.subRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	resp := subscription.SubscriptionResponse{
		ID:        sub.ID,
		PlanID:    sub.PlanID,
		Status:    string(sub.Status),
		Seats:     sub.Seats,
		PeriodEnd: sub.PeriodEnd.Format(time.RFC3339),
	}
	if sub.PlanName != nil {
		resp.PlanName = *sub.PlanName
	}
	return resp, nil
}

// Subscribe implements subscription.SubscriptionService.
func (s *subscriptionService) Subscribe(ctx context.Context, req subscription.SubscribeRequest) (subscription.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return subscription.InvoiceResponse{}, err
	}

	venueID, email, err := getClaimsFromContext(ctx)
	if err != nil {
		return subscription.InvoiceResponse{}, err
	}

	plan, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		return subscription.InvoiceResponse{}, err
	}
	if !plan.IsActive {
		return subscription.InvoiceResponse{}, subscription.ErrPlanNotActive
	}
	if plan.MaxSeats != nil && req.Seats > *plan.MaxSeats {
		return subscription.InvoiceResponse{}, subscription.ErrExceedsPlanSeats
	}

	activeStaff, err := s.staffCounter.CountActiveByVenueID(ctx, venueID)
	if err != nil {
		return subscription.InvoiceResponse{}, fmt.Errorf("failed to count staff: %w", err)
	}
	if req.Seats < activeStaff {
		return subscription.InvoiceResponse{}, subscription.ErrSeatsBelowActive
	}

	now := time.Now()

	sub, err := s.subRepo.GetByVenueID(ctx, venueID)
	switch {
	case err == nil:
		if sub.IsUsable(now) && sub.Status == subscription.StatusActive {
			return subscription.InvoiceResponse{}, subscription.ErrAlreadySubscribed
		}
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		sub, err = s.subRepo.Create(ctx, subscription.Subscription{
			ID:        uuid.NewString(),
			VenueID:   venueID,
			PlanID:    plan.ID,
			Status:    subscription.StatusTrial,
			Seats:     req.Seats,
			PeriodEnd: now,
		})
		if err != nil {
			return subscription.InvoiceResponse{}, fmt.Errorf("failed to create subscription: %w", err)
		}
	default:
		return subscription.InvoiceResponse{}, err
	}

	hasPending, err := s.invoiceRepo.HasPending(ctx, venueID)
	if err != nil {
		return subscription.InvoiceResponse{}, fmt.Errorf("failed to check pending invoices: %w", err)
	}
	if hasPending {
		return subscription.InvoiceResponse{}, subscription.ErrPendingInvoiceExists
	}

	amount := plan.PricePerSeat.Mul(decimal.NewFromInt(int64(req.Seats)))
	externalID := fmt.Sprintf("sub-%s-%d", venueID, now.Unix())

	xinv, err := s.xenditClient.CreateInvoice(xendit.CreateInvoiceRequest{
		ExternalID:         externalID,
		Amount:             amount,
		Description:        fmt.Sprintf("%s plan, %d seats", plan.Name, req.Seats),
		PayerEmail:         email,
		Currency:           "JPY",
		InvoiceDuration:    invoiceDuration,
		SuccessRedirectURL: s.cfg.Xendit.SuccessRedirectURL,
		FailureRedirectURL: s.cfg.Xendit.FailureRedirectURL,
		Metadata: map[string]string{
			"venue_id":        venueID,
			"subscription_id": sub.ID,
		},
	})
	if err != nil {
		return subscription.InvoiceResponse{}, fmt.Errorf("failed to create payment invoice: %w", err)
	}

	inv, err := s.invoiceRepo.Create(ctx, subscription.Invoice{
		ID:             uuid.NewString(),
		VenueID:        venueID,
		SubscriptionID: sub.ID,
		ExternalID:     externalID,
		XenditID:       &xinv.ID,
		Amount:         amount,
		Status:         subscription.InvoiceStatusPending,
		InvoiceURL:     &xinv.InvoiceURL,
	})
	if err != nil {
		return subscription.InvoiceResponse{}, fmt.Errorf("failed to store invoice: %w", err)
	}

	return toInvoiceResponse(inv), nil
}

// ListInvoices implements subscription.SubscriptionService.
func (s *subscriptionService) ListInvoices(ctx context.Context) ([]subscription.InvoiceResponse, error) {
	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListByVenueID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	resp := make([]subscription.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, toInvoiceResponse(inv))
	}
	return resp, nil
}

// ProcessInvoicePaid implements subscription.SubscriptionService.
// Re-delivered webhooks are acknowledged without renewing twice.
func (s *subscriptionService) ProcessInvoicePaid(ctx context.Context, externalID string) error {
	inv, err := s.invoiceRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	if inv.Status == subscription.InvoiceStatusPaid {
		return nil
	}

	now := time.Now()
	if err := s.invoiceRepo.MarkPaid(ctx, inv.ID, now); err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	sub, err := s.subRepo.GetByVenueID(ctx, inv.VenueID)
	if err != nil {
		return err
	}

	periodEnd := sub.PeriodEnd
	if periodEnd.Before(now) {
		periodEnd = now
	}
	periodEnd = periodEnd.Add(billingPeriod)

	if err := s.subRepo.Renew(ctx, sub.ID, periodEnd, subscription.StatusActive); err != nil {
		return fmt.Errorf("failed to renew subscription: %w", err)
	}

	s.logger.Info("subscription renewed",
		"venue_id", inv.VenueID,
		"subscription_id", sub.ID,
		"period_end", periodEnd,
	)
	return nil
}

// CanAddStaff implements subscription.SubscriptionService.
func (s *subscriptionService) CanAddStaff(ctx context.Context, venueID string) (bool, error) {
	sub, err := s.subRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return false, nil
		}
		return false, err
	}
	if !sub.IsUsable(time.Now()) {
		return false, nil
	}

	count, err := s.staffCounter.CountActiveByVenueID(ctx, venueID)
	if err != nil {
		return false, fmt.Errorf("failed to count staff: %w", err)
	}
	return count < sub.Seats, nil
}

// UpdateExpiredSubscriptions implements subscription.SubscriptionService.
func (s *subscriptionService) UpdateExpiredSubscriptions(ctx context.Context) error {
	updated, err := s.subRepo.UpdateExpiredToStatus(ctx, time.Now(),
		[]subscription.SubscriptionStatus{subscription.StatusActive, subscription.StatusTrial, subscription.StatusPastDue, subscription.StatusCancelled},
		subscription.StatusExpired,
	)
	if err != nil {
		return fmt.Errorf("failed to expire subscriptions: %w", err)
	}
	if updated > 0 {
		s.logger.Info("subscriptions expired", "count", updated)
	}
	return nil
}

// CleanupStaleInvoices implements subscription.SubscriptionService.
// Hosted invoices that fail to expire are logged and skipped so one
// Xendit outage does not abort the sweep.
func (s *subscriptionService) CleanupStaleInvoices(ctx context.Context) error {
	xenditIDs, err := s.invoiceRepo.ExpireStale(ctx, time.Now().Add(-staleInvoiceCutoff))
	if err != nil {
		return fmt.Errorf("failed to expire stale invoices: %w", err)
	}
	if len(xenditIDs) == 0 {
		return nil
	}

	for _, id := range xenditIDs {
		if _, err := s.xenditClient.ExpireInvoice(id); err != nil {
			s.logger.Warn("failed to expire hosted invoice", "xendit_id", id, "error", err)
		}
	}
	s.logger.Info("stale invoices expired", "count", len(xenditIDs))
	return nil
}

func toInvoiceResponse(inv subscription.Invoice) subscription.InvoiceResponse {
	resp := subscription.InvoiceResponse{
		ID:         inv.ID,
		ExternalID: inv.ExternalID,
		Amount:     inv.Amount,
		Status:     string(inv.Status),
		InvoiceURL: inv.InvoiceURL,
	}
	if inv.PaidAt != nil {
		str := inv.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &str
	}
	return resp
}
