package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/subscription"
	"github.com/uchiyama0208/nightbase-sub009/internal/handler/http/response"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/xendit"
)

// SubscriptionHandler handles subscription-related HTTP requests
type SubscriptionHandler interface {
	// Public endpoints
	GetPlans(w http.ResponseWriter, r *http.Request)
	HandleWebhook(w http.ResponseWriter, r *http.Request)

	// Authenticated endpoints
	GetMySubscription(w http.ResponseWriter, r *http.Request)
	GetInvoices(w http.ResponseWriter, r *http.Request)

	// Owner-only endpoints
	Subscribe(w http.ResponseWriter, r *http.Request)
}

type subscriptionHandlerImpl struct {
	subscriptionService subscription.SubscriptionService
	webhookVerifier     *xendit.WebhookVerifier
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(
	subscriptionService subscription.SubscriptionService,
	webhookVerifier *xendit.WebhookVerifier,
) SubscriptionHandler {
	return &subscriptionHandlerImpl{
		subscriptionService: subscriptionService,
		webhookVerifier:     webhookVerifier,
	}
}

// GetPlans lists the purchasable plans
// GET /api/v1/subscription/plans - Public
func (h *subscriptionHandlerImpl) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.subscriptionService.ListPlans(r.Context())
	if err != nil {
		slog.Error("GetPlans service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, plans)
}

// GetMySubscription retrieves the venue's subscription
// GET /api/v1/subscription/my
func (h *subscriptionHandlerImpl) GetMySubscription(w http.ResponseWriter, r *http.Request) {
	venueID, ok := getVenueIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	sub, err := h.subscriptionService.GetMySubscription(r.Context(), venueID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sub)
}

// Subscribe starts a subscription and issues the first invoice
// POST /api/v1/subscription/subscribe - Owner only
func (h *subscriptionHandlerImpl) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscription.SubscribeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Subscribe decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	invoice, err := h.subscriptionService.Subscribe(r.Context(), req)
	if err != nil {
		slog.Error("Subscribe service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invoice created successfully", invoice)
}

// GetInvoices lists the venue's invoices
// GET /api/v1/subscription/invoices
func (h *subscriptionHandlerImpl) GetInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.subscriptionService.ListInvoices(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, invoices)
}

// HandleWebhook processes Xendit webhook callbacks
// POST /api/v1/webhook/xendit - Public (signature verified)
func (h *subscriptionHandlerImpl) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	// Read the raw body for signature verification
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "failed to read request body", nil)
		return
	}

	callbackToken := r.Header.Get("X-Callback-Token")
	if callbackToken == "" {
		response.Unauthorized(w, "missing callback token")
		return
	}

	if !h.webhookVerifier.VerifySignature(callbackToken) {
		response.HandleError(w, subscription.ErrInvalidWebhookSignature)
		return
	}

	var payload xendit.InvoiceWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		response.BadRequest(w, "invalid webhook payload", nil)
		return
	}

	switch payload.Status {
	case xendit.InvoiceStatusPaid, xendit.InvoiceStatusSettled:
		if err := h.subscriptionService.ProcessInvoicePaid(r.Context(), payload.ExternalID); err != nil {
			slog.Error("HandleWebhook service error", "error", err, "external_id", payload.ExternalID)
			response.HandleError(w, err)
			return
		}
	default:
		// Other statuses are handled by the stale-invoice sweep
		slog.Info("Webhook ignored", "status", payload.Status, "external_id", payload.ExternalID)
	}

	// Return 200 OK to acknowledge receipt
	response.Success(w, map[string]string{
		"status": "received",
	})
}

// Helper function to get venue ID from JWT claims
func getVenueIDFromContext(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	venueID, ok := claims["venue_id"].(string)
	return venueID, ok && venueID != ""
}
