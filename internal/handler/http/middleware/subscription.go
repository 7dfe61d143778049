package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/subscription"
	"github.com/uchiyama0208/nightbase-sub009/internal/handler/http/response"
)

// SubscriptionMiddleware provides middleware functions for subscription checks
type SubscriptionMiddleware struct {
	subscriptionService subscription.SubscriptionService
}

// NewSubscriptionMiddleware creates a new subscription middleware
func NewSubscriptionMiddleware(subscriptionService subscription.SubscriptionService) *SubscriptionMiddleware {
	return &SubscriptionMiddleware{
		subscriptionService: subscriptionService,
	}
}

// RequireActiveSubscription checks that the venue's subscription still
// grants access before letting a request through to billable features.
func (m *SubscriptionMiddleware) RequireActiveSubscription(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.Unauthorized(w, "unauthorized")
			return
		}

		claims, err := token.AsMap(r.Context())
		if err != nil {
			response.Unauthorized(w, "invalid token claims")
			return
		}

		venueID, ok := claims["venue_id"].(string)
		if !ok || venueID == "" {
			response.Forbidden(w, "no venue associated with this token")
			return
		}

		sub, err := m.subscriptionService.GetMySubscription(r.Context(), venueID)
		if err != nil {
			response.HandleError(w, subscription.ErrSubscriptionNotFound)
			return
		}

		status := subscription.SubscriptionStatus(sub.Status)
		if !isActiveStatus(status) {
			response.HandleError(w, subscription.ErrSubscriptionExpired)
			return
		}
		if status == subscription.StatusCancelled {
			periodEnd, err := time.Parse(time.RFC3339, sub.PeriodEnd)
			if err != nil || time.Now().After(periodEnd) {
				response.HandleError(w, subscription.ErrSubscriptionExpired)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// Cancelled passes the status check because the paid period may still be
// running; the time-based check above enforces period_end.
func isActiveStatus(status subscription.SubscriptionStatus) bool {
	switch status {
	case subscription.StatusActive, subscription.StatusTrial, subscription.StatusPastDue, subscription.StatusCancelled:
		return true
	default:
		return false
	}
}
