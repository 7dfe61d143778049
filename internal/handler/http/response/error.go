package response

import (
	"errors"
	"net/http"

	"github.com/uchiyama0208/nightbase-sub009/internal/domain/attendance"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/auth"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/queue"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/staff"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/subscription"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/venue"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, staff.ErrEmailExists):
		Conflict(w, "Email already registered in this venue")
	case errors.Is(err, staff.ErrStaffInactive):
		Forbidden(w, "Staff account is inactive")

	// Venue domain errors
	case errors.Is(err, venue.ErrVenueNotFound):
		NotFound(w, "Venue not found")
	case errors.Is(err, venue.ErrVenueNameExists):
		Conflict(w, "Venue name already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in for this business day")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No open shift to clock out of")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Shift already clocked out")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")

	// Order domain errors
	case errors.Is(err, order.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, order.ErrSessionAlreadyClosed):
		Conflict(w, "Session is already closed")
	case errors.Is(err, order.ErrTableOccupied):
		Conflict(w, "Table already has an open session")
	case errors.Is(err, order.ErrMenuItemNotFound):
		NotFound(w, "Menu item not found")
	case errors.Is(err, order.ErrLineItemNotFound):
		NotFound(w, "Line item not found")

	// Queue domain errors
	case errors.Is(err, queue.ErrTicketNotFound):
		NotFound(w, "Queue ticket not found")
	case errors.Is(err, queue.ErrTicketAlreadyFinalized):
		Conflict(w, "Queue ticket already seated, cancelled or expired")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPlanNotFound):
		NotFound(w, "Compensation plan not found")
	case errors.Is(err, payroll.ErrInvalidPlan),
		errors.Is(err, payroll.ErrInvalidTimeRounding),
		errors.Is(err, payroll.ErrInvalidPayoutRule),
		errors.Is(err, payroll.ErrUnknownPayoutMode),
		errors.Is(err, payroll.ErrInvalidDeductionRule):
		BadRequest(w, err.Error(), nil)

	// Subscription domain errors
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		NotFound(w, "Subscription not found")
	case errors.Is(err, subscription.ErrSubscriptionExpired):
		PaymentRequired(w, "Subscription has expired")
	case errors.Is(err, subscription.ErrAlreadySubscribed):
		Conflict(w, "Venue already has an active subscription")
	case errors.Is(err, subscription.ErrPlanNotFound):
		NotFound(w, "Plan not found")
	case errors.Is(err, subscription.ErrPlanNotActive):
		BadRequest(w, "Plan is not active", nil)
	case errors.Is(err, subscription.ErrSeatLimitExceeded):
		PaymentRequired(w, "Seat limit exceeded for current subscription")
	case errors.Is(err, subscription.ErrSeatsBelowActive):
		BadRequest(w, "Seat count cannot be less than active staff", nil)
	case errors.Is(err, subscription.ErrExceedsPlanSeats):
		BadRequest(w, "Requested seats exceed plan maximum", nil)
	case errors.Is(err, subscription.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, subscription.ErrInvoiceAlreadyPaid):
		Conflict(w, "Invoice has already been paid")
	case errors.Is(err, subscription.ErrPendingInvoiceExists):
		Conflict(w, "Pending invoice already exists")
	case errors.Is(err, subscription.ErrInvalidWebhookSignature):
		Unauthorized(w, "Invalid webhook signature")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
