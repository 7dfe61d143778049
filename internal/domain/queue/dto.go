package queue

import (
	"time"

	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/validator"
)

type TicketResponse struct {
	ID           string `json:"id"`
	BusinessDate string `json:"business_date"`
	Number       int    `json:"number"`
	PartySize    int    `json:"party_size"`
	Status       string `json:"status"`
	IssuedAt     string `json:"issued_at"`
	CalledAt     *string `json:"called_at,omitempty"`
}

func NewTicketResponse(t Ticket) TicketResponse {
	resp := TicketResponse{
		ID:           t.ID,
		BusinessDate: t.BusinessDate,
		Number:       t.Number,
		PartySize:    t.PartySize,
		Status:       string(t.Status),
		IssuedAt:     t.IssuedAt.Format(time.RFC3339),
	}
	if t.CalledAt != nil {
		str := t.CalledAt.Format(time.RFC3339)
		resp.CalledAt = &str
	}
	return resp
}

type IssueTicketRequest struct {
	PartySize int `json:"party_size"`
}

func (r *IssueTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PartySize < 1 {
		errs = append(errs, validator.ValidationError{Field: "party_size", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BoardResponse struct {
	BusinessDate string           `json:"business_date"`
	Waiting      []TicketResponse `json:"waiting"`
	Called       []TicketResponse `json:"called"`
}

// StreamTokenResponse carries a short-lived token for the board stream.
// EventSource cannot send Authorization headers, so the token rides the URL.
type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
