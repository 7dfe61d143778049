package xendit

import (
	"strings"
)

// WebhookVerifier handles webhook signature verification
type WebhookVerifier struct {
	webhookToken string
}

// NewWebhookVerifier creates a new webhook verifier
func NewWebhookVerifier(webhookToken string) *WebhookVerifier {
	return &WebhookVerifier{
		webhookToken: webhookToken,
	}
}

// VerifySignature verifies the webhook callback token from Xendit.
// Xendit sends the token in the x-callback-token header.
func (v *WebhookVerifier) VerifySignature(callbackToken string) bool {
	return strings.TrimSpace(callbackToken) == strings.TrimSpace(v.webhookToken)
}

// InvoiceWebhookPayload represents the webhook payload for invoice events
type InvoiceWebhookPayload struct {
	ID         string  `json:"id"`
	ExternalID string  `json:"external_id"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	PaidAmount float64 `json:"paid_amount"`
	PaidAt     string  `json:"paid_at"`
	PayerEmail string  `json:"payer_email"`
	Currency   string  `json:"currency"`
	Updated    string  `json:"updated"`
	Created    string  `json:"created"`
}
