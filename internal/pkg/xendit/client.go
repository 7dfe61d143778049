package xendit

import (
	"github.com/uchiyama0208/nightbase-sub009/internal/config"
	xenditSDK "github.com/xendit/xendit-go/v7"
	"github.com/xendit/xendit-go/v7/invoice"
)

// Client wraps the official Xendit SDK
type Client struct {
	sdk        *xenditSDK.APIClient
	invoiceAPI invoice.InvoiceApi
}

// NewClient creates a new Xendit client using the official SDK
func NewClient(cfg config.XenditConfig) *Client {
	sdk := xenditSDK.NewClient(cfg.APIKey)

	return &Client{
		sdk:        sdk,
		invoiceAPI: sdk.InvoiceApi,
	}
}
