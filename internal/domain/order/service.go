package order

import "context"

// OrderService defines business logic for sessions, line items and the catalog
type OrderService interface {
	// OpenSession opens a table session
	OpenSession(ctx context.Context, req OpenSessionRequest) (SessionResponse, error)

	// CloseSession closes a session and returns the bill
	CloseSession(ctx context.Context, sessionID string) (CloseSessionResponse, error)

	// ListOpenSessions lists the venue's open sessions
	ListOpenSessions(ctx context.Context) ([]SessionResponse, error)

	// AddLineItem adds a sold item to a session
	AddLineItem(ctx context.Context, req AddLineItemRequest) (LineItemResponse, error)

	// ListSessionItems lists a session's line items
	ListSessionItems(ctx context.Context, sessionID string) ([]LineItemResponse, error)

	// VoidLineItem removes a line item
	VoidLineItem(ctx context.Context, id string) error

	// Menu catalog
	CreateMenuItem(ctx context.Context, req CreateMenuItemRequest) (MenuItemResponse, error)
	UpdateMenuItem(ctx context.Context, req UpdateMenuItemRequest) (MenuItemResponse, error)
	ListMenu(ctx context.Context, activeOnly bool) ([]MenuItemResponse, error)
}
