package order

import (
	"context"
	"time"
)

// SessionRepository handles table session data operations
type SessionRepository interface {
	// Create opens a new session
	Create(ctx context.Context, session Session) (Session, error)

	// GetByID retrieves a session with venue isolation
	GetByID(ctx context.Context, id string, venueID string) (Session, error)

	// GetOpenByTable retrieves the open session on a table, if any
	GetOpenByTable(ctx context.Context, tableNumber string, venueID string) (*Session, error)

	// Close stamps the session's closed_at
	Close(ctx context.Context, id string, venueID string, closedAt time.Time) (Session, error)

	// ListOpen retrieves all open sessions for a venue
	ListOpen(ctx context.Context, venueID string) ([]Session, error)
}

// LineItemRepository handles sold line items
type LineItemRepository interface {
	// Create adds a line item to a session
	Create(ctx context.Context, item LineItem) (LineItem, error)

	// ListBySession retrieves all items of one session with menu joins
	ListBySession(ctx context.Context, sessionID string, venueID string) ([]LineItem, error)

	// ListByStaffAndRange retrieves all items attributed to a staff member
	// whose owning session started inside the window (payroll input).
	// Menu name/category/payout and the session start time are joined.
	ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time, venueID string) ([]LineItem, error)

	// Delete removes a line item (void)
	Delete(ctx context.Context, id string, venueID string) error
}

// MenuRepository handles catalog data operations
type MenuRepository interface {
	// Create creates a menu item
	Create(ctx context.Context, item MenuItem) (MenuItem, error)

	// GetByID retrieves a menu item with venue isolation
	GetByID(ctx context.Context, id string, venueID string) (MenuItem, error)

	// Update updates a menu item
	Update(ctx context.Context, item MenuItem) (MenuItem, error)

	// ListByVenueID retrieves the venue's catalog
	ListByVenueID(ctx context.Context, venueID string, activeOnly bool) ([]MenuItem, error)
}
