package order

import "time"

// Session is one table visit. A session opened before the day switch
// keeps its business date even when it runs past midnight.
type Session struct {
	ID          string
	VenueID     string
	TableNumber string
	GuestCount  int
	StartedAt   time.Time
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpen reports whether the session is still running.
func (s *Session) IsOpen() bool {
	return s.ClosedAt == nil
}

// MenuItem is a catalog entry. Category drives fee classification and
// DefaultPayout is the per-unit cast payout used when no plan rule applies.
type MenuItem struct {
	ID            string
	VenueID       string
	Name          string
	Category      string
	Price         int64 // yen
	DefaultPayout int64 // yen per unit
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LineItem is one sold unit inside a session. Either MenuItemID or the
// free-text Name is present; uncatalogued temporary items carry only Name.
type LineItem struct {
	ID         string
	SessionID  string
	MenuItemID *string
	Name       *string
	UnitPrice  int64
	Quantity   int
	StaffID    *string // attributed cast member
	OrderedAt  time.Time
	CreatedAt  time.Time

	// Joined fields
	MenuName         *string
	MenuCategory     *string
	MenuPayout       *int64
	SessionStartedAt time.Time
}

// Amount is the line's sale total.
func (l *LineItem) Amount() int64 {
	return l.UnitPrice * int64(l.Quantity)
}
