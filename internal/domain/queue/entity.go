package queue

import "time"

type TicketStatus string

const (
	StatusWaiting   TicketStatus = "waiting"
	StatusCalled    TicketStatus = "called"
	StatusSeated    TicketStatus = "seated"
	StatusCancelled TicketStatus = "cancelled"
	StatusExpired   TicketStatus = "expired"
)

// Ticket is one walk-in queue entry. Numbers restart at 1 on every
// business date because they are assigned per (venue, business_date).
type Ticket struct {
	ID           string
	VenueID      string
	BusinessDate string // YYYY-MM-DD
	Number       int
	PartySize    int
	Status       TicketStatus
	IssuedAt     time.Time
	CalledAt     *time.Time
	SeatedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
