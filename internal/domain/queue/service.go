package queue

import "context"

// QueueService defines business logic for the walk-in queue
type QueueService interface {
	// IssueTicket assigns the next queue number for the current business day
	IssueTicket(ctx context.Context, req IssueTicketRequest) (TicketResponse, error)

	// CallTicket marks a waiting ticket as called and pushes an update
	CallTicket(ctx context.Context, id string) (TicketResponse, error)

	// SeatTicket marks a called ticket as seated
	SeatTicket(ctx context.Context, id string) (TicketResponse, error)

	// CancelTicket cancels a waiting or called ticket
	CancelTicket(ctx context.Context, id string) (TicketResponse, error)

	// Board returns today's waiting and called tickets
	Board(ctx context.Context) (BoardResponse, error)

	// BoardForVenue returns the board for an explicit venue, used by
	// stream connections authenticated with a URL token
	BoardForVenue(ctx context.Context, venueID string) (BoardResponse, error)

	// ExpireStaleTickets expires tickets left over from past business days
	ExpireStaleTickets(ctx context.Context) error
}
