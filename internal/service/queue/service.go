package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/queue"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/venue"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/sse"
)

type QueueServiceImpl struct {
	db         *database.DB
	ticketRepo queue.TicketRepository
	venueRepo  venue.VenueRepository
	hub        *sse.Hub
}

func NewQueueService(db *database.DB, ticketRepo queue.TicketRepository, venueRepo venue.VenueRepository, hub *sse.Hub) queue.QueueService {
	return &QueueServiceImpl{
		db:         db,
		ticketRepo: ticketRepo,
		venueRepo:  venueRepo,
		hub:        hub,
	}
}

func getClaimsFromContext(ctx context.Context) (venueID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	venueID, ok := claims["venue_id"].(string)
	if !ok || venueID == "" {
		return "", fmt.Errorf("venue_id claim is missing or invalid")
	}

	return venueID, nil
}

func (q *QueueServiceImpl) currentBusinessDate(ctx context.Context, venueID string) (string, error) {
	v, err := q.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return "", err
	}
	return v.DayConfig().Resolve(time.Now()), nil
}

// IssueTicket implements queue.QueueService.
func (q *QueueServiceImpl) IssueTicket(ctx context.Context, req queue.IssueTicketRequest) (queue.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return queue.TicketResponse{}, err
	}

	venueID, err := getClaimsFromContext(ctx)
	if err != nil {
		return queue.TicketResponse{}, err
	}

	businessDate, err := q.currentBusinessDate(ctx, venueID)
	if err != nil {
		return queue.TicketResponse{}, err
	}

	ticket, err := q.ticketRepo.Issue(ctx, queue.Ticket{
		ID:           uuid.NewString(),
		VenueID:      venueID,
		BusinessDate: businessDate,
		PartySize:    req.PartySize,
		Status:       queue.StatusWaiting,
		IssuedAt:     time.Now(),
	})
	if err != nil {
		return queue.TicketResponse{}, fmt.Errorf("failed to issue ticket: %w", err)
	}

	q.publishBoard(ctx, venueID)
	return queue.NewTicketResponse(ticket), nil
}

// CallTicket implements queue.QueueService.
func (q *QueueServiceImpl) CallTicket(ctx context.Context, id string) (queue.TicketResponse, error) {
	return q.transition(ctx, id, queue.StatusCalled, []queue.TicketStatus{queue.StatusWaiting})
}

// SeatTicket implements queue.QueueService.
func (q *QueueServiceImpl) SeatTicket(ctx context.Context, id string) (queue.TicketResponse, error) {
	return q.transition(ctx, id, queue.StatusSeated, []queue.TicketStatus{queue.StatusCalled, queue.StatusWaiting})
}

// CancelTicket implements queue.QueueService.
func (q *QueueServiceImpl) CancelTicket(ctx context.Context, id string) (queue.TicketResponse, error) {
	return q.transition(ctx, id, queue.StatusCancelled, []queue.TicketStatus{queue.StatusWaiting, queue.StatusCalled})
}

func (q *QueueServiceImpl) transition(ctx context.Context, id string, to queue.TicketStatus, from []queue.TicketStatus) (queue.TicketResponse, error) {
	venueID, err := getClaimsFromContext(ctx)
	if err != nil {
		return queue.TicketResponse{}, err
	}

	ticket, err := q.ticketRepo.GetByID(ctx, id, venueID)
	if err != nil {
		return queue.TicketResponse{}, err
	}

	allowed := false
	for _, s := range from {
		if ticket.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return queue.TicketResponse{}, queue.ErrTicketAlreadyFinalized
	}

	updated, err := q.ticketRepo.UpdateStatus(ctx, id, venueID, to)
	if err != nil {
		return queue.TicketResponse{}, fmt.Errorf("failed to update ticket status: %w", err)
	}

	q.publishBoard(ctx, venueID)
	return queue.NewTicketResponse(updated), nil
}

// Board implements queue.QueueService.
func (q *QueueServiceImpl) Board(ctx context.Context) (queue.BoardResponse, error) {
	venueID, err := getClaimsFromContext(ctx)
	if err != nil {
		return queue.BoardResponse{}, err
	}

	return q.board(ctx, venueID)
}

// BoardForVenue implements queue.QueueService. Stream connections carry
// the venue in the URL token instead of JWT claims.
func (q *QueueServiceImpl) BoardForVenue(ctx context.Context, venueID string) (queue.BoardResponse, error) {
	return q.board(ctx, venueID)
}

func (q *QueueServiceImpl) board(ctx context.Context, venueID string) (queue.BoardResponse, error) {
	businessDate, err := q.currentBusinessDate(ctx, venueID)
	if err != nil {
		return queue.BoardResponse{}, err
	}

	tickets, err := q.ticketRepo.ListByDate(ctx, venueID, businessDate, []queue.TicketStatus{queue.StatusWaiting, queue.StatusCalled})
	if err != nil {
		return queue.BoardResponse{}, fmt.Errorf("failed to list tickets: %w", err)
	}

	resp := queue.BoardResponse{
		BusinessDate: businessDate,
		Waiting:      []queue.TicketResponse{},
		Called:       []queue.TicketResponse{},
	}
	for _, t := range tickets {
		switch t.Status {
		case queue.StatusWaiting:
			resp.Waiting = append(resp.Waiting, queue.NewTicketResponse(t))
		case queue.StatusCalled:
			resp.Called = append(resp.Called, queue.NewTicketResponse(t))
		}
	}
	return resp, nil
}

// ExpireStaleTickets implements queue.QueueService. Runs from the cron
// sweep where no venue-scoped context is available, so it walks every
// venue.
func (q *QueueServiceImpl) ExpireStaleTickets(ctx context.Context) error {
	venues, err := q.venueRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list venues: %w", err)
	}

	for _, v := range venues {
		currentDate := v.DayConfig().Resolve(time.Now())
		expired, err := q.ticketRepo.ExpireStale(ctx, v.ID, currentDate)
		if err != nil {
			return fmt.Errorf("failed to expire tickets for venue %s: %w", v.ID, err)
		}
		if expired > 0 {
			q.publishBoard(ctx, v.ID)
		}
	}
	return nil
}

// publishBoard pushes the current board to stream subscribers. Best
// effort: a failed rebuild is logged, subscribers catch up on the next
// state change.
func (q *QueueServiceImpl) publishBoard(ctx context.Context, venueID string) {
	if q.hub == nil || q.hub.SubscriberCount(venueID) == 0 {
		return
	}
	board, err := q.board(ctx, venueID)
	if err != nil {
		slog.Warn("failed to rebuild queue board for stream", "venue_id", venueID, "error", err)
		return
	}
	q.hub.Publish(venueID, sse.Event{VenueID: venueID, Event: sse.EventQueueUpdated, Data: board})
}
