package queue

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uchiyama0208/nightbase-sub009/internal/domain/queue"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/venue"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/sse"
)

type stubVenueRepo struct {
	venue.VenueRepository
}

func (s *stubVenueRepo) GetByID(ctx context.Context, id string) (venue.Venue, error) {
	return venue.Venue{ID: id, Name: "test venue", Timezone: "Asia/Tokyo", DaySwitchHour: 6}, nil
}

type stubTicketRepo struct {
	queue.TicketRepository
	tickets []queue.Ticket
	err     error
}

func (s *stubTicketRepo) ListByDate(ctx context.Context, venueID string, businessDate string, statuses []queue.TicketStatus) ([]queue.Ticket, error) {
	return s.tickets, s.err
}

func TestPublishBoardSendsUpdateToSubscribers(t *testing.T) {
	hub := sse.NewHub()
	ch, cleanup := hub.Subscribe("v1")
	defer cleanup()

	svc := &QueueServiceImpl{
		ticketRepo: &stubTicketRepo{tickets: []queue.Ticket{
			{ID: "t1", VenueID: "v1", Number: 1, PartySize: 2, Status: queue.StatusWaiting, IssuedAt: time.Now()},
		}},
		venueRepo: &stubVenueRepo{},
		hub:       hub,
	}

	svc.publishBoard(context.Background(), "v1")

	select {
	case ev := <-ch:
		assert.Equal(t, sse.EventQueueUpdated, ev.Event)
		board, ok := ev.Data.(queue.BoardResponse)
		require.True(t, ok)
		assert.Len(t, board.Waiting, 1)
	default:
		t.Fatal("expected a board event")
	}
}

func TestPublishBoardLogsWhenRebuildFails(t *testing.T) {
	hub := sse.NewHub()
	ch, cleanup := hub.Subscribe("v1")
	defer cleanup()

	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	svc := &QueueServiceImpl{
		ticketRepo: &stubTicketRepo{err: errors.New("db down")},
		venueRepo:  &stubVenueRepo{},
		hub:        hub,
	}

	svc.publishBoard(context.Background(), "v1")

	assert.Empty(t, ch)
	assert.Contains(t, logs.String(), "failed to rebuild queue board")
}

func TestPublishBoardSkipsWithoutSubscribers(t *testing.T) {
	svc := &QueueServiceImpl{
		ticketRepo: &stubTicketRepo{err: errors.New("must not be called")},
		venueRepo:  &stubVenueRepo{},
		hub:        sse.NewHub(),
	}

	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	svc.publishBoard(context.Background(), "v1")

	assert.Empty(t, logs.String())
}
