package postgresql

import (
	"context"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/uchiyama0208/nightbase-sub009/internal/domain/queue"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestIssueAssignsDistinctNumbersConcurrently(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	venueID := uuid.New().String()
	_, err := db.Exec(ctx, `
		INSERT INTO venues (id, name, timezone, day_switch_hour, day_switch_minute, table_count)
		VALUES ($1, 'test venue', 'Asia/Tokyo', 6, 0, 10)
	`, venueID)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec(ctx, `DELETE FROM queue_tickets WHERE venue_id = $1`, venueID)
		db.Exec(ctx, `DELETE FROM venues WHERE id = $1`, venueID)
	})

	repo := NewTicketRepository(db)
	businessDate := "2024-01-15"

	const workers = 16
	numbers := make([]int, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ticket, err := repo.Issue(ctx, queue.Ticket{
				ID:           uuid.New().String(),
				VenueID:      venueID,
				BusinessDate: businessDate,
				PartySize:    2,
				Status:       queue.StatusWaiting,
				IssuedAt:     time.Now(),
			})
			numbers[i] = ticket.Number
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}
	sort.Ints(numbers)
	for i, n := range numbers {
		require.Equal(t, i+1, n, "numbers must be 1..%d without gaps or duplicates", workers)
	}
}
