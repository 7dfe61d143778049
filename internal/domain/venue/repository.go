package venue

import "context"

// VenueRepository handles venue data operations
type VenueRepository interface {
	// GetByID retrieves a venue by its ID
	GetByID(ctx context.Context, id string) (Venue, error)

	// Create creates a new venue
	Create(ctx context.Context, venue Venue) (Venue, error)

	// Update updates an existing venue
	Update(ctx context.Context, venue Venue) (Venue, error)

	// List retrieves all venues
	List(ctx context.Context) ([]Venue, error)
}
