package venue

import "context"

// VenueService defines business logic for venue settings
type VenueService interface {
	// GetMyVenue retrieves the authenticated staff member's venue
	GetMyVenue(ctx context.Context) (VenueResponse, error)

	// UpdateVenue updates venue settings (owner)
	UpdateVenue(ctx context.Context, req UpdateVenueRequest) (VenueResponse, error)
}
