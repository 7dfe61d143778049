package staff

import "context"

// StaffRepository handles staff data operations.
// All methods scope by venueID to prevent cross-venue data access.
type StaffRepository interface {
	// Create creates a new staff member
	Create(ctx context.Context, staff Staff) (Staff, error)

	// GetByID retrieves staff by ID with venue isolation
	GetByID(ctx context.Context, id string, venueID string) (Staff, error)

	// GetByEmail retrieves staff by email for login
	GetByEmail(ctx context.Context, email string) (Staff, error)

	// GetByIDAnyVenue retrieves staff by ID without venue scoping.
	// Refresh tokens carry only the staff ID.
	GetByIDAnyVenue(ctx context.Context, id string) (Staff, error)

	// Update updates an existing staff member
	Update(ctx context.Context, staff Staff) (Staff, error)

	// ListByVenueID retrieves all staff for a venue
	ListByVenueID(ctx context.Context, venueID string, activeOnly bool) ([]Staff, error)

	// CountActiveByVenueID counts active staff for a venue (seat limit checks)
	CountActiveByVenueID(ctx context.Context, venueID string) (int, error)
}
