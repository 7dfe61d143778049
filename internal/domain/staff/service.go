package staff

import "context"

// StaffService defines business logic for staff management (manager)
type StaffService interface {
	// CreateStaff creates a new staff member, subject to the venue's
	// subscription seat limit
	CreateStaff(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)

	// UpdateStaff updates a staff member's profile, role or rate
	UpdateStaff(ctx context.Context, req UpdateStaffRequest) (StaffResponse, error)

	// GetStaff retrieves one staff member
	GetStaff(ctx context.Context, id string) (StaffResponse, error)

	// ListStaff lists the venue's staff
	ListStaff(ctx context.Context, activeOnly bool) ([]StaffResponse, error)
}
