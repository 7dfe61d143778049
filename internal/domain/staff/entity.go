package staff

import "time"

type Role string

const (
	RoleOwner   Role = "owner"   // Venue owner - full access
	RoleManager Role = "manager" // Floor manager - can manage staff, sessions, queue
	RoleCast    Role = "cast"    // Cast member - own timecard and payroll only
)

type Staff struct {
	ID           string
	VenueID      string
	Email        string
	PasswordHash string
	DisplayName  string
	Role         Role
	HourlyRate   int64 // yen per hour
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwner checks if staff is the venue owner
func (s *Staff) IsOwner() bool {
	return s.Role == RoleOwner
}

// IsManager checks if staff is manager or owner
func (s *Staff) IsManager() bool {
	return s.Role == RoleManager || s.Role == RoleOwner
}
