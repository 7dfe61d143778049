package attendance

import (
	"time"
)

type Attendance struct {
	ID       string
	StaffID  string
	VenueID  string
	WorkDate string // business date, YYYY-MM-DD
	ClockIn  *time.Time
	ClockOut *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	StaffName *string
}

// IsOpen reports whether the shift has a clock-in but no clock-out yet.
func (a *Attendance) IsOpen() bool {
	return a.ClockIn != nil && a.ClockOut == nil
}
