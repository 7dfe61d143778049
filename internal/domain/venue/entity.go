package venue

import (
	"time"

	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/businessday"
)

type Venue struct {
	ID              string
	Name            string
	Timezone        string
	DaySwitchHour   int
	DaySwitchMinute int
	TableCount      int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DayConfig builds the business-day resolver for this venue.
// An unknown timezone falls back to UTC so date resolution never panics
// on stored data.
func (v *Venue) DayConfig() businessday.Config {
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return businessday.Config{
		SwitchHour:   v.DaySwitchHour,
		SwitchMinute: v.DaySwitchMinute,
		Location:     loc,
	}
}
