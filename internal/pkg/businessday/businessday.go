package businessday

import (
	"fmt"
	"time"
)

// Config describes when a venue's business day rolls over.
// A session that starts at 01:30 with a 06:00 switch still belongs
// to the previous calendar day.
type Config struct {
	SwitchHour   int
	SwitchMinute int
	Location     *time.Location
}

// DateFormat is the fixed-width business date format used everywhere.
const DateFormat = "2006-01-02"

var weekdayJP = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// Validate checks the day-switch configuration.
func (c Config) Validate() error {
	if c.SwitchHour < 0 || c.SwitchHour > 23 {
		return fmt.Errorf("invalid day switch hour: %d", c.SwitchHour)
	}
	if c.SwitchMinute < 0 || c.SwitchMinute > 59 {
		return fmt.Errorf("invalid day switch minute: %d", c.SwitchMinute)
	}
	if c.Location == nil {
		return fmt.Errorf("day switch location is required")
	}
	return nil
}

// Resolve maps an instant to the business date it belongs to,
// formatted as YYYY-MM-DD.
func (c Config) Resolve(t time.Time) string {
	return c.ResolveTime(t).Format(DateFormat)
}

// ResolveTime returns the business date as a midnight time.Time in the
// venue's location.
func (c Config) ResolveTime(t time.Time) time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	switchAt := day.Add(time.Duration(c.SwitchHour)*time.Hour + time.Duration(c.SwitchMinute)*time.Minute)
	if local.Before(switchAt) {
		return day.AddDate(0, 0, -1)
	}
	return day
}

// Label renders a business date string as the short venue-facing label,
// e.g. "01/15(月)". Falls back to the raw input if it does not parse.
func Label(date string) string {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%02d/%02d(%s)", int(t.Month()), t.Day(), weekdayJP[int(t.Weekday())])
}
