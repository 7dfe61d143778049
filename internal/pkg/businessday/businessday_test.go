package businessday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jst(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

func TestResolve(t *testing.T) {
	loc := jst(t)
	cfg := Config{SwitchHour: 6, SwitchMinute: 0, Location: loc}

	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"evening stays on its day", time.Date(2024, 1, 15, 20, 0, 0, 0, loc), "2024-01-15"},
		{"after midnight before switch", time.Date(2024, 1, 16, 2, 30, 0, 0, loc), "2024-01-15"},
		{"exactly at switch", time.Date(2024, 1, 16, 6, 0, 0, 0, loc), "2024-01-16"},
		{"one minute before switch", time.Date(2024, 1, 16, 5, 59, 0, 0, loc), "2024-01-15"},
		{"month boundary", time.Date(2024, 2, 1, 1, 0, 0, 0, loc), "2024-01-31"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, cfg.Resolve(c.at))
		})
	}
}

func TestResolveConvertsToVenueTimezone(t *testing.T) {
	loc := jst(t)
	cfg := Config{SwitchHour: 6, SwitchMinute: 0, Location: loc}

	// 17:00 UTC on the 15th is 02:00 JST on the 16th, which is still
	// the 15th's business day.
	at := time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15", cfg.Resolve(at))
}

func TestConfigValidate(t *testing.T) {
	loc := jst(t)

	assert.NoError(t, Config{SwitchHour: 6, Location: loc}.Validate())
	assert.Error(t, Config{SwitchHour: 24, Location: loc}.Validate())
	assert.Error(t, Config{SwitchHour: 6, SwitchMinute: 60, Location: loc}.Validate())
	assert.Error(t, Config{SwitchHour: 6}.Validate())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "01/15(月)", Label("2024-01-15"))
	assert.Equal(t, "12/31(日)", Label("2023-12-31"))
	assert.Equal(t, "not-a-date", Label("not-a-date"))
}
