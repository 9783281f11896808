package scheduler

import (
	"testing"
	"time"
)

func TestNextMidnightUTC(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"mid-day",
			time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC),
			time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			"just after midnight",
			time.Date(2026, time.March, 15, 0, 0, 1, 0, time.UTC),
			time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			"month rollover",
			time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC),
			time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"year rollover",
			time.Date(2026, time.December, 31, 12, 0, 0, 0, time.UTC),
			time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"non-utc input normalized",
			time.Date(2026, time.March, 15, 20, 0, 0, 0, time.FixedZone("EST", -5*3600)),
			time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextMidnightUTC(tt.now); !got.Equal(tt.want) {
				t.Errorf("nextMidnightUTC(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
