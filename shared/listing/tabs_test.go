package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTabRange(t *testing.T) {
	tests := []struct {
		name  string
		tab   Tab
		now   time.Time
		start time.Time
		last  time.Time
	}{
		{"week from wednesday", TabThisWeek, time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC), day(2024, 6, 10), day(2024, 6, 16)},
		{"week on monday", TabThisWeek, day(2024, 6, 10), day(2024, 6, 10), day(2024, 6, 16)},
		{"week on sunday night", TabThisWeek, time.Date(2024, 6, 16, 23, 59, 59, 0, time.UTC), day(2024, 6, 10), day(2024, 6, 16)},
		{"week across year end", TabThisWeek, day(2025, 1, 1), day(2024, 12, 30), day(2025, 1, 5)},
		{"month", TabThisMonth, day(2024, 2, 14), day(2024, 2, 1), day(2024, 2, 29)},
		{"year", TabThisYear, day(2024, 7, 4), day(2024, 1, 1), day(2024, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := TabRange(tt.tab, tt.now, time.UTC)
			require.True(t, ok)
			require.Equal(t, tt.start, r.Start)
			require.Equal(t, tt.last, r.Last())
		})
	}

	_, ok := TabRange(TabAll, time.Now(), time.UTC)
	require.False(t, ok)
}

func TestTabRangeUsesLocation(t *testing.T) {
	manila := time.FixedZone("Asia/Manila", 8*60*60)
	// Sunday 20:00 UTC is already Monday in Manila
	now := time.Date(2024, 6, 16, 20, 0, 0, 0, time.UTC)

	r, ok := TabRange(TabThisWeek, now, manila)
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 6, 17, 0, 0, 0, 0, manila), r.Start)
}

func TestDateRangeContains(t *testing.T) {
	r, _ := TabRange(TabThisWeek, day(2024, 6, 12), time.UTC)

	require.True(t, r.Contains(day(2024, 6, 10)))
	require.True(t, r.Contains(time.Date(2024, 6, 16, 23, 59, 0, 0, time.UTC)))
	require.False(t, r.Contains(day(2024, 6, 17)))
	require.False(t, r.Contains(time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC)))
}
