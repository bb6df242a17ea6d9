package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustWindow(t *testing.T, start, end string) TimeWindow {
	t.Helper()

	s, err := time.Parse(time.RFC3339, start)
	assert.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	assert.NoError(t, err)

	return TimeWindow{Start: s, End: e}
}

func TestTimeWindow_Overlaps(t *testing.T) {
	base := mustWindow(t, "2026-03-10T10:00:00Z", "2026-03-10T12:00:00Z")

	tests := []struct {
		name     string
		other    TimeWindow
		overlaps bool
	}{
		{"identical window", mustWindow(t, "2026-03-10T10:00:00Z", "2026-03-10T12:00:00Z"), true},
		{"partial overlap at end", mustWindow(t, "2026-03-10T11:00:00Z", "2026-03-10T13:00:00Z"), true},
		{"partial overlap at start", mustWindow(t, "2026-03-10T09:00:00Z", "2026-03-10T11:00:00Z"), true},
		{"fully inside", mustWindow(t, "2026-03-10T10:30:00Z", "2026-03-10T11:30:00Z"), true},
		{"fully containing", mustWindow(t, "2026-03-10T09:00:00Z", "2026-03-10T13:00:00Z"), true},
		{"touching at end is not overlap", mustWindow(t, "2026-03-10T12:00:00Z", "2026-03-10T14:00:00Z"), false},
		{"touching at start is not overlap", mustWindow(t, "2026-03-10T08:00:00Z", "2026-03-10T10:00:00Z"), false},
		{"completely before", mustWindow(t, "2026-03-10T07:00:00Z", "2026-03-10T08:00:00Z"), false},
		{"completely after", mustWindow(t, "2026-03-10T13:00:00Z", "2026-03-10T14:00:00Z"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base))
		})
	}
}

func TestTimeWindow_IsValid(t *testing.T) {
	assert.True(t, mustWindow(t, "2026-03-10T10:00:00Z", "2026-03-10T10:00:01Z").IsValid())
	assert.False(t, mustWindow(t, "2026-03-10T10:00:00Z", "2026-03-10T10:00:00Z").IsValid())
	assert.False(t, mustWindow(t, "2026-03-10T12:00:00Z", "2026-03-10T10:00:00Z").IsValid())
}

func TestTimeWindow_Contains(t *testing.T) {
	w := mustWindow(t, "2026-03-10T10:00:00Z", "2026-03-10T12:00:00Z")

	assert.True(t, w.Contains(w.Start), "start belongs to the window")
	assert.False(t, w.Contains(w.End), "end is excluded")
	assert.True(t, w.Contains(w.Start.Add(time.Hour)))
	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
}

func TestTimeWindow_Shift(t *testing.T) {
	w := mustWindow(t, "2026-03-10T10:00:00Z", "2026-03-10T12:00:00Z")
	shifted := w.Shift(2 * time.Hour)

	assert.Equal(t, w.Duration(), shifted.Duration())
	assert.Equal(t, w.End, shifted.Start)
}
