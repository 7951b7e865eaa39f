package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end time.Time) TimeWindow {
	t.Helper()
	w, err := NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestNewTimeWindow(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		w, err := NewTimeWindow(start, start.Add(90*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 90, w.DurationMinutes())
		assert.InDelta(t, 1.5, w.Hours(), 1e-9)
	})

	t.Run("end equals start", func(t *testing.T) {
		_, err := NewTimeWindow(start, start)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewTimeWindow(start, start.Add(-time.Hour))
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestTimeWindow_Overlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	candidate := mustWindow(t, base, base.Add(time.Hour))

	tests := []struct {
		name  string
		other TimeWindow
		want  bool
	}{
		{
			name:  "identical windows overlap",
			other: mustWindow(t, base, base.Add(time.Hour)),
			want:  true,
		},
		{
			name:  "partial overlap at head",
			other: mustWindow(t, base.Add(-30*time.Minute), base.Add(30*time.Minute)),
			want:  true,
		},
		{
			name:  "contained window overlaps",
			other: mustWindow(t, base.Add(15*time.Minute), base.Add(45*time.Minute)),
			want:  true,
		},
		{
			name:  "back-to-back before is not overlap",
			other: mustWindow(t, base.Add(-time.Hour), base),
			want:  false,
		},
		{
			name:  "back-to-back after is not overlap",
			other: mustWindow(t, base.Add(time.Hour), base.Add(2*time.Hour)),
			want:  false,
		},
		{
			name:  "disjoint window",
			other: mustWindow(t, base.Add(3*time.Hour), base.Add(4*time.Hour)),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, candidate.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(candidate), "overlap must be symmetric")
		})
	}
}

func TestTimeWindow_ShiftBy(t *testing.T) {
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	w := mustWindow(t, base, base.Add(time.Hour))

	shifted := w.ShiftBy(30 * time.Minute)
	assert.Equal(t, base.Add(30*time.Minute), shifted.Start)
	assert.Equal(t, w.DurationMinutes(), shifted.DurationMinutes())

	back := w.ShiftBy(-30 * time.Minute)
	assert.Equal(t, base.Add(-30*time.Minute), back.Start)
}

func TestTimeWindow_SameCalendarDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	sameDay := mustWindow(t,
		time.Date(2026, 9, 1, 9, 0, 0, 0, loc),
		time.Date(2026, 9, 1, 11, 0, 0, 0, loc),
	)
	assert.True(t, sameDay.SameCalendarDay(loc))

	endsAtMidnight := mustWindow(t,
		time.Date(2026, 9, 1, 22, 0, 0, 0, loc),
		time.Date(2026, 9, 2, 0, 0, 0, 0, loc),
	)
	assert.True(t, endsAtMidnight.SameCalendarDay(loc))

	crossesMidnight := mustWindow(t,
		time.Date(2026, 9, 1, 23, 0, 0, 0, loc),
		time.Date(2026, 9, 2, 1, 0, 0, 0, loc),
	)
	assert.False(t, crossesMidnight.SameCalendarDay(loc))
}
