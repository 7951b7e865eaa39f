package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

func at(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2026, 9, 10, hour, minute, 0, 0, time.UTC)
}

func row(t *testing.T, startHour, startMinute, endHour, endMinute int) *domain.Reservation {
	t.Helper()
	w, err := domain.NewTimeWindow(at(t, startHour, startMinute), at(t, endHour, endMinute))
	require.NoError(t, err)
	return &domain.Reservation{Window: w}
}

func TestNextGap_EmptyScheduleStartsImmediately(t *testing.T) {
	after := at(t, 10, 0)
	gap := nextGap(nil, after, after.Add(searchHorizon), 60)

	require.NotNil(t, gap)
	assert.Equal(t, after, gap.Start)
	assert.Equal(t, after.Add(time.Hour), gap.End)
}

func TestNextGap_SkipsPastBusyRows(t *testing.T) {
	rows := []*domain.Reservation{
		row(t, 10, 0, 11, 0),
		row(t, 11, 0, 12, 30),
	}
	after := at(t, 10, 0)

	gap := nextGap(rows, after, after.Add(searchHorizon), 60)
	require.NotNil(t, gap)
	assert.Equal(t, at(t, 12, 30), gap.Start)
}

func TestNextGap_FitsBetweenRows(t *testing.T) {
	rows := []*domain.Reservation{
		row(t, 10, 0, 11, 0),
		row(t, 12, 0, 13, 0),
	}
	after := at(t, 10, 0)

	// A one-hour gap between 11:00 and 12:00 fits exactly.
	gap := nextGap(rows, after, after.Add(searchHorizon), 60)
	require.NotNil(t, gap)
	assert.Equal(t, at(t, 11, 0), gap.Start)

	// A 90-minute request does not fit that gap and lands after 13:00.
	gap = nextGap(rows, after, after.Add(searchHorizon), 90)
	require.NotNil(t, gap)
	assert.Equal(t, at(t, 13, 0), gap.Start)
}

func TestNextGap_AlignsStartToSlotGrid(t *testing.T) {
	rows := []*domain.Reservation{
		row(t, 10, 0, 10, 45),
	}
	after := at(t, 10, 0)

	gap := nextGap(rows, after, after.Add(searchHorizon), 60)
	require.NotNil(t, gap)
	assert.Equal(t, at(t, 11, 0), gap.Start)
}

func TestNextGap_NilWhenHorizonExhausted(t *testing.T) {
	after := at(t, 10, 0)
	until := after.Add(30 * time.Minute)

	gap := nextGap(nil, after, until, 60)
	assert.Nil(t, gap)
}

func TestAlignToSlot(t *testing.T) {
	assert.Equal(t, at(t, 10, 0), alignToSlot(at(t, 10, 0)))
	assert.Equal(t, at(t, 10, 30), alignToSlot(at(t, 10, 1)))
	assert.Equal(t, at(t, 11, 0), alignToSlot(at(t, 10, 31)))
}
