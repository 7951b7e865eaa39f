package validate_window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSchedule(t *testing.T) domain.WeekSchedule {
	t.Helper()
	day := domain.DayHours{Open: "09:00", Close: "23:00"}
	return domain.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day,
		Sunday: domain.DayHours{Closed: true},
	}
}

// Thursday 2026-09-10, inside operating hours.
func testUseCase(t *testing.T) *UseCase {
	t.Helper()
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	return NewUseCase(nil, testSchedule(t), time.UTC, &fixedTime{now: now}, nopLogger{})
}

func windowAt(t *testing.T, hour, minute, durationMinutes int) domain.TimeWindow {
	t.Helper()
	start := time.Date(2026, 9, 10, hour, minute, 0, 0, time.UTC)
	w, err := domain.NewTimeWindow(start, start.Add(time.Duration(durationMinutes)*time.Minute))
	require.NoError(t, err)
	return w
}

func TestValidate_AcceptsQuantizedBooking(t *testing.T) {
	uc := testUseCase(t)

	r := uc.Validate(windowAt(t, 14, 0, 90), nil, domain.ModeBooking)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Reason)
}

func TestValidate_RejectsNonQuantizedDuration(t *testing.T) {
	uc := testUseCase(t)

	for _, minutes := range []int{45, 50, 75, 100} {
		w := windowAt(t, 14, 0, minutes)
		r := uc.Validate(w, nil, domain.ModeBooking)
		assert.False(t, r.Valid, "duration %dm must not validate", minutes)
		assert.NotEmpty(t, r.Reason)
	}
}

func TestValidate_RejectsEndBeforeStart(t *testing.T) {
	uc := testUseCase(t)

	start := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	w := domain.TimeWindow{Start: start, End: start.Add(-time.Hour)}
	r := uc.Validate(w, nil, domain.ModeBooking)
	assert.False(t, r.Valid)

	r = uc.Validate(domain.TimeWindow{Start: start, End: start}, nil, domain.ModeBooking)
	assert.False(t, r.Valid)
}

func TestValidate_RejectsBelowMinimum(t *testing.T) {
	uc := testUseCase(t)

	r := uc.Validate(windowAt(t, 14, 0, 15), nil, domain.ModeBooking)
	assert.False(t, r.Valid)

	// Events require at least an hour even though 30 is quantized.
	r = uc.Validate(windowAt(t, 14, 0, 30), nil, domain.ModeEvent)
	assert.False(t, r.Valid)
}

func TestValidate_TierCapTightensModeMaximum(t *testing.T) {
	uc := testUseCase(t)
	tier := &domain.CustomerTier{ID: "new", MaxDurationMinutes: 120}

	r := uc.Validate(windowAt(t, 14, 0, 120), tier, domain.ModeBooking)
	assert.True(t, r.Valid)

	r = uc.Validate(windowAt(t, 14, 0, 150), tier, domain.ModeBooking)
	assert.False(t, r.Valid)
	assert.Contains(t, r.Reason, "120")
}

func TestValidate_RejectsPastStart(t *testing.T) {
	uc := testUseCase(t)

	r := uc.Validate(windowAt(t, 7, 0, 60), nil, domain.ModeBooking)
	assert.False(t, r.Valid)
	assert.Contains(t, r.Reason, "past")
}

func TestValidate_OperatingHours(t *testing.T) {
	uc := testUseCase(t)

	// Starts before opening.
	r := uc.Validate(windowAt(t, 8, 30, 60), nil, domain.ModeBooking)
	assert.False(t, r.Valid)

	// Ends after closing.
	r = uc.Validate(windowAt(t, 22, 30, 60), nil, domain.ModeBooking)
	assert.False(t, r.Valid)

	// Maintenance may run overnight outside hours.
	r = uc.Validate(windowAt(t, 23, 0, 45), nil, domain.ModeMaintenance)
	assert.True(t, r.Valid)
}

func TestValidate_ClosedDay(t *testing.T) {
	uc := testUseCase(t)

	// Sunday 2026-09-13 is closed in the schedule.
	start := time.Date(2026, 9, 13, 14, 0, 0, 0, time.UTC)
	w, err := domain.NewTimeWindow(start, start.Add(time.Hour))
	require.NoError(t, err)

	r := uc.Validate(w, nil, domain.ModeBooking)
	assert.False(t, r.Valid)
	assert.Contains(t, r.Reason, "closed")
}

func TestValidDurations_BookingSequence(t *testing.T) {
	durations := ValidDurations(nil, domain.ModeBooking)

	require.NotEmpty(t, durations)
	assert.Equal(t, 30, durations[0])
	assert.Equal(t, 480, durations[len(durations)-1])
	for i := 1; i < len(durations); i++ {
		assert.Equal(t, 30, durations[i]-durations[i-1])
	}
}

func TestValidDurations_FilteredToTierMaximum(t *testing.T) {
	tier := &domain.CustomerTier{ID: "new", MaxDurationMinutes: 120}

	durations := ValidDurations(tier, domain.ModeBooking)
	assert.Equal(t, []int{30, 60, 90, 120}, durations)
}

func TestValidDurations_EmptyForAdminModes(t *testing.T) {
	assert.Empty(t, ValidDurations(nil, domain.ModeBlock))
	assert.Empty(t, ValidDurations(nil, domain.ModeMaintenance))
}
