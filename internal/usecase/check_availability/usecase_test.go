package check_availability

import (
	"context"
	"errors"
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

type countingMetrics struct {
	degraded int
}

func (m *countingMetrics) IncAvailabilityDegraded() { m.degraded++ }

// stubAvailability scripts both collaborator calls.
type stubAvailability struct {
	conflicts    []domain.Conflict
	conflictsErr error

	next    *domain.TimeWindow
	nextErr error

	lastWindow domain.TimeWindow
}

func (s *stubAvailability) CheckConflicts(_ context.Context, _ int64, _ []int64, window domain.TimeWindow, _ *int64) ([]domain.Conflict, error) {
	s.lastWindow = window
	return s.conflicts, s.conflictsErr
}

func (s *stubAvailability) NextAvailable(context.Context, int64, []int64, int, time.Time) (*domain.TimeWindow, error) {
	return s.next, s.nextErr
}

var testNow = time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

func testUseCase(avail *stubAvailability, m Metrics) *UseCase {
	return NewUseCase(avail, time.Second, &fixedTime{now: testNow}, m, nopLogger{})
}

func testRequest(t *testing.T, startOffset time.Duration) *Request {
	t.Helper()
	start := testNow.Add(startOffset)
	w, err := domain.NewTimeWindow(start, start.Add(time.Hour))
	require.NoError(t, err)
	return &Request{LocationID: 1, ResourceIDs: []int64{3, 4}, Window: w}
}

func conflictOver(w domain.TimeWindow) domain.Conflict {
	return domain.Conflict{
		ReservationID: 99,
		Kind:          domain.ConflictReservation,
		Label:         "Guest",
		Window:        w,
		ResourceIDs:   []int64{3},
	}
}

func TestExecute_NoConflicts(t *testing.T) {
	avail := &stubAvailability{}
	uc := testUseCase(avail, NopMetrics{})

	resp, err := uc.Execute(context.Background(), testRequest(t, 2*time.Hour))
	require.NoError(t, err)

	assert.False(t, resp.HasConflicts())
	assert.Empty(t, resp.Suggestions)
	assert.False(t, resp.Degraded)
}

func TestExecute_ConflictsProduceSuggestions(t *testing.T) {
	req := testRequest(t, 2*time.Hour)
	nextStart := testNow.Add(5 * time.Hour)
	avail := &stubAvailability{
		conflicts: []domain.Conflict{conflictOver(req.Window)},
		next:      &domain.TimeWindow{Start: nextStart, End: nextStart.Add(time.Hour)},
	}
	uc := testUseCase(avail, NopMetrics{})

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.True(t, resp.HasConflicts())

	require.Len(t, resp.Suggestions, 3)
	assert.Equal(t, domain.SuggestionEarlier, resp.Suggestions[0].Kind)
	assert.Equal(t, req.Window.Start.Add(-30*time.Minute), resp.Suggestions[0].Window.Start)
	assert.Equal(t, domain.SuggestionLater, resp.Suggestions[1].Kind)
	assert.Equal(t, req.Window.Start.Add(30*time.Minute), resp.Suggestions[1].Window.Start)
	assert.Equal(t, domain.SuggestionNextAvailable, resp.Suggestions[2].Kind)

	for _, s := range resp.Suggestions {
		assert.False(t, s.Window.Start.Before(testNow), "suggestion %s proposes a past start", s.Kind)
	}
}

func TestExecute_EarlierOmittedWhenInPast(t *testing.T) {
	// Candidate starts 10 minutes from now; 30 earlier would be the past.
	req := testRequest(t, 10*time.Minute)
	avail := &stubAvailability{conflicts: []domain.Conflict{conflictOver(req.Window)}}
	uc := testUseCase(avail, NopMetrics{})

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, domain.SuggestionLater, resp.Suggestions[0].Kind)
}

func TestExecute_NextAvailableOmittedOnError(t *testing.T) {
	req := testRequest(t, 2*time.Hour)
	avail := &stubAvailability{
		conflicts: []domain.Conflict{conflictOver(req.Window)},
		nextErr:   errors.New("scan failed"),
	}
	uc := testUseCase(avail, NopMetrics{})

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, domain.SuggestionEarlier, resp.Suggestions[0].Kind)
	assert.Equal(t, domain.SuggestionLater, resp.Suggestions[1].Kind)
}

func TestExecute_FailsOpenOnCollaboratorError(t *testing.T) {
	avail := &stubAvailability{conflictsErr: errors.New("connection refused")}
	m := &countingMetrics{}
	uc := testUseCase(avail, m)

	resp, err := uc.Execute(context.Background(), testRequest(t, 2*time.Hour))
	require.NoError(t, err)

	assert.False(t, resp.HasConflicts())
	assert.True(t, resp.Degraded)
	assert.Equal(t, 1, m.degraded)
}

func TestExecute_CancelledContextSurfaces(t *testing.T) {
	avail := &stubAvailability{conflictsErr: context.Canceled}
	uc := testUseCase(avail, NopMetrics{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, testRequest(t, 2*time.Hour))
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecute_RejectsBadInput(t *testing.T) {
	uc := testUseCase(&stubAvailability{}, NopMetrics{})

	req := testRequest(t, 2*time.Hour)
	req.ResourceIDs = nil
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)

	req = testRequest(t, 2*time.Hour)
	req.LocationID = 0
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
}
