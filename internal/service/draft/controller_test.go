package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/infra/events"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/integrations/crmservice"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft/models"
	checkAvailability "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/check_availability"
	commitReservation "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/commit_reservation"
	quotePrice "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/quote_price"
	validateWindow "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/validate_window"
)

var testNow = time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC) // Thursday

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// scriptedAvailability answers conflict checks by the candidate window's
// start instant; unscripted windows are free. Debounce coalescing makes
// call counts nondeterministic, so keying by window keeps tests stable.
// An answer can hold its call open until released, to exercise supersede
// and teardown.
type scriptedAvailability struct {
	mu      sync.Mutex
	byStart map[time.Time]*availabilityAnswer
}

type availabilityAnswer struct {
	conflicts []domain.Conflict
	err       error
	started   chan struct{} // closed when the call begins, optional
	release   chan struct{} // call blocks until closed, optional

	startedOnce sync.Once
}

func (s *scriptedAvailability) script(start time.Time, answer *availabilityAnswer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byStart == nil {
		s.byStart = make(map[time.Time]*availabilityAnswer)
	}
	s.byStart[start] = answer
}

func (s *scriptedAvailability) CheckConflicts(ctx context.Context, _ int64, _ []int64, window domain.TimeWindow, _ *int64) ([]domain.Conflict, error) {
	s.mu.Lock()
	answer := s.byStart[window.Start]
	s.mu.Unlock()

	if answer == nil {
		return nil, nil
	}
	if answer.started != nil {
		answer.startedOnce.Do(func() { close(answer.started) })
	}
	if answer.release != nil {
		select {
		case <-answer.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return answer.conflicts, answer.err
}

func (s *scriptedAvailability) NextAvailable(context.Context, int64, []int64, int, time.Time) (*domain.TimeWindow, error) {
	next := testNow.Add(8 * time.Hour)
	return &domain.TimeWindow{Start: next, End: next.Add(time.Hour)}, nil
}

type stubTiers struct {
	tier *crmservice.Tier
	err  error
}

func (s *stubTiers) GetTier(context.Context, string) (*crmservice.Tier, error) {
	return s.tier, s.err
}

type stubPromos struct{}

func (stubPromos) GetPromo(context.Context, string) (*crmservice.Promo, error) {
	return nil, crmservice.ErrPromoNotFound
}

type stubCommitter struct {
	mu   sync.Mutex
	err  error
	seen []*commitReservation.Request
}

func (s *stubCommitter) Execute(_ context.Context, req *commitReservation.Request) (*commitReservation.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, req)
	if s.err != nil {
		return nil, s.err
	}
	return &commitReservation.Response{
		Reservation: &domain.Reservation{
			ID:               42,
			LocationID:       req.LocationID,
			ResourceIDs:      req.ResourceIDs,
			Mode:             req.Mode,
			Window:           req.Window,
			Status:           domain.StatusConfirmed,
			CustomerRef:      req.CustomerRef,
			TotalAmount:      req.TotalAmount,
			Currency:         req.Currency,
			ConfirmationCode: "CHB-TEST0001",
		},
	}, nil
}

func (s *stubCommitter) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ReservationConfirmedEvent
}

func (p *recordingPublisher) PublishReservationConfirmed(_ context.Context, e events.ReservationConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// blockingPublisher parks every publish until released, standing in for
// an unreachable broker.
type blockingPublisher struct {
	recordingPublisher
	startOnce sync.Once
	started   chan struct{}
	release   chan struct{}
}

func newBlockingPublisher() *blockingPublisher {
	return &blockingPublisher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (p *blockingPublisher) PublishReservationConfirmed(ctx context.Context, e events.ReservationConfirmedEvent) error {
	p.startOnce.Do(func() { close(p.started) })
	select {
	case <-p.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return p.recordingPublisher.PublishReservationConfirmed(ctx, e)
}

type testEnv struct {
	availability *scriptedAvailability
	committer    *stubCommitter
	publisher    *recordingPublisher
	deps         *Deps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	day := domain.DayHours{Open: "09:00", Close: "23:00"}
	schedule := domain.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
	rates := domain.PricingRates{
		Currency: "CAD", TaxRate: 0.13, ExtraResourceHourly: 35,
		EventHourly: 120, ClassHourly: 80, AttendeeThreshold: 10,
		PerAttendeeFee: 5, EventDepositPercent: 25,
	}

	timer := &fixedTime{now: testNow}
	tiers := &stubTiers{tier: &crmservice.Tier{ID: "member", Name: "Member", HourlyRate: 50, DiscountPercent: 20}}
	availability := &scriptedAvailability{}
	committer := &stubCommitter{}
	publisher := &recordingPublisher{}

	validator := validateWindow.NewUseCase(tiers, schedule, time.UTC, timer, nopLogger{})
	pricer := quotePrice.NewUseCase(tiers, stubPromos{}, rates, nopLogger{})
	checker := checkAvailability.NewUseCase(availability, time.Second, timer, checkAvailability.NopMetrics{}, nopLogger{})

	return &testEnv{
		availability: availability,
		committer:    committer,
		publisher:    publisher,
		deps: &Deps{
			Validator:    validator,
			Pricer:       pricer,
			Availability: checker,
			Committer:    committer,
			Tiers:        tiers,
			Promos:       stubPromos{},
			Publisher:    publisher,
			Timer:        timer,
			Logger:       nopLogger{},
			Debounce:     5 * time.Millisecond,
		},
	}
}

func testWindow(t *testing.T) domain.TimeWindow {
	t.Helper()
	start := testNow.Add(4 * time.Hour)
	w, err := domain.NewTimeWindow(start, start.Add(time.Hour))
	require.NoError(t, err)
	return w
}

func openBookingDraft(t *testing.T, env *testEnv) *Controller {
	t.Helper()
	w := testWindow(t)
	c := newController(newDraftID(t), &models.CreateRequest{
		LocationID:  1,
		Mode:        domain.ModeBooking,
		ResourceIDs: []int64{3},
		Window:      &w,
	}, env.deps)
	t.Cleanup(c.Close)

	name := "Mike Belanger"
	tierID := "member"
	_, err := c.ApplyChange(context.Background(), &models.FieldPatch{
		CustomerName: &name,
		TierID:       &tierID,
	})
	require.NoError(t, err)
	return c
}

func newDraftID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func waitForState(t *testing.T, c *Controller, want models.State) models.Snapshot {
	t.Helper()
	var snapshot models.Snapshot
	require.Eventually(t, func() bool {
		snapshot = c.Snapshot()
		return snapshot.State == want
	}, 2*time.Second, 5*time.Millisecond, "draft never reached state %s (last: %s)", want, snapshot.State)
	return snapshot
}

func TestController_CleanEditBecomesSubmittable(t *testing.T) {
	env := newTestEnv(t)

	c := openBookingDraft(t, env)

	snapshot := waitForState(t, c, models.StateEditing)
	assert.True(t, snapshot.CanSubmit)
	assert.Empty(t, snapshot.Conflicts)
	assert.True(t, snapshot.Validation.Valid)
	require.NotNil(t, snapshot.Breakdown)
	assert.InDelta(t, 45.20, snapshot.Breakdown.TotalAmount, 0.001) // 50 - 20% + tax
}

func TestController_ConflictsBlockSubmitAndOfferSuggestions(t *testing.T) {
	env := newTestEnv(t)
	conflict := domain.Conflict{
		ReservationID: 7,
		Kind:          domain.ConflictReservation,
		Label:         "Guest",
		Window:        testWindow(t),
		ResourceIDs:   []int64{3},
	}
	env.availability.script(testWindow(t).Start, &availabilityAnswer{conflicts: []domain.Conflict{conflict}})

	c := openBookingDraft(t, env)

	snapshot := waitForState(t, c, models.StateConflictsPresent)
	require.Len(t, snapshot.Conflicts, 1)
	assert.False(t, snapshot.CanSubmit)

	kinds := make([]domain.SuggestionKind, 0, len(snapshot.Suggestions))
	for _, s := range snapshot.Suggestions {
		kinds = append(kinds, s.Kind)
		assert.False(t, s.Window.Start.Before(testNow))
	}
	assert.Contains(t, kinds, domain.SuggestionEarlier)
	assert.Contains(t, kinds, domain.SuggestionLater)

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrNotSubmittable)
	assert.Equal(t, 0, len(env.committer.seen))
}

func TestController_BlockModeRequiresReason(t *testing.T) {
	env := newTestEnv(t)

	w := testWindow(t)
	c := newController(newDraftID(t), &models.CreateRequest{
		LocationID:  1,
		Mode:        domain.ModeBlock,
		ResourceIDs: []int64{3},
		Window:      &w,
	}, env.deps)
	t.Cleanup(c.Close)

	snapshot := waitForState(t, c, models.StateEditing)
	assert.False(t, snapshot.CanSubmit)
	assert.Equal(t, []domain.Field{domain.FieldReason}, snapshot.MissingFields)

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrNotSubmittable)

	reason := "league night hold"
	_, err = c.ApplyChange(context.Background(), &models.FieldPatch{Reason: &reason})
	require.NoError(t, err)

	snapshot = waitForState(t, c, models.StateEditing)
	assert.True(t, snapshot.CanSubmit)

	snapshot, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StateConfirmed, snapshot.State)
}

func TestController_OnlyLatestResponseApplies(t *testing.T) {
	env := newTestEnv(t)

	staleConflict := domain.Conflict{ReservationID: 9, Kind: domain.ConflictAdminBlock, Label: "Maintenance"}
	started := make(chan struct{})
	release := make(chan struct{})
	w1 := testWindow(t).ShiftBy(30 * time.Minute)
	env.availability.script(w1.Start, &availabilityAnswer{
		conflicts: []domain.Conflict{staleConflict},
		started:   started,
		release:   release,
	})

	c := openBookingDraft(t, env)
	waitForState(t, c, models.StateEditing)

	// First edit: its availability check starts and then hangs.
	_, err := c.ApplyChange(context.Background(), &models.FieldPatch{Window: &w1})
	require.NoError(t, err)
	<-started

	// Second edit supersedes the first while it is still in flight.
	w2 := testWindow(t).ShiftBy(time.Hour)
	_, err = c.ApplyChange(context.Background(), &models.FieldPatch{Window: &w2})
	require.NoError(t, err)

	snapshot := waitForState(t, c, models.StateEditing)
	assert.Empty(t, snapshot.Conflicts)

	// Let the stale response land; it must be discarded.
	close(release)
	time.Sleep(50 * time.Millisecond)

	snapshot = c.Snapshot()
	assert.Equal(t, models.StateEditing, snapshot.State)
	assert.Empty(t, snapshot.Conflicts, "stale availability response mutated state")
}

func TestController_TeardownAbortsInFlightCheck(t *testing.T) {
	env := newTestEnv(t)

	started := make(chan struct{})
	w := testWindow(t)
	env.availability.script(w.Start, &availabilityAnswer{
		conflicts: []domain.Conflict{{ReservationID: 5}},
		started:   started,
		release:   make(chan struct{}),
	})

	c := newController(newDraftID(t), &models.CreateRequest{
		LocationID:  1,
		Mode:        domain.ModeBooking,
		ResourceIDs: []int64{3},
		Window:      &w,
	}, env.deps)

	<-started
	c.Close()

	// The blocked call exits via context cancellation; nothing applies.
	time.Sleep(50 * time.Millisecond)
	snapshot := c.Snapshot()
	assert.Empty(t, snapshot.Conflicts)

	_, err := c.ApplyChange(context.Background(), &models.FieldPatch{})
	require.ErrorIs(t, err, ErrDraftClosed)
}

func TestController_ModeSwitchClearsModeFieldsOnly(t *testing.T) {
	env := newTestEnv(t)

	c := openBookingDraft(t, env)
	waitForState(t, c, models.StateEditing)

	snapshot, err := c.SetMode(context.Background(), domain.ModeEvent)
	require.NoError(t, err)

	assert.Equal(t, domain.ModeEvent, snapshot.Mode)
	assert.Nil(t, snapshot.CustomerName)
	assert.Nil(t, snapshot.TierID)
	assert.Nil(t, snapshot.PromoCode)

	// Shared fields survive.
	assert.Equal(t, int64(1), snapshot.LocationID)
	assert.Equal(t, []int64{3}, snapshot.ResourceIDs)
	assert.Equal(t, testWindow(t), snapshot.Window)

	// Event mode now needs a name instead of a customer.
	assert.Equal(t, []domain.Field{domain.FieldEventName}, snapshot.MissingFields)
}

func TestController_SubmitFailureIsRetryable(t *testing.T) {
	env := newTestEnv(t)
	env.committer.setErr(errors.New("storage offline"))

	c := openBookingDraft(t, env)
	waitForState(t, c, models.StateEditing)

	snapshot, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitFailed)
	assert.Equal(t, models.StateFailed, snapshot.State)
	assert.Contains(t, snapshot.LastError, "storage offline")

	// Entered data survives the failure.
	require.NotNil(t, snapshot.CustomerName)
	assert.Equal(t, "Mike Belanger", *snapshot.CustomerName)
	assert.Equal(t, 0, env.publisher.count())

	// Retry succeeds once the collaborator recovers.
	env.committer.setErr(nil)
	snapshot, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StateConfirmed, snapshot.State)
	require.NotNil(t, snapshot.Confirmation)
	assert.Equal(t, "CHB-TEST0001", snapshot.Confirmation.ConfirmationCode)
	require.Eventually(t, func() bool { return env.publisher.count() == 1 },
		2*time.Second, 5*time.Millisecond)

	// A confirmed draft rejects further edits.
	_, err = c.ApplyChange(context.Background(), &models.FieldPatch{})
	require.ErrorIs(t, err, ErrDraftClosed)
}

func TestController_SubmitDoesNotWaitForEventPublish(t *testing.T) {
	env := newTestEnv(t)
	publisher := newBlockingPublisher()
	deps := *env.deps
	deps.Publisher = publisher

	w := testWindow(t)
	c := newController(newDraftID(t), &models.CreateRequest{
		LocationID:  1,
		Mode:        domain.ModeBooking,
		ResourceIDs: []int64{3},
		Window:      &w,
	}, &deps)
	t.Cleanup(c.Close)

	name := "Mike Belanger"
	tierID := "member"
	_, err := c.ApplyChange(context.Background(), &models.FieldPatch{
		CustomerName: &name,
		TierID:       &tierID,
	})
	require.NoError(t, err)
	waitForState(t, c, models.StateEditing)

	snapshot, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StateConfirmed, snapshot.State)

	// The broker is still hanging; the draft must stay readable.
	select {
	case <-publisher.started:
	case <-time.After(2 * time.Second):
		t.Fatal("publish never started")
	}
	done := make(chan models.Snapshot, 1)
	go func() { done <- c.Snapshot() }()
	select {
	case got := <-done:
		assert.Equal(t, models.StateConfirmed, got.State)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Snapshot blocked behind the event publish")
	}

	close(publisher.release)
	require.Eventually(t, func() bool { return publisher.count() == 1 },
		2*time.Second, 5*time.Millisecond)
}

func TestController_EventAttendeeFeeFlowsIntoBreakdown(t *testing.T) {
	env := newTestEnv(t)

	w := testWindow(t)
	c := newController(newDraftID(t), &models.CreateRequest{
		LocationID:  1,
		Mode:        domain.ModeEvent,
		ResourceIDs: []int64{3},
		Window:      &w,
	}, env.deps)
	t.Cleanup(c.Close)

	name := "Corporate scramble"
	attendees := 25
	snapshot, err := c.ApplyChange(context.Background(), &models.FieldPatch{
		EventName:     &name,
		AttendeeCount: &attendees,
	})
	require.NoError(t, err)

	require.NotNil(t, snapshot.Breakdown)
	var fee float64
	for _, line := range snapshot.Breakdown.Lines {
		if line.Kind == domain.LineFee {
			fee = line.Amount
		}
	}
	assert.InDelta(t, 75.0, fee, 0.001) // 15 over threshold at $5
}
