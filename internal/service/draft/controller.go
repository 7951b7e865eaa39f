package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/infra/events"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft/models"
	checkAvailability "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/check_availability"
	commitReservation "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/commit_reservation"
	validateWindow "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/validate_window"
)

// Deps bundles the collaborators every draft controller shares.
type Deps struct {
	Validator    WindowValidator
	Pricer       Pricer
	Availability AvailabilityChecker
	Committer    ReservationCommitter
	Tiers        TierDirectory
	Promos       PromoDirectory
	Publisher    EventPublisher
	Timer        TimeProvider
	Logger       Logger
	Debounce     time.Duration
}

// Controller owns one draft reservation: its fields, its mode-tagged
// state machine, and the debounced availability checking. All state is
// written under the controller's lock; async completions are gated by a
// monotonic sequence token so only the latest issued check may apply.
type Controller struct {
	id   uuid.UUID
	deps *Deps

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	mode        domain.Mode
	locationID  int64
	resourceIDs []int64
	window      domain.TimeWindow

	customerRef   *string
	customerName  *string
	tierID        *string
	eventName     *string
	attendeeCount int
	reason        *string
	promoCode     *string

	tier     *domain.CustomerTier
	tierErr  string
	promo    *domain.DiscountCode
	promoErr string

	state        models.State
	validation   validateWindow.Result
	breakdown    *domain.PriceBreakdown
	conflicts    []domain.Conflict
	suggestions  []domain.Suggestion
	degraded     bool
	lastError    string
	confirmation *models.Confirmation

	seq   uint64
	timer *time.Timer

	lastTouched time.Time
}

func newController(id uuid.UUID, req *models.CreateRequest, deps *Deps) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		id:          id,
		deps:        deps,
		ctx:         ctx,
		cancel:      cancel,
		mode:        req.Mode,
		locationID:  req.LocationID,
		resourceIDs: append([]int64(nil), req.ResourceIDs...),
		state:       models.StateEditing,
		lastTouched: deps.Timer.Now(),
	}
	if req.Window != nil {
		c.window = *req.Window
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.recompute()
	c.scheduleAvailabilityCheck()
	return c
}

// ID returns the draft identifier.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// LastTouched returns when the draft last saw an edit or submit.
func (c *Controller) LastTouched() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTouched
}

// Snapshot returns a consistent copy of everything the form renders.
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// ApplyChange merges one form edit into the draft, recomputes validation
// and pricing synchronously, and schedules a debounced availability check.
func (c *Controller) ApplyChange(ctx context.Context, patch *models.FieldPatch) (models.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return models.Snapshot{}, err
	}

	if patch.ResourceIDs != nil {
		if len(*patch.ResourceIDs) > domain.MaxResourcesPerReservation {
			return models.Snapshot{}, fmt.Errorf("%w: too many resources", ErrInvalidInput)
		}
		c.resourceIDs = append([]int64(nil), *patch.ResourceIDs...)
	}
	if patch.Window != nil {
		c.window = *patch.Window
	}
	if patch.CustomerRef != nil {
		c.customerRef = emptyToNil(*patch.CustomerRef)
	}
	if patch.CustomerName != nil {
		c.customerName = emptyToNil(*patch.CustomerName)
	}
	if patch.EventName != nil {
		c.eventName = emptyToNil(*patch.EventName)
	}
	if patch.AttendeeCount != nil {
		if *patch.AttendeeCount < 0 || *patch.AttendeeCount > domain.MaxAttendees {
			return models.Snapshot{}, fmt.Errorf("%w: attendee count out of range", ErrInvalidInput)
		}
		c.attendeeCount = *patch.AttendeeCount
	}
	if patch.Reason != nil {
		c.reason = emptyToNil(*patch.Reason)
	}
	if patch.TierID != nil {
		c.tierID = emptyToNil(*patch.TierID)
		c.resolveTierLocked(ctx)
	}
	if patch.PromoCode != nil {
		c.promoCode = emptyToNil(*patch.PromoCode)
		c.resolvePromoLocked(ctx)
	}

	c.lastTouched = c.deps.Timer.Now()
	c.lastError = ""
	c.recompute()
	c.scheduleAvailabilityCheck()
	return c.snapshotLocked(), nil
}

// SetMode switches the draft mode. Mode-specific fields are cleared;
// location, resources and window survive the switch.
func (c *Controller) SetMode(ctx context.Context, mode domain.Mode) (models.Snapshot, error) {
	if !mode.Valid() {
		return models.Snapshot{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, string(mode))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return models.Snapshot{}, err
	}
	if mode == c.mode {
		return c.snapshotLocked(), nil
	}

	c.mode = mode
	c.customerRef = nil
	c.customerName = nil
	c.tierID = nil
	c.tier = nil
	c.tierErr = ""
	c.eventName = nil
	c.attendeeCount = 0
	c.reason = nil
	c.promoCode = nil
	c.promo = nil
	c.promoErr = ""

	c.lastTouched = c.deps.Timer.Now()
	c.lastError = ""
	c.recompute()
	c.scheduleAvailabilityCheck()
	return c.snapshotLocked(), nil
}

// Submit commits the draft. The gate re-checks everything: required
// fields, zero known conflicts, and a valid window for priced modes. A
// failed commit surfaces its reason and leaves the draft editable with
// every entered field intact.
func (c *Controller) Submit(ctx context.Context) (models.Snapshot, error) {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return models.Snapshot{}, ErrDraftClosed
	}
	switch c.state {
	case models.StateSubmitting:
		c.mu.Unlock()
		return models.Snapshot{}, ErrSubmitInProgress
	case models.StateConfirmed:
		c.mu.Unlock()
		return models.Snapshot{}, ErrDraftClosed
	}

	if !c.canSubmitLocked() {
		reason := c.blockReasonLocked()
		snapshot := c.snapshotLocked()
		c.mu.Unlock()
		return snapshot, fmt.Errorf("%w: %s", ErrNotSubmittable, reason)
	}

	req := c.commitRequestLocked()
	c.state = models.StateSubmitting
	c.lastTouched = c.deps.Timer.Now()
	c.mu.Unlock()

	resp, err := c.deps.Committer.Execute(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = models.StateFailed
		c.lastError = err.Error()
		c.deps.Logger.Warn("Draft %s: submit failed: %v", c.id, err)
		return c.snapshotLocked(), fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	committed := resp.Reservation
	c.state = models.StateConfirmed
	c.lastError = ""
	c.confirmation = &models.Confirmation{
		ReservationID:    committed.ID,
		ConfirmationCode: committed.ConfirmationCode,
		TotalAmount:      committed.TotalAmount,
		Currency:         committed.Currency,
	}
	c.stopTimerLocked()

	// Best effort, off the lock; the publisher logs its own failures and a
	// slow broker must never stall the submit response or other readers.
	event := events.ReservationConfirmedEvent{
		ReservationID:    committed.ID,
		ConfirmationCode: committed.ConfirmationCode,
		LocationID:       committed.LocationID,
		ResourceIDs:      committed.ResourceIDs,
		Mode:             string(committed.Mode),
		StartAt:          committed.Window.Start,
		EndAt:            committed.Window.End,
		CustomerRef:      committed.CustomerRef,
		TotalAmount:      committed.TotalAmount,
		Currency:         committed.Currency,
		ConfirmedAt:      c.deps.Timer.Now(),
	}
	go func() {
		_ = c.deps.Publisher.PublishReservationConfirmed(c.ctx, event)
	}()

	c.deps.Logger.Info("Draft %s: confirmed reservation id=%d code=%s",
		c.id, committed.ID, committed.ConfirmationCode)
	return c.snapshotLocked(), nil
}

// Close tears the draft down: in-flight availability work is cancelled
// and no late response may touch state afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.stopTimerLocked()
	c.cancel()
}

func (c *Controller) editableLocked() error {
	if c.closed {
		return ErrDraftClosed
	}
	switch c.state {
	case models.StateSubmitting:
		return ErrSubmitInProgress
	case models.StateConfirmed:
		return ErrDraftClosed
	}
	return nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// resolveTierLocked refreshes the resolved tier after a tier edit. A
// directory failure poisons only pricing; the rest of the draft keeps
// working.
func (c *Controller) resolveTierLocked(ctx context.Context) {
	c.tier = nil
	c.tierErr = ""
	if c.tierID == nil {
		return
	}

	resolved, err := c.deps.Tiers.GetTier(ctx, *c.tierID)
	if err != nil {
		c.deps.Logger.Warn("Draft %s: tier id=%s resolution failed: %v", c.id, *c.tierID, err)
		c.tierErr = "customer tier could not be resolved"
		return
	}
	c.tier = resolved.ToDomain()
}

func (c *Controller) resolvePromoLocked(ctx context.Context) {
	c.promo = nil
	c.promoErr = ""
	if c.promoCode == nil {
		return
	}

	resolved, err := c.deps.Promos.GetPromo(ctx, *c.promoCode)
	if err != nil {
		c.deps.Logger.Warn("Draft %s: promo code=%s resolution failed: %v", c.id, *c.promoCode, err)
		c.promoErr = "promo code could not be applied"
		return
	}
	if !resolved.Active {
		c.promoErr = "promo code is no longer active"
		return
	}

	promo, err := resolved.ToDomain()
	if err != nil {
		c.promoErr = "promo code is invalid"
		return
	}
	c.promo = promo
}

// recompute reruns the synchronous parts: window validation and pricing.
func (c *Controller) recompute() {
	if c.window.IsZero() {
		c.validation = validateWindow.Result{Reason: "start and end times are required"}
	} else {
		c.validation = c.deps.Validator.Validate(c.window, c.tier, c.mode)
	}

	c.breakdown = nil
	if c.mode.Priced() && !c.window.IsZero() && c.window.End.After(c.window.Start) {
		breakdown, err := c.deps.Pricer.QuoteResolved(
			c.mode, c.window, c.tier, len(c.resourceIDs), c.attendeeCount, c.promo)
		switch {
		case err == nil:
			c.breakdown = breakdown
		case c.mode == domain.ModeBooking && c.tier == nil:
			// No tier picked yet; the price simply is not known.
		case c.tierErr == "":
			c.tierErr = "price could not be computed"
		}
	}
}

// scheduleAvailabilityCheck arms the debounce timer for a conflict query
// carrying the next sequence token. Earlier in-flight checks are
// superseded: their token no longer matches when they complete.
func (c *Controller) scheduleAvailabilityCheck() {
	c.stopTimerLocked()

	if c.closed {
		return
	}
	if c.locationID <= 0 || len(c.resourceIDs) == 0 || c.window.IsZero() || !c.window.End.After(c.window.Start) {
		// Nothing coherent to check yet.
		c.conflicts = nil
		c.suggestions = nil
		c.degraded = false
		c.state = models.StateEditing
		return
	}

	c.seq++
	token := c.seq
	c.state = models.StateValidating

	req := &checkAvailability.Request{
		LocationID:  c.locationID,
		ResourceIDs: append([]int64(nil), c.resourceIDs...),
		Window:      c.window,
	}

	c.timer = time.AfterFunc(c.deps.Debounce, func() {
		c.runAvailabilityCheck(token, req)
	})
}

func (c *Controller) runAvailabilityCheck(token uint64, req *checkAvailability.Request) {
	resp, err := c.deps.Availability.Execute(c.ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Supersede-on-latest: only the response matching the most recently
	// issued token may mutate state, and never after teardown.
	if c.closed || token != c.seq {
		return
	}
	if err != nil {
		// Cancelled teardown or input the use case refused; either way
		// there is nothing to display.
		c.deps.Logger.Warn("Draft %s: availability check dropped: %v", c.id, err)
		return
	}

	c.conflicts = resp.Conflicts
	c.suggestions = resp.Suggestions
	c.degraded = resp.Degraded

	if c.state == models.StateValidating {
		if len(c.conflicts) > 0 {
			c.state = models.StateConflictsPresent
		} else {
			c.state = models.StateEditing
		}
	}
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// missingFieldsLocked returns the mode-specific required fields the draft
// still lacks.
func (c *Controller) missingFieldsLocked() []domain.Field {
	var missing []domain.Field
	for _, field := range c.mode.RequiredFields() {
		switch field {
		case domain.FieldCustomer:
			if c.customerRef == nil && c.customerName == nil {
				missing = append(missing, field)
			}
		case domain.FieldReason:
			if c.reason == nil {
				missing = append(missing, field)
			}
		case domain.FieldEventName:
			if c.eventName == nil {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

func (c *Controller) canSubmitLocked() bool {
	switch c.state {
	case models.StateEditing, models.StateFailed:
	default:
		return false
	}
	if c.locationID <= 0 || len(c.resourceIDs) == 0 || c.window.IsZero() {
		return false
	}
	if len(c.missingFieldsLocked()) > 0 {
		return false
	}
	if len(c.conflicts) > 0 {
		return false
	}
	// The validator gates submission for customer-facing modes only;
	// administrative holds may run outside the usual rules.
	if c.mode.Priced() && !c.validation.Valid {
		return false
	}
	if c.mode == domain.ModeBooking && c.tier == nil && c.tierID != nil {
		return false
	}
	return true
}

func (c *Controller) blockReasonLocked() string {
	switch c.state {
	case models.StateValidating:
		return "availability check still running"
	case models.StateConflictsPresent:
		return "conflicts must be resolved"
	}
	if missing := c.missingFieldsLocked(); len(missing) > 0 {
		return fmt.Sprintf("missing required field %q", missing[0])
	}
	if len(c.conflicts) > 0 {
		return "conflicts must be resolved"
	}
	if c.locationID <= 0 || len(c.resourceIDs) == 0 || c.window.IsZero() {
		return "location, resources and time window are required"
	}
	if c.mode.Priced() && !c.validation.Valid {
		return c.validation.Reason
	}
	return "draft is incomplete"
}

func (c *Controller) commitRequestLocked() *commitReservation.Request {
	req := &commitReservation.Request{
		LocationID:    c.locationID,
		ResourceIDs:   append([]int64(nil), c.resourceIDs...),
		Mode:          c.mode,
		Window:        c.window,
		CustomerRef:   c.customerRef,
		CustomerName:  c.customerName,
		TierID:        c.tierID,
		EventName:     c.eventName,
		AttendeeCount: c.attendeeCount,
		Reason:        c.reason,
		PromoCode:     c.promoCode,
		Currency:      domain.DefaultCurrency,
	}
	if c.breakdown != nil {
		req.TotalAmount = c.breakdown.TotalAmount
		req.Currency = c.breakdown.Currency
	}
	return req
}

func (c *Controller) snapshotLocked() models.Snapshot {
	snapshot := models.Snapshot{
		ID:            c.id,
		State:         c.state,
		Mode:          c.mode,
		LocationID:    c.locationID,
		ResourceIDs:   append([]int64(nil), c.resourceIDs...),
		Window:        c.window,
		CustomerRef:   c.customerRef,
		CustomerName:  c.customerName,
		TierID:        c.tierID,
		EventName:     c.eventName,
		AttendeeCount: c.attendeeCount,
		Reason:        c.reason,
		PromoCode:     c.promoCode,
		Validation:    c.validation,
		Breakdown:     c.breakdown,

		Conflicts:            append([]domain.Conflict(nil), c.conflicts...),
		Suggestions:          append([]domain.Suggestion(nil), c.suggestions...),
		AvailabilityDegraded: c.degraded,

		CanSubmit:     c.canSubmitLocked(),
		MissingFields: c.missingFieldsLocked(),
		LastError:     c.lastError,
		Confirmation:  c.confirmation,
		UpdatedAt:     c.lastTouched,
	}

	switch {
	case c.tierErr != "":
		snapshot.PricingError = c.tierErr
	case c.promoErr != "":
		snapshot.PricingError = c.promoErr
	}
	return snapshot
}
