package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	validateWindow "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/validate_window"
)

// State is the draft lifecycle position exposed to the form.
type State string

const (
	StateEditing          State = "editing"
	StateValidating       State = "validating"
	StateConflictsPresent State = "conflictsPresent"
	StateSubmitting       State = "submitting"
	StateConfirmed        State = "confirmed"
	StateFailed           State = "failed"
)

// CreateRequest opens a new draft. Everything beyond the location is
// optional at creation time and arrives through patches as the user edits.
type CreateRequest struct {
	LocationID  int64
	Mode        domain.Mode
	ResourceIDs []int64
	Window      *domain.TimeWindow
}

// FieldPatch is one form edit. Nil fields are untouched; setting a
// pointer field to its zero value clears it.
type FieldPatch struct {
	ResourceIDs   *[]int64
	Window        *domain.TimeWindow
	CustomerRef   *string
	CustomerName  *string
	TierID        *string
	EventName     *string
	AttendeeCount *int
	Reason        *string
	PromoCode     *string
}

// Confirmation carries the commit result shown after a successful submit.
type Confirmation struct {
	ReservationID    int64
	ConfirmationCode string
	TotalAmount      float64
	Currency         string
}

// Snapshot is everything the booking form renders: the draft fields, the
// validation and pricing results, the latest conflict check, and the
// submit gate.
type Snapshot struct {
	ID    uuid.UUID
	State State
	Mode  domain.Mode

	LocationID  int64
	ResourceIDs []int64
	Window      domain.TimeWindow

	CustomerRef   *string
	CustomerName  *string
	TierID        *string
	EventName     *string
	AttendeeCount int
	Reason        *string
	PromoCode     *string

	Validation   validateWindow.Result
	Breakdown    *domain.PriceBreakdown
	PricingError string // tier/promo resolution failure, inline on that field

	Conflicts            []domain.Conflict
	Suggestions          []domain.Suggestion
	AvailabilityDegraded bool

	CanSubmit     bool
	MissingFields []domain.Field
	LastError     string
	Confirmation  *Confirmation

	UpdatedAt time.Time
}
