// Package views holds the HTTP response models shared by the quote,
// availability and draft endpoints, so each handler package does not
// repeat the same domain-to-JSON mapping.
package views

import (
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft/models"
)

// TimeWindowView renders a window as a pair of RFC3339 timestamps.
type TimeWindowView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func FromTimeWindow(w domain.TimeWindow) TimeWindowView {
	return TimeWindowView{
		Start: w.Start.Format(time.RFC3339),
		End:   w.End.Format(time.RFC3339),
	}
}

// BreakdownLineView is one priced line of a quote.
type BreakdownLineView struct {
	Label       string  `json:"label"`
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Description string  `json:"description,omitempty"`
}

// BreakdownView is the full ordered quote shown next to the form.
type BreakdownView struct {
	Lines       []BreakdownLineView `json:"lines"`
	TotalAmount float64             `json:"totalAmount"`
	Currency    string              `json:"currency"`
}

func FromBreakdown(b *domain.PriceBreakdown) *BreakdownView {
	if b == nil {
		return nil
	}
	lines := make([]BreakdownLineView, 0, len(b.Lines))
	for _, line := range b.Lines {
		lines = append(lines, BreakdownLineView{
			Label:       line.Label,
			Amount:      line.Amount,
			Kind:        string(line.Kind),
			Description: line.Description,
		})
	}
	return &BreakdownView{
		Lines:       lines,
		TotalAmount: b.TotalAmount,
		Currency:    b.Currency,
	}
}

// ConflictView describes one reservation blocking a candidate window.
type ConflictView struct {
	ReservationID int64          `json:"reservationId"`
	Kind          string         `json:"kind"`
	Label         string         `json:"label"`
	Window        TimeWindowView `json:"window"`
	ResourceIDs   []int64        `json:"resourceIds"`
}

func FromConflicts(conflicts []domain.Conflict) []ConflictView {
	out := make([]ConflictView, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, ConflictView{
			ReservationID: c.ReservationID,
			Kind:          string(c.Kind),
			Label:         c.Label,
			Window:        FromTimeWindow(c.Window),
			ResourceIDs:   c.ResourceIDs,
		})
	}
	return out
}

// SuggestionView is one alternative window offered alongside conflicts.
type SuggestionView struct {
	Kind   string         `json:"kind"`
	Label  string         `json:"label"`
	Window TimeWindowView `json:"window"`
}

func FromSuggestions(suggestions []domain.Suggestion) []SuggestionView {
	out := make([]SuggestionView, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, SuggestionView{
			Kind:   string(s.Kind),
			Label:  s.Label,
			Window: FromTimeWindow(s.Window),
		})
	}
	return out
}

// ValidationView is the inline window validation result.
type ValidationView struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ConfirmationView is the commit result shown after a successful submit.
type ConfirmationView struct {
	ReservationID    int64   `json:"reservationId"`
	ConfirmationCode string  `json:"confirmationCode"`
	TotalAmount      float64 `json:"totalAmount"`
	Currency         string  `json:"currency"`
}

// ReservationView is the HTTP shape of a committed reservation.
type ReservationView struct {
	ID          int64          `json:"id"`
	LocationID  int64          `json:"locationId"`
	ResourceIDs []int64        `json:"resourceIds"`
	Mode        string         `json:"mode"`
	Window      TimeWindowView `json:"window"`
	Status      string         `json:"status"`

	CustomerRef   *string `json:"customerRef,omitempty"`
	CustomerName  *string `json:"customerName,omitempty"`
	TierID        *string `json:"tierId,omitempty"`
	EventName     *string `json:"eventName,omitempty"`
	AttendeeCount int     `json:"attendeeCount,omitempty"`
	Reason        *string `json:"reason,omitempty"`
	PromoCode     *string `json:"promoCode,omitempty"`

	TotalAmount      float64 `json:"totalAmount"`
	Currency         string  `json:"currency"`
	ConfirmationCode string  `json:"confirmationCode"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromReservation converts a committed reservation into its HTTP shape.
func FromReservation(r *domain.Reservation) *ReservationView {
	view := &ReservationView{
		ID:               r.ID,
		LocationID:       r.LocationID,
		ResourceIDs:      r.ResourceIDs,
		Mode:             string(r.Mode),
		Window:           FromTimeWindow(r.Window),
		Status:           string(r.Status),
		CustomerRef:      r.CustomerRef,
		CustomerName:     r.CustomerName,
		TierID:           r.TierID,
		EventName:        r.EventName,
		AttendeeCount:    r.AttendeeCount,
		Reason:           r.Reason,
		PromoCode:        r.PromoCode,
		TotalAmount:      r.TotalAmount,
		Currency:         r.Currency,
		ConfirmationCode: r.ConfirmationCode,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ResourceIDs == nil {
		view.ResourceIDs = []int64{}
	}
	return view
}

// DraftView is the full draft snapshot the booking form renders.
type DraftView struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Mode  string `json:"mode"`

	LocationID  int64           `json:"locationId"`
	ResourceIDs []int64         `json:"resourceIds"`
	Window      *TimeWindowView `json:"window,omitempty"`

	CustomerRef   *string `json:"customerRef,omitempty"`
	CustomerName  *string `json:"customerName,omitempty"`
	TierID        *string `json:"tierId,omitempty"`
	EventName     *string `json:"eventName,omitempty"`
	AttendeeCount int     `json:"attendeeCount,omitempty"`
	Reason        *string `json:"reason,omitempty"`
	PromoCode     *string `json:"promoCode,omitempty"`

	Validation   ValidationView `json:"validation"`
	Breakdown    *BreakdownView `json:"breakdown,omitempty"`
	PricingError string         `json:"pricingError,omitempty"`

	Conflicts            []ConflictView   `json:"conflicts"`
	Suggestions          []SuggestionView `json:"suggestions"`
	AvailabilityDegraded bool             `json:"availabilityDegraded"`

	CanSubmit     bool              `json:"canSubmit"`
	MissingFields []string          `json:"missingFields"`
	LastError     string            `json:"lastError,omitempty"`
	Confirmation  *ConfirmationView `json:"confirmation,omitempty"`

	UpdatedAt string `json:"updatedAt"`
}

// FromSnapshot converts a draft snapshot into its HTTP shape.
func FromSnapshot(s models.Snapshot) *DraftView {
	view := &DraftView{
		ID:                   s.ID.String(),
		State:                string(s.State),
		Mode:                 string(s.Mode),
		LocationID:           s.LocationID,
		ResourceIDs:          s.ResourceIDs,
		CustomerRef:          s.CustomerRef,
		CustomerName:         s.CustomerName,
		TierID:               s.TierID,
		EventName:            s.EventName,
		AttendeeCount:        s.AttendeeCount,
		Reason:               s.Reason,
		PromoCode:            s.PromoCode,
		Validation:           ValidationView{Valid: s.Validation.Valid, Reason: s.Validation.Reason},
		Breakdown:            FromBreakdown(s.Breakdown),
		PricingError:         s.PricingError,
		Conflicts:            FromConflicts(s.Conflicts),
		Suggestions:          FromSuggestions(s.Suggestions),
		AvailabilityDegraded: s.AvailabilityDegraded,
		CanSubmit:            s.CanSubmit,
		MissingFields:        fieldNames(s.MissingFields),
		LastError:            s.LastError,
		UpdatedAt:            s.UpdatedAt.Format(time.RFC3339),
	}
	if s.ResourceIDs == nil {
		view.ResourceIDs = []int64{}
	}
	if !s.Window.Start.IsZero() {
		w := FromTimeWindow(s.Window)
		view.Window = &w
	}
	if s.Confirmation != nil {
		view.Confirmation = &ConfirmationView{
			ReservationID:    s.Confirmation.ReservationID,
			ConfirmationCode: s.Confirmation.ConfirmationCode,
			TotalAmount:      s.Confirmation.TotalAmount,
			Currency:         s.Confirmation.Currency,
		}
	}
	return view
}

func fieldNames(fields []domain.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, string(f))
	}
	return out
}
