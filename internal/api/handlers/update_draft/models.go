package update_draft

import (
	"errors"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/views"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft/models"
)

var errInvalidWindow = errors.New("invalid window timestamps")

// UpdateDraftRequest is one form edit. Omitted fields stay untouched;
// an empty string clears the field, and a window with empty start and
// end clears the window. A mode change is applied before the rest of
// the patch and clears the previous mode's fields.
type UpdateDraftRequest struct {
	Mode          *string               `json:"mode,omitempty"`
	ResourceIDs   *[]int64              `json:"resourceIds,omitempty"`
	Window        *views.TimeWindowView `json:"window,omitempty"`
	CustomerRef   *string               `json:"customerRef,omitempty"`
	CustomerName  *string               `json:"customerName,omitempty"`
	TierID        *string               `json:"tierId,omitempty"`
	EventName     *string               `json:"eventName,omitempty"`
	AttendeeCount *int                  `json:"attendeeCount,omitempty"`
	Reason        *string               `json:"reason,omitempty"`
	PromoCode     *string               `json:"promoCode,omitempty"`
}

// HasPatch reports whether anything besides the mode changes.
func (r *UpdateDraftRequest) HasPatch() bool {
	return r.ResourceIDs != nil || r.Window != nil || r.CustomerRef != nil ||
		r.CustomerName != nil || r.TierID != nil || r.EventName != nil ||
		r.AttendeeCount != nil || r.Reason != nil || r.PromoCode != nil
}

// ToFieldPatch parses the window and maps the remaining fields.
func (r *UpdateDraftRequest) ToFieldPatch() (*models.FieldPatch, error) {
	patch := &models.FieldPatch{
		ResourceIDs:   r.ResourceIDs,
		CustomerRef:   r.CustomerRef,
		CustomerName:  r.CustomerName,
		TierID:        r.TierID,
		EventName:     r.EventName,
		AttendeeCount: r.AttendeeCount,
		Reason:        r.Reason,
		PromoCode:     r.PromoCode,
	}

	if r.Window != nil {
		if r.Window.Start == "" && r.Window.End == "" {
			patch.Window = &domain.TimeWindow{}
			return patch, nil
		}
		start, err := time.Parse(time.RFC3339, r.Window.Start)
		if err != nil {
			return nil, errInvalidWindow
		}
		end, err := time.Parse(time.RFC3339, r.Window.End)
		if err != nil {
			return nil, errInvalidWindow
		}
		window, err := domain.NewTimeWindow(start, end)
		if err != nil {
			return nil, errInvalidWindow
		}
		patch.Window = &window
	}

	return patch, nil
}
