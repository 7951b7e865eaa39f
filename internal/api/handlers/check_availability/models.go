package check_availability

import (
	"errors"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/views"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	checkAvailability "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/check_availability"
)

var errInvalidWindow = errors.New("invalid window timestamps")

// CheckRequest is the HTTP availability-check input.
type CheckRequest struct {
	LocationID  int64                `json:"locationId"`
	ResourceIDs []int64              `json:"resourceIds"`
	Window      views.TimeWindowView `json:"window"`
	ExcludeID   *int64               `json:"excludeReservationId,omitempty"`
}

// CheckResponse lists the conflicts found and the alternatives to offer.
// Degraded marks a failed-open check whose conflicts could not be read.
type CheckResponse struct {
	Conflicts   []views.ConflictView   `json:"conflicts"`
	Suggestions []views.SuggestionView `json:"suggestions"`
	Degraded    bool                   `json:"degraded"`
}

// ToUseCaseRequest parses the RFC3339 window timestamps.
func (r *CheckRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
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

	return &checkAvailability.Request{
		LocationID:  r.LocationID,
		ResourceIDs: r.ResourceIDs,
		Window:      window,
		ExcludeID:   r.ExcludeID,
	}, nil
}

// FromUseCaseResponse converts the check result into its HTTP shape.
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckResponse {
	return &CheckResponse{
		Conflicts:   views.FromConflicts(resp.Conflicts),
		Suggestions: views.FromSuggestions(resp.Suggestions),
		Degraded:    resp.Degraded,
	}
}
