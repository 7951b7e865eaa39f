package create_draft

import (
	"errors"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/views"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft/models"
)

var (
	errInvalidMode   = errors.New("invalid mode")
	errInvalidWindow = errors.New("invalid window timestamps")
)

// CreateDraftRequest opens a new draft. Mode defaults to booking when
// omitted; resources and window may arrive later as edits.
type CreateDraftRequest struct {
	LocationID  int64                 `json:"locationId"`
	Mode        string                `json:"mode,omitempty"`
	ResourceIDs []int64               `json:"resourceIds,omitempty"`
	Window      *views.TimeWindowView `json:"window,omitempty"`
}

// ToServiceRequest parses the optional mode and window.
func (r *CreateDraftRequest) ToServiceRequest() (*models.CreateRequest, error) {
	req := &models.CreateRequest{
		LocationID:  r.LocationID,
		ResourceIDs: r.ResourceIDs,
	}

	if r.Mode != "" {
		mode, err := domain.ParseMode(r.Mode)
		if err != nil {
			return nil, errInvalidMode
		}
		req.Mode = mode
	}

	if r.Window != nil {
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
		req.Window = &window
	}

	return req, nil
}
