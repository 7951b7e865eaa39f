package create_draft

import (
	"errors"
	"net/http"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/views"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidMode        = "unknown reservation mode"
	msgInvalidWindow      = "invalid window, expected RFC3339 start and end with end after start"
	msgInvalidInput       = "location id is required"
)

type Handler struct {
	manager DraftManager
	logger  Logger
}

func NewHandler(manager DraftManager, logger Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /drafts - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidMode) {
			handlers.RespondBadRequest(w, msgInvalidMode)
		} else {
			handlers.RespondBadRequest(w, msgInvalidWindow)
		}
		return
	}

	controller, err := h.manager.Create(serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, draft.ErrInvalidInput):
			h.logger.Warn("POST /drafts - Invalid input: location_id=%d", req.LocationID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /drafts - Failed to open draft: location_id=%d, error=%v", req.LocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	snapshot := controller.Snapshot()
	handlers.RespondJSON(w, http.StatusCreated, views.FromSnapshot(snapshot))
}
