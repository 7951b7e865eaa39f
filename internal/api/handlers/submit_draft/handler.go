package submit_draft

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/views"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft"
)

const (
	msgInvalidDraftID   = "invalid draft id"
	msgDraftNotFound    = "draft not found"
	msgDraftClosed      = "draft is closed"
	msgNotSubmittable   = "draft is not ready to submit"
	msgSubmitInProgress = "submission already in progress"
	msgSubmitFailed     = "submission failed, the draft remains editable"
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

// Handle POST /api/v1/drafts/{draftId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	draftID, err := uuid.Parse(vars["draftId"])
	if err != nil {
		h.logger.Warn("POST /drafts/{id}/submit - Invalid draft ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	controller, err := h.manager.Get(draftID)
	if err != nil {
		switch {
		case errors.Is(err, draft.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{id}/submit - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgDraftNotFound)

		default:
			h.logger.Error("POST /drafts/{id}/submit - Failed: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	snapshot, err := controller.Submit(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, draft.ErrDraftClosed):
			h.logger.Warn("POST /drafts/{id}/submit - Draft closed: draft_id=%s", draftID)
			handlers.RespondError(w, http.StatusConflict, msgDraftClosed)

		case errors.Is(err, draft.ErrSubmitInProgress):
			h.logger.Warn("POST /drafts/{id}/submit - Submit in progress: draft_id=%s", draftID)
			handlers.RespondError(w, http.StatusConflict, msgSubmitInProgress)

		case errors.Is(err, draft.ErrNotSubmittable):
			h.logger.Warn("POST /drafts/{id}/submit - Not submittable: draft_id=%s, reason=%v", draftID, err)
			handlers.RespondError(w, http.StatusConflict, msgNotSubmittable)

		case errors.Is(err, draft.ErrSubmitFailed):
			h.logger.Warn("POST /drafts/{id}/submit - Submit failed: draft_id=%s, error=%v", draftID, err)
			handlers.RespondError(w, http.StatusConflict, msgSubmitFailed)

		default:
			h.logger.Error("POST /drafts/{id}/submit - Failed: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/submit - Draft confirmed: draft_id=%s, reservation_id=%d",
		draftID, snapshot.Confirmation.ReservationID)
	handlers.RespondJSON(w, http.StatusOK, views.FromSnapshot(snapshot))
}
