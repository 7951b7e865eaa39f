package delete_draft

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft"
)

const (
	msgInvalidDraftID = "invalid draft id"
	msgDraftNotFound  = "draft not found"
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

// Handle DELETE /api/v1/drafts/{draftId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	draftID, err := uuid.Parse(vars["draftId"])
	if err != nil {
		h.logger.Warn("DELETE /drafts/{id} - Invalid draft ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	if err := h.manager.Close(draftID); err != nil {
		switch {
		case errors.Is(err, draft.ErrDraftNotFound):
			h.logger.Warn("DELETE /drafts/{id} - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgDraftNotFound)

		default:
			h.logger.Error("DELETE /drafts/{id} - Failed: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /drafts/{id} - Draft discarded: draft_id=%s", draftID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
