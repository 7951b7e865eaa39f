package update_draft

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/views"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft/models"
)

const (
	msgInvalidDraftID     = "invalid draft id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidWindow      = "invalid window, expected RFC3339 start and end with end after start"
	msgInvalidMode        = "unknown reservation mode"
	msgDraftNotFound      = "draft not found"
	msgDraftClosed        = "draft is closed"
	msgSubmitInProgress   = "draft is being submitted and cannot be edited"
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

// Handle PATCH /api/v1/drafts/{draftId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	draftID, err := uuid.Parse(vars["draftId"])
	if err != nil {
		h.logger.Warn("PATCH /drafts/{id} - Invalid draft ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	var req UpdateDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /drafts/{id} - Invalid request body: draft_id=%s, error=%v", draftID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var mode domain.Mode
	if req.Mode != nil {
		mode, err = domain.ParseMode(*req.Mode)
		if err != nil {
			h.logger.Warn("PATCH /drafts/{id} - Invalid mode: draft_id=%s, mode=%q", draftID, *req.Mode)
			handlers.RespondBadRequest(w, msgInvalidMode)
			return
		}
	}

	patch, err := req.ToFieldPatch()
	if err != nil {
		h.logger.Warn("PATCH /drafts/{id} - Failed to parse request: draft_id=%s, error=%v", draftID, err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	controller, err := h.manager.Get(draftID)
	if err != nil {
		h.respondDraftError(w, "PATCH /drafts/{id}", draftID, err)
		return
	}

	var snapshot models.Snapshot
	if req.Mode != nil {
		snapshot, err = controller.SetMode(r.Context(), mode)
		if err != nil {
			h.respondDraftError(w, "PATCH /drafts/{id}", draftID, err)
			return
		}
	}
	if req.HasPatch() || req.Mode == nil {
		snapshot, err = controller.ApplyChange(r.Context(), patch)
		if err != nil {
			h.respondDraftError(w, "PATCH /drafts/{id}", draftID, err)
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, views.FromSnapshot(snapshot))
}

func (h *Handler) respondDraftError(w http.ResponseWriter, op string, draftID uuid.UUID, err error) {
	switch {
	case errors.Is(err, draft.ErrDraftNotFound):
		h.logger.Warn("%s - Draft not found: draft_id=%s", op, draftID)
		handlers.RespondNotFound(w, msgDraftNotFound)

	case errors.Is(err, draft.ErrDraftClosed):
		h.logger.Warn("%s - Draft closed: draft_id=%s", op, draftID)
		handlers.RespondError(w, http.StatusConflict, msgDraftClosed)

	case errors.Is(err, draft.ErrSubmitInProgress):
		h.logger.Warn("%s - Submit in progress: draft_id=%s", op, draftID)
		handlers.RespondError(w, http.StatusConflict, msgSubmitInProgress)

	default:
		h.logger.Error("%s - Failed: draft_id=%s, error=%v", op, draftID, err)
		handlers.RespondInternalError(w)
	}
}
