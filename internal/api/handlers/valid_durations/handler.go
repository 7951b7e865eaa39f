package valid_durations

import (
	"errors"
	"net/http"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	validateWindow "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/validate_window"
)

const (
	msgMissingMode     = "mode query parameter is required"
	msgInvalidMode     = "unknown reservation mode"
	msgTierNotFound    = "customer tier not found"
	msgTierUnavailable = "customer tier directory is unavailable"
)

type Handler struct {
	useCase DurationsUseCase
	logger  Logger
}

func NewHandler(useCase DurationsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/valid-durations
// Query params: mode (required), tierId (optional, caps booking durations)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	modeStr := r.URL.Query().Get("mode")
	if modeStr == "" {
		h.logger.Warn("GET /valid-durations - Missing mode")
		handlers.RespondBadRequest(w, msgMissingMode)
		return
	}

	mode, err := domain.ParseMode(modeStr)
	if err != nil {
		h.logger.Warn("GET /valid-durations - Invalid mode: %q", modeStr)
		handlers.RespondBadRequest(w, msgInvalidMode)
		return
	}

	var tierID *string
	if v := r.URL.Query().Get("tierId"); v != "" {
		tierID = &v
	}

	durations, err := h.useCase.DurationsFor(r.Context(), mode, tierID)
	if err != nil {
		switch {
		case errors.Is(err, validateWindow.ErrTierNotFound):
			h.logger.Warn("GET /valid-durations - Tier not found: tier_id=%v", tierID)
			handlers.RespondNotFound(w, msgTierNotFound)

		case errors.Is(err, validateWindow.ErrTierUnavailable):
			h.logger.Warn("GET /valid-durations - Tier directory unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTierUnavailable)

		default:
			h.logger.Error("GET /valid-durations - Failed: mode=%s, error=%v", mode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &DurationsResponse{
		Mode:      string(mode),
		Durations: durations,
	})
}
