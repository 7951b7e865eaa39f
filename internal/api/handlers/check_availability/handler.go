package check_availability

import (
	"errors"
	"net/http"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers"
	checkAvailability "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidWindow      = "invalid window, expected RFC3339 start and end with end after start"
	msgInvalidInput       = "location and at least one resource are required"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability-checks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability-checks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /availability-checks - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability-checks - Invalid input: location_id=%d", req.LocationID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability-checks - Failed: location_id=%d, error=%v", req.LocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
