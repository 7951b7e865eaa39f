package get_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/views"
	storage "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/infra/storage/reservation"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgReservationNotFound  = "reservation not found"
)

type Handler struct {
	reservations ReservationGetter
	logger       Logger
}

func NewHandler(reservations ReservationGetter, logger Logger) *Handler {
	return &Handler{
		reservations: reservations,
		logger:       logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("GET /reservations/{id} - Invalid reservation ID: %s", vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	reservation, err := h.reservations.GetByID(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		default:
			h.logger.Error("GET /reservations/{id} - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, views.FromReservation(reservation))
}
