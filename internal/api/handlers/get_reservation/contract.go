package get_reservation

import (
	"context"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

type ReservationGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
