package commit_reservation

import (
	"context"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// ReservationRepository is the storage surface the commit needs.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	FindOverlapping(ctx context.Context, locationID int64, resourceIDs []int64, window domain.TimeWindow, excludeID *int64) ([]*domain.Reservation, error)
}

// TransactionManager runs the overlap re-check and insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics counts committed reservations.
type Metrics interface {
	IncReservationsCommitted(mode string)
}

// NopMetrics satisfies Metrics when instrumentation is disabled.
type NopMetrics struct{}

// IncReservationsCommitted does nothing.
func (NopMetrics) IncReservationsCommitted(string) {}

// Logger is the leveled printf logger injected by the composition root.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
