package check_availability

import (
	"context"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// AvailabilityService is the collaborator that owns reservation storage.
// This use case never touches the database itself.
type AvailabilityService interface {
	CheckConflicts(ctx context.Context, locationID int64, resourceIDs []int64, window domain.TimeWindow, excludeID *int64) ([]domain.Conflict, error)
	NextAvailable(ctx context.Context, locationID int64, resourceIDs []int64, durationMinutes int, after time.Time) (*domain.TimeWindow, error)
}

// Metrics counts degraded (failed-open) availability checks.
type Metrics interface {
	IncAvailabilityDegraded()
}

// NopMetrics satisfies Metrics when instrumentation is disabled.
type NopMetrics struct{}

// IncAvailabilityDegraded does nothing.
func (NopMetrics) IncAvailabilityDegraded() {}

// TimeProvider supplies the current wall-clock time, injectable for tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the leveled printf logger injected by the composition root.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
