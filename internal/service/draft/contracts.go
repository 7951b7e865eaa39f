package draft

import (
	"context"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/infra/events"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/integrations/crmservice"
	checkAvailability "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/check_availability"
	commitReservation "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/commit_reservation"
	validateWindow "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/validate_window"
)

// WindowValidator runs synchronously on every field change.
type WindowValidator interface {
	Validate(window domain.TimeWindow, tier *domain.CustomerTier, mode domain.Mode) validateWindow.Result
}

// Pricer recomputes the breakdown from already-resolved collaborator data.
type Pricer interface {
	QuoteResolved(mode domain.Mode, window domain.TimeWindow, tier *domain.CustomerTier, resourceCount, attendeeCount int, promo *domain.DiscountCode) (*domain.PriceBreakdown, error)
}

// AvailabilityChecker answers the debounced conflict queries.
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error)
}

// ReservationCommitter persists a submitted draft.
type ReservationCommitter interface {
	Execute(ctx context.Context, req *commitReservation.Request) (*commitReservation.Response, error)
}

// TierDirectory resolves customer pricing tiers.
type TierDirectory interface {
	GetTier(ctx context.Context, tierID string) (*crmservice.Tier, error)
}

// PromoDirectory resolves discount codes.
type PromoDirectory interface {
	GetPromo(ctx context.Context, code string) (*crmservice.Promo, error)
}

// EventPublisher announces committed reservations. Failures are logged by
// the publisher and ignored here.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, event events.ReservationConfirmedEvent) error
}

// Metrics publishes draft gauges.
type Metrics interface {
	SetActiveDrafts(n int)
}

// NopMetrics satisfies Metrics when instrumentation is disabled.
type NopMetrics struct{}

// SetActiveDrafts does nothing.
func (NopMetrics) SetActiveDrafts(int) {}

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
