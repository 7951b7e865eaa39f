package validate_window

import (
	"context"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/integrations/crmservice"
)

// TierDirectory resolves customer pricing tiers.
type TierDirectory interface {
	GetTier(ctx context.Context, tierID string) (*crmservice.Tier, error)
}

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
