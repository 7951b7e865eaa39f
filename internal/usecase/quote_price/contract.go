package quote_price

import (
	"context"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/integrations/crmservice"
)

// TierDirectory resolves customer pricing tiers.
type TierDirectory interface {
	GetTier(ctx context.Context, tierID string) (*crmservice.Tier, error)
}

// PromoDirectory resolves discount codes.
type PromoDirectory interface {
	GetPromo(ctx context.Context, code string) (*crmservice.Promo, error)
}

// Logger is the leveled printf logger injected by the composition root.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
