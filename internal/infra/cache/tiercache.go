// Package cache provides a Redis read-through layer over the CRM tier
// directory. Tier lookups happen on every draft edit, so a short TTL cache
// spares the CRM while staying fresh enough for pricing.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/integrations/crmservice"
)

// Logger is the leveled printf logger injected by the composition root.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TierDirectory is the upstream being decorated.
type TierDirectory interface {
	GetTier(ctx context.Context, tierID string) (*crmservice.Tier, error)
}

// TierCache is a read-through cache over a TierDirectory. A cache failure
// never fails a lookup; the call falls through to the upstream.
type TierCache struct {
	upstream TierDirectory
	rdb      *redis.Client
	ttl      time.Duration
	logger   Logger
}

// NewTierCache decorates upstream with a Redis cache.
func NewTierCache(upstream TierDirectory, rdb *redis.Client, ttl time.Duration, logger Logger) *TierCache {
	return &TierCache{
		upstream: upstream,
		rdb:      rdb,
		ttl:      ttl,
		logger:   logger,
	}
}

func tierKey(tierID string) string {
	return "tier:" + tierID
}

// GetTier returns the cached tier when present, otherwise asks the
// upstream and stores the answer. Not-found responses are not cached so a
// newly created tier shows up immediately.
func (c *TierCache) GetTier(ctx context.Context, tierID string) (*crmservice.Tier, error) {
	key := tierKey(tierID)

	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var tier crmservice.Tier
		if jsonErr := json.Unmarshal(payload, &tier); jsonErr == nil {
			return &tier, nil
		}
		// Corrupt entry; drop it and fall through to the upstream.
		c.logger.Warn("TierCache: corrupt entry for %s, evicting", key)
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.Warn("TierCache: get %s failed, falling through: %v", key, err)
	}

	tier, err := c.upstream.GetTier(ctx, tierID)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(tier); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.Warn("TierCache: set %s failed: %v", key, setErr)
		}
	}
	return tier, nil
}
