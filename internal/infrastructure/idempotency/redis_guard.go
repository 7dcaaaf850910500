package idempotency

import (
	"context"
	"fmt"
	"time"

	"shipdash-shopify-layer/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultDeliveryTTL is how long a delivery marker lives. The platform
// retries failed deliveries within hours, so a day of memory is enough.
const DefaultDeliveryTTL = 24 * time.Hour

// RedisDeliveryGuard remembers seen (shop, order) webhook deliveries in
// redis so redelivered orders/create events are not re-processed.
type RedisDeliveryGuard struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisDeliveryGuard creates a guard over the given redis client.
func NewRedisDeliveryGuard(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisDeliveryGuard {
	if ttl <= 0 {
		ttl = DefaultDeliveryTTL
	}
	return &RedisDeliveryGuard{rdb: rdb, ttl: ttl, logger: logger}
}

// FirstDelivery marks the delivery and reports whether it was unseen. SetNX
// makes the check-and-mark a single round trip, so two concurrent
// deliveries cannot both claim to be first.
func (g *RedisDeliveryGuard) FirstDelivery(ctx context.Context, shop, orderID string) (bool, error) {
	key := fmt.Sprintf("webhook:orders:%s:%s", shop, orderID)
	first, err := g.rdb.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("delivery guard setnx: %w", err)
	}
	return first, nil
}

var _ ports.DeliveryGuard = (*RedisDeliveryGuard)(nil)
