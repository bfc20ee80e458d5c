package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	reviewDomain "github.com/staynest/service-rental/internal/domain/review"
)

const hostRatingTTL = time.Hour

// RedisRatingCache stores precomputed host rating summaries in Redis.
// The rating projector rewrites entries as review events arrive; entries
// also expire so a missed event heals on its own.
type RedisRatingCache struct {
	client *redis.Client
}

// NewRedisRatingCache creates a new RedisRatingCache.
func NewRedisRatingCache(client *redis.Client) *RedisRatingCache {
	return &RedisRatingCache{client: client}
}

func hostRatingKey(hostID uuid.UUID) string {
	return "host:rating:" + hostID.String()
}

// GetHostRating returns the cached summary for a host, or nil on a miss.
func (c *RedisRatingCache) GetHostRating(ctx context.Context, hostID uuid.UUID) (*reviewDomain.RatingSummary, error) {
	raw, err := c.client.Get(ctx, hostRatingKey(hostID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read host rating from cache: %w", err)
	}

	var summary reviewDomain.RatingSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode cached host rating: %w", err)
	}
	return &summary, nil
}

// SetHostRating stores the summary for a host.
func (c *RedisRatingCache) SetHostRating(ctx context.Context, hostID uuid.UUID, summary reviewDomain.RatingSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode host rating: %w", err)
	}
	if err := c.client.Set(ctx, hostRatingKey(hostID), raw, hostRatingTTL).Err(); err != nil {
		return fmt.Errorf("failed to write host rating to cache: %w", err)
	}
	return nil
}

// InvalidateHostRating drops the cached summary for a host.
func (c *RedisRatingCache) InvalidateHostRating(ctx context.Context, hostID uuid.UUID) error {
	if err := c.client.Del(ctx, hostRatingKey(hostID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate host rating: %w", err)
	}
	return nil
}
