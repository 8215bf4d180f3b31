// Copyright (c) 2026 Giftwise. All rights reserved.

package suggest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/giftwise/giftwise/internal/platform/constants"
)

// # Suggestion Cache

// SuggestionCache stores upstream answers keyed by interest and budget, so
// participants with the same profile share one upstream round-trip.
type SuggestionCache interface {

	/*
		Get returns the cached gift text for the interest/budget pair.

		An absent entry is reported as found=false, not as an error.
	*/
	Get(ctx context.Context, interest string, budget int) (gift string, found bool, err error)

	/*
		Set stores the gift text for the interest/budget pair with a TTL.
	*/
	Set(ctx context.Context, interest string, budget int, gift string, ttl time.Duration) error
}

// RedisSuggestionCache implements SuggestionCache on Redis.
type RedisSuggestionCache struct {
	client *redis.Client
}

// NewSuggestionCache creates a new Redis-backed SuggestionCache.
func NewSuggestionCache(client *redis.Client) *RedisSuggestionCache {
	return &RedisSuggestionCache{client: client}
}

// Get implements SuggestionCache.
func (cache *RedisSuggestionCache) Get(context context.Context, interest string, budget int) (string, bool, error) {
	gift, err := cache.client.Get(context, cacheKey(interest, budget)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_suggestion_get_failed: %w", err)
	}
	return gift, true, nil
}

// Set implements SuggestionCache.
func (cache *RedisSuggestionCache) Set(context context.Context, interest string, budget int, gift string, ttl time.Duration) error {
	if err := cache.client.Set(context, cacheKey(interest, budget), gift, ttl).Err(); err != nil {
		return fmt.Errorf("redis_suggestion_set_failed: %w", err)
	}
	return nil
}

// cacheKey derives a fixed-length key from the free-text interest, keeping
// arbitrary profile text out of the Redis keyspace.
func cacheKey(interest string, budget int) string {
	digest := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(interest)), budget)))
	return constants.RedisPrefixSuggestion + hex.EncodeToString(digest[:16])
}
