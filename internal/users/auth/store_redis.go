// Copyright (c) 2026 Giftwise. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/giftwise/giftwise/internal/platform/constants"
)

// # Deny-List Repository

// RedisDenyList implements the DenyList interface using Redis.
//
// Entries expire on their own: each revoked jti is stored with a TTL equal to
// the token's remaining lifetime, so the set never outgrows the number of
// live-but-revoked tokens.
type RedisDenyList struct {
	client *redis.Client
}

// NewDenyList creates a new Redis-backed DenyList.
func NewDenyList(client *redis.Client) *RedisDenyList {
	return &RedisDenyList{client: client}
}

/*
Revoke marks the token id as revoked until its natural expiry.
*/
func (store *RedisDenyList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := constants.RedisPrefixDenyList + tokenID

	if err := store.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_denylist_revoke_failed: %w", err)
	}

	return nil
}

/*
IsRevoked reports whether the token id is on the deny-list.

A missing key means the token was never revoked (or its revocation entry has
already expired together with the token itself).
*/
func (store *RedisDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := constants.RedisPrefixDenyList + tokenID

	if err := store.client.Get(ctx, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_denylist_check_failed: %w", err)
	}

	return true, nil
}
