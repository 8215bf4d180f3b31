// Copyright (c) 2026 Giftwise. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration an access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh token remains valid.
	// A week balances re-login friction against exposure of the credential.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// HashingConcurrency caps simultaneous bcrypt operations so that
	// registration or login bursts do not serialize unrelated requests.
	HashingConcurrency = 4

	// MinPasswordLength is enforced at registration and never relaxed.
	MinPasswordLength = 8

	// DefaultBudget mirrors the historical default when a participant
	// registers without naming one.
	DefaultBudget = 10
)
