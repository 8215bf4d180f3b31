// Copyright (c) 2026 Giftwise. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # Account Data Access

// AccountStore defines the data access contract for participant accounts.
//
// The store owns the records: the core never caches an Account beyond a
// single verification/resolution call, avoiding staleness.
type AccountStore interface {

	/*
		FindByEmail returns the account with the given email.

		Returns:
		  - *Account: Hydrated entity
		  - error: ErrAccountNotFound if no row matches; storage failures otherwise
	*/
	FindByEmail(ctx context.Context, email string) (*Account, error)

	/*
		FindByID returns the account with the given UUID.

		Returns:
		  - *Account: Hydrated entity
		  - error: ErrAccountNotFound if no row matches; storage failures otherwise
	*/
	FindByID(ctx context.Context, id string) (*Account, error)

	/*
		Create persists a brand-new account.

		A Postgres unique violation on the email column is reported as
		ErrEmailTaken so concurrent registrations stay race-safe.
	*/
	Create(ctx context.Context, account *Account) error

	/*
		UpdateProfile persists changes to the mutable profile fields.

		The email and password hash are never touched by this operation.
	*/
	UpdateProfile(ctx context.Context, account *Account) error

	/*
		Delete permanently removes the account row.

		Deleting an absent account is not an error (idempotent).
	*/
	Delete(ctx context.Context, id string) error
}

// # Revocation Data Access

// DenyList defines the contract for the revoked-token set.
//
// Tokens are stateless, so logout and account deletion cannot make an issued
// token expire early on their own. Revoked jti values are parked here, with a
// TTL equal to the token's remaining lifetime, and consulted on every
// verification.
type DenyList interface {

	/*
		Revoke marks the token id as revoked for the given duration.
	*/
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	/*
		IsRevoked reports whether the token id is currently revoked.

		Storage failures are surfaced, not swallowed: verification fails
		closed when the deny-list cannot be consulted.
	*/
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
