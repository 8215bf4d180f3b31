// Copyright (c) 2026 Giftwise. All rights reserved.

package sec

// Identity is the resolved result of authenticating a request.
//
// It is produced by the session authority after the presented access token has
// been verified, the deny-list consulted, and the backing account re-checked
// for the disabled flag. Downstream handlers read it from the request context.
type Identity struct {
	// AccountID is the UUID of the authenticated account.
	AccountID string

	// Email is the token subject — the account's immutable identifier.
	Email string

	// DisplayName is carried for logging and response convenience.
	DisplayName string

	// TokenID is the jti of the access token that produced this identity.
	// Needed by logout to place the token on the deny-list.
	TokenID string
}
