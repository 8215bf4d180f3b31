// Copyright (c) 2026 Giftwise. All rights reserved.

/*
Package auth implements credential verification and token-based session
lifecycle management for the Giftwise platform.

It defines the core domain entity (Account) and the logic for registration,
login, token refresh, per-request authentication, and logout.

# Architecture

  - Service: Orchestrates the session state machine (login, refresh, logout).
  - AccountStore / DenyList: Abstracted interfaces for Postgres (accounts)
    and Redis (revoked token ids).
  - Security: Leverages bcrypt hashing and HMAC-signed JWTs from platform/sec.

Tokens are stateless: validity is a function of signature and expiry alone.
The Redis deny-list closes the revocation gap for logout and account deletion.
*/
package auth

import "time"

// # Domain Entities

// Account represents a registered Secret Santa participant.
//
// The email is immutable once created and serves as the token subject.
// The password hash is never exposed through JSON or logs.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string `json:"display_name"`

	// Gifting profile, consumed by the suggestion and exchange domains.
	GiftPreferences string `json:"gift_preferences"`
	Interests       string `json:"interests,omitempty"`
	Budget          int    `json:"budget"`
	Address         string `json:"address,omitempty"`
	IsStudent       bool   `json:"is_student"`

	// Disabled accounts keep their row but can no longer authenticate.
	Disabled bool `json:"disabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldGiftPreferences = "gift_preferences"
	FieldInterests       = "interests"
	FieldBudget          = "budget"
	FieldAddress         = "address"
	FieldIsStudent       = "is_student"
	FieldRefreshToken    = "refresh_token"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
)
