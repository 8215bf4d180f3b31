// Copyright (c) 2026 Giftwise. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/giftwise/giftwise/internal/platform/sec"
	"github.com/giftwise/giftwise/pkg/uuidv7"
)

// # Error Taxonomy
//
// The three credential failures are internally distinct for logging but must
// be collapsed to one externally observable message by the transport layer,
// so that responses never leak whether an email is registered.

var (
	// ErrAccountNotFound means no account exists for the email.
	ErrAccountNotFound = errors.New("auth: account not found")

	// ErrAccountDisabled means the account exists but is disabled.
	ErrAccountDisabled = errors.New("auth: account disabled")

	// ErrBadCredentials means the password did not match the stored hash.
	ErrBadCredentials = errors.New("auth: bad credentials")

	// ErrEmailTaken means registration collided with an existing email.
	ErrEmailTaken = errors.New("auth: email already registered")

	// ErrSessionRevoked means the token is valid but its id is on the deny-list.
	ErrSessionRevoked = errors.New("auth: session revoked")
)

// # Session Authority

// Service implements credential verification and the session state machine:
// Unauthenticated → Authenticated → AccessExpired(refresh valid) → Terminated.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	accounts AccountStore
	denyList DenyList
	codec    *sec.TokenCodec
	hasher   *sec.PasswordHasher
	now      func() time.Time
}

// NewService constructs the session authority with its dependencies.
//
// The clock is injected for testability; nil selects [time.Now].
func NewService(
	accounts AccountStore,
	denyList DenyList,
	codec *sec.TokenCodec,
	hasher *sec.PasswordHasher,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		accounts: accounts,
		denyList: denyList,
		codec:    codec,
		hasher:   hasher,
		now:      now,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new participant.
type RegisterInput struct {
	Email           string
	Password        string
	DisplayName     string
	GiftPreferences string
	Interests       string
	Budget          int
	Address         string
	IsStudent       bool
}

// SessionPair is the access/refresh token pair issued at login or
// registration. It has no persisted record — it exists only as values handed
// to the transport layer.
type SessionPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	Account          *Account
}

/*
Register validates, hashes, and persists a brand new account, then issues the
initial session pair.

The plaintext password is hashed before it touches storage; it is never
persisted or logged. A concurrent registration race on the same email is
resolved by the store's unique constraint, surfaced here as ErrEmailTaken.
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*SessionPair, error) {
	email := normalizeEmail(input.Email)

	// Pre-check for a friendlier conflict. The unique constraint remains the
	// authoritative guard against races.
	_, err := service.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, ErrAccountNotFound):
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := service.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	budget := input.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}

	// Time-sortable ID to prevent PG index fragmentation.
	account := &Account{
		ID:              uuidv7.New(),
		Email:           email,
		PasswordHash:    hashedPassword,
		DisplayName:     input.DisplayName,
		GiftPreferences: input.GiftPreferences,
		Interests:       input.Interests,
		Budget:          budget,
		Address:         input.Address,
		IsStudent:       input.IsStudent,
		Disabled:        false,
	}

	if err := service.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return service.issuePair(account)
}

// # Credential Verification

/*
Authenticate looks up the account and validates the presented password.

Failure modes, in gate order:
  - ErrAccountNotFound: no account for this email.
  - ErrAccountDisabled: account exists but is disabled.
  - ErrBadCredentials: password does not match the stored hash.
*/
func (service *Service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	account, err := service.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("auth_service_authenticate_lookup_failed: %w", err)
	}

	if account.Disabled {
		return nil, ErrAccountDisabled
	}

	if !service.hasher.Verify(ctx, password, account.PasswordHash) {
		return nil, ErrBadCredentials
	}

	return account, nil
}

// # Session Lifecycle

/*
Login verifies credentials and issues a fresh session pair, transitioning the
caller from Unauthenticated to Authenticated.
*/
func (service *Service) Login(ctx context.Context, email, password string) (*SessionPair, error) {
	account, err := service.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return service.issuePair(account)
}

/*
Refresh validates a refresh token and issues a new access token for the same
subject.

The refresh token itself is NOT rotated: the same refresh credential stays
valid until its natural expiry. The account is re-checked so that a disabled
participant cannot mint new access tokens from an old refresh token.
*/
func (service *Service) Refresh(ctx context.Context, refreshToken string) (string, *sec.SessionClaims, error) {
	claims, err := service.codec.Verify(refreshToken, sec.TokenRefresh)
	if err != nil {
		return "", nil, err
	}

	if err := service.checkDenyList(ctx, claims.ID); err != nil {
		return "", nil, err
	}

	account, err := service.accounts.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", nil, ErrAccountNotFound
		}
		return "", nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}
	if account.Disabled {
		return "", nil, ErrAccountDisabled
	}

	accessToken, accessClaims, err := service.codec.Issue(account.Email, account.ID, sec.TokenAccess)
	if err != nil {
		return "", nil, fmt.Errorf("auth_service_refresh_issue_failed: %w", err)
	}

	return accessToken, accessClaims, nil
}

/*
AuthenticateRequest validates a presented access token and resolves it to an
identity.

The account is resolved on every call so that the disabled flag is honored at
request time — a participant disabled mid-session is rejected even while
holding a cryptographically valid token.
*/
func (service *Service) AuthenticateRequest(ctx context.Context, accessToken string) (*sec.Identity, error) {
	claims, err := service.codec.Verify(accessToken, sec.TokenAccess)
	if err != nil {
		return nil, err
	}

	if err := service.checkDenyList(ctx, claims.ID); err != nil {
		return nil, err
	}

	account, err := service.accounts.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("auth_service_resolve_identity_failed: %w", err)
	}
	if account.Disabled {
		return nil, ErrAccountDisabled
	}

	return &sec.Identity{
		AccountID:   account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		TokenID:     claims.ID,
	}, nil
}

/*
Logout terminates the session represented by the presented tokens.

Tokens are stateless, so the transport layer clears the cookies; on top of
that, each still-valid token's jti is parked on the deny-list for its
remaining lifetime, closing the revocation gap. Invalid or already-expired
tokens are ignored — logout is idempotent.
*/
func (service *Service) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if err := service.revokeToken(ctx, accessToken, sec.TokenAccess); err != nil {
		return err
	}
	return service.revokeToken(ctx, refreshToken, sec.TokenRefresh)
}

// # Internals

// issuePair mints one access and one refresh token for the account.
func (service *Service) issuePair(account *Account) (*SessionPair, error) {
	accessToken, accessClaims, err := service.codec.Issue(account.Email, account.ID, sec.TokenAccess)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, refreshClaims, err := service.codec.Issue(account.Email, account.ID, sec.TokenRefresh)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &SessionPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessClaims.ExpiresAt.Time,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshClaims.ExpiresAt.Time,
		Account:          account,
	}, nil
}

// checkDenyList fails closed: a deny-list outage rejects the request rather
// than letting a possibly revoked token through.
func (service *Service) checkDenyList(ctx context.Context, tokenID string) error {
	revoked, err := service.denyList.IsRevoked(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("auth_service_denylist_check_failed: %w", err)
	}
	if revoked {
		return ErrSessionRevoked
	}
	return nil
}

// revokeToken deny-lists a single token for its remaining lifetime.
func (service *Service) revokeToken(ctx context.Context, token string, kind sec.TokenKind) error {
	if token == "" {
		return nil
	}

	claims, err := service.codec.Verify(token, kind)
	if err != nil {
		// Malformed or expired: nothing left to revoke.
		return nil
	}

	remaining := claims.ExpiresAt.Time.Sub(service.now())
	if remaining <= 0 {
		return nil
	}

	if err := service.denyList.Revoke(ctx, claims.ID, remaining); err != nil {
		return fmt.Errorf("auth_service_revoke_failed: %w", err)
	}
	return nil
}

// normalizeEmail canonicalizes the account identifier before any lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
