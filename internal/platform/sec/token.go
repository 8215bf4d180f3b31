// Copyright (c) 2026 Giftwise. All rights reserved.

package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/giftwise/giftwise/pkg/uuidv7"
)

// # Token Kinds

// TokenKind distinguishes the two credentials a session is built from.
type TokenKind string

const (
	// TokenAccess is the short-lived credential authorizing individual requests.
	TokenAccess TokenKind = "access"

	// TokenRefresh is the longer-lived credential used only to obtain new
	// access tokens.
	TokenRefresh TokenKind = "refresh"
)

// # Error Taxonomy

// TokenReason classifies why a token failed verification.
type TokenReason string

const (
	// TokenMalformed covers structural and signature failures.
	TokenMalformed TokenReason = "MALFORMED"

	// TokenExpired means the token parsed and its signature verified, but its
	// expiry has passed.
	TokenExpired TokenReason = "EXPIRED"

	// TokenWrongKind means a refresh token was presented where an access token
	// was expected, or vice versa.
	TokenWrongKind TokenReason = "WRONG_KIND"
)

// TokenError is the typed verification failure returned by [TokenCodec.Verify].
type TokenError struct {
	Reason TokenReason
	cause  error
}

// Error implements the error interface.
func (e *TokenError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("sec: token %s: %v", e.Reason, e.cause)
	}
	return fmt.Sprintf("sec: token %s", e.Reason)
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *TokenError) Unwrap() error { return e.cause }

// AsTokenError extracts the [*TokenError] from err's chain, or nil.
func AsTokenError(err error) *TokenError {
	var te *TokenError
	if errors.As(err, &te) {
		return te
	}
	return nil
}

// IsTokenExpired reports whether err is a TokenError with reason EXPIRED.
func IsTokenExpired(err error) bool {
	te := AsTokenError(err)
	return te != nil && te.Reason == TokenExpired
}

// # Claims

// SessionClaims is the payload embedded inside every Giftwise session token.
//
// The subject is the account's email — its immutable identifier. The account
// UUID rides along so that handlers can resolve storage rows without an extra
// email lookup. Claim names are abbreviated to keep the token compact.
type SessionClaims struct {
	jwt.RegisteredClaims

	Kind      string `json:"knd"`
	AccountID string `json:"uid"`
}

// # Token Codec

// TokenCodec signs and verifies compact, tamper-evident session tokens.
//
// Tokens are HS256 JWTs signed with a process-wide secret that is loaded once
// at startup and injected here — never read from ambient global state. The
// codec is stateless and safe for concurrent use.
type TokenCodec struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenCodec constructs a codec.
//
// # Parameters
//   - secret: The HMAC-SHA-256 signing key.
//   - issuer: The 'iss' claim stamped on every token.
//   - accessTTL / refreshTTL: Lifetimes per token kind.
//   - now: Clock source; nil selects [time.Now]. Injected for testability.
func NewTokenCodec(secret []byte, issuer string, accessTTL, refreshTTL time.Duration, now func() time.Time) *TokenCodec {
	if now == nil {
		now = time.Now
	}
	return &TokenCodec{
		secret:     secret,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
	}
}

// TTL returns the configured lifetime for the given token kind.
func (codec *TokenCodec) TTL(kind TokenKind) time.Duration {
	if kind == TokenRefresh {
		return codec.refreshTTL
	}
	return codec.accessTTL
}

// Issue creates a signed token of the given kind for the subject.
//
// Each token carries a UUIDv7 jti so the deny-list can target it individually.
// Returns the compact serialized token together with its claims.
func (codec *TokenCodec) Issue(subject, accountID string, kind TokenKind) (string, *SessionClaims, error) {
	currentTime := codec.now()

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(codec.TTL(kind))),
			ID:        uuidv7.New(),
		},
		Kind:      string(kind),
		AccountID: accountID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, claims, nil
}

// Verify checks the signature, expiry, and kind of a serialized token.
//
// The signature check happens before — and independently of — the expiry
// check, so a forged token can never be distinguished from an expired one by
// skipping signature work. Failures are typed:
//
//   - MALFORMED: structure or signature does not parse/verify.
//   - EXPIRED: signature valid, now >= expiresAt.
//   - WRONG_KIND: valid token of the other kind.
func (codec *TokenCodec) Verify(tokenString string, kind TokenKind) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return codec.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(codec.issuer),
		jwt.WithTimeFunc(codec.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &TokenError{Reason: TokenExpired, cause: err}
		}
		return nil, &TokenError{Reason: TokenMalformed, cause: err}
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, &TokenError{Reason: TokenMalformed}
	}

	if claims.Kind != string(kind) {
		return nil, &TokenError{Reason: TokenWrongKind}
	}

	return claims, nil
}
