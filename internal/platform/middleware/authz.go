// Copyright (c) 2026 Giftwise. All rights reserved.

package middleware

import (
	"context"
	"net/http"

	"github.com/giftwise/giftwise/internal/platform/apperr"
	"github.com/giftwise/giftwise/internal/platform/constants"
	"github.com/giftwise/giftwise/internal/platform/ctxutil"
	requestutil "github.com/giftwise/giftwise/internal/platform/request"
	"github.com/giftwise/giftwise/internal/platform/respond"
	"github.com/giftwise/giftwise/internal/platform/sec"
)

// RequestAuthenticator resolves an access token into a live caller identity.
//
// # Why an interface?
//
// Defining RequestAuthenticator here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject mocks during unit
// testing. The implementation is expected to re-check the account state on
// every call, so a disabled or deleted account is rejected even while its
// token is still cryptographically valid.
type RequestAuthenticator interface {
	AuthenticateRequest(ctx context.Context, tokenStr string) (*sec.Identity, error)
}

// Authenticate extracts and verifies the session token from the request.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. Fall back to the access token cookie (browser clients).
//  3. If neither is present, the request proceeds as anonymous.
//  4. If present, resolve the token via [RequestAuthenticator].
//  5. Inject [*sec.Identity] into the request context for downstream use.
//
// # Parameters
//   - authenticator: The RequestAuthenticator instance.
//
// # Returns
//   - An [http.Handler] middleware.
func Authenticate(authenticator RequestAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			tokenStr := requestutil.BearerToken(request)
			if tokenStr == "" {
				if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil {
					tokenStr = cookie.Value
				}
			}

			// ── 2. Anonymous Access ───────────────────────────────────────────
			if tokenStr == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			identity, err := authenticator.AuthenticateRequest(request.Context(), tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
