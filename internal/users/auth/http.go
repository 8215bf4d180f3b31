// Copyright (c) 2026 Giftwise. All rights reserved.

package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/giftwise/giftwise/internal/platform/apperr"
	"github.com/giftwise/giftwise/internal/platform/constants"
	"github.com/giftwise/giftwise/internal/platform/ctxutil"
	"github.com/giftwise/giftwise/internal/platform/middleware"
	requestutil "github.com/giftwise/giftwise/internal/platform/request"
	"github.com/giftwise/giftwise/internal/platform/respond"
	"github.com/giftwise/giftwise/internal/platform/sec"
	"github.com/giftwise/giftwise/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// This layer is strictly responsible for transport concerns: status codes,
// cookies, JSON — and for collapsing the internal credential-failure taxonomy
// into a single client-visible message.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and opens a session.
//   - POST /login    : Authenticates and returns a token pair.
//   - POST /refresh  : Exchanges a refresh token for a new access token.
//   - POST /session  : Confirms the presented access token is still active.
//   - POST /logout   : Revokes and clears the session credentials.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/session", handler.session)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	DisplayName     string `json:"display_name"`
	GiftPreferences string `json:"gift_preferences"`
	Interests       string `json:"interests"`
	Budget          int    `json:"budget"`
	Address         string `json:"address"`
	IsStudent       bool   `json:"is_student"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

/*
Register handles the creation of a new participant account.

POST /api/v1/auth/register

Response:
  - 201: Session pair and created profile
  - 400: Bad input or validation failure
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Required(FieldDisplayName, input.DisplayName).
		MaxLen(FieldDisplayName, input.DisplayName, 100).
		Custom(FieldBudget, input.Budget < 0, "Must not be negative")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:           input.Email,
		Password:        input.Password,
		DisplayName:     input.DisplayName,
		GiftPreferences: input.GiftPreferences,
		Interests:       input.Interests,
		Budget:          input.Budget,
		Address:         input.Address,
		IsStudent:       input.IsStudent,
	})
	if err != nil {
		respond.Error(writer, request, handler.mapError(request, err))
		return
	}

	handler.setSessionCookies(writer, pair)

	respond.Created(writer, map[string]any{
		FieldAccessToken:  pair.AccessToken,
		FieldRefreshToken: pair.RefreshToken,
		FieldUser:         pair.Account,
	})
}

/*
Login authenticates a participant and establishes a session.

POST /api/v1/auth/login

All credential failures (unknown email, disabled account, wrong password)
produce the identical 401 body, preventing account enumeration.

Response:
  - 200: Session pair and profile
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, handler.mapError(request, err))
		return
	}

	handler.setSessionCookies(writer, pair)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  pair.AccessToken,
		FieldRefreshToken: pair.RefreshToken,
		FieldUser:         pair.Account,
	})
}

/*
Refresh issues a new access token using a valid refresh token.

POST /api/v1/auth/refresh

The refresh token is read from the request body, falling back to the
refresh_token cookie. The refresh token itself is not rotated.

Response:
  - 200: New access token credentials
  - 401: Missing, invalid, or expired refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	refreshToken := handler.presentedRefreshToken(request)
	if refreshToken == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token"))
		return
	}

	accessToken, claims, err := handler.authService.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, handler.mapError(request, err))
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    accessToken,
		Path:     constants.AccessTokenCookiePath,
		Expires:  claims.ExpiresAt.Time,
		MaxAge:   int(AccessTokenTTL / time.Second),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.OK(writer, map[string]any{
		FieldAccessToken: accessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int64(AccessTokenTTL / time.Second),
	})
}

/*
Session confirms that the presented access token is still active.

POST /api/v1/auth/session

Reaching the handler at all means the token survived signature, expiry,
deny-list, and disabled-account checks in the middleware.

Response:
  - 200: Session is active
  - 401: Authentication required
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())

	respond.OK(writer, map[string]string{
		FieldMessage: "Session is active",
		FieldEmail:   identity.Email,
	})
}

/*
Logout terminates the current session.

POST /api/v1/auth/logout

The session cookies are cleared and each presented token's jti is placed on
the deny-list for its remaining lifetime. Logout is idempotent: expired or
absent tokens are silently skipped.

Response:
  - 204: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	accessToken := requestutil.BearerToken(request)
	if accessToken == "" {
		if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil {
			accessToken = cookie.Value
		}
	}
	refreshToken := handler.presentedRefreshToken(request)

	if err := handler.authService.Logout(request.Context(), accessToken, refreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookies(writer)
	respond.NoContent(writer)
}

// # Transport Helpers

// setSessionCookies installs both HttpOnly session cookies with Max-Age equal
// to each token's TTL.
func (handler *Handler) setSessionCookies(writer http.ResponseWriter, pair *SessionPair) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    pair.AccessToken,
		Path:     constants.AccessTokenCookiePath,
		Expires:  pair.AccessExpiresAt,
		MaxAge:   int(AccessTokenTTL / time.Second),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    pair.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  pair.RefreshExpiresAt,
		MaxAge:   int(RefreshTokenTTL / time.Second),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookies expires both session cookies on the client.
func (handler *Handler) clearSessionCookies(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    "",
		Path:     constants.AccessTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// presentedRefreshToken reads the refresh token from the JSON body, falling
// back to the scoped cookie.
func (handler *Handler) presentedRefreshToken(request *http.Request) string {
	var body refreshRequest
	if err := requestutil.DecodeJSON(request, &body); err == nil && body.RefreshToken != "" {
		return body.RefreshToken
	}

	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// mapError converts domain failures into client-safe transport errors.
//
// The three credential failures are internally distinct — they are logged
// with their real reason — but share one externally observable 401 message.
func (handler *Handler) mapError(request *http.Request, err error) error {
	logger := ctxutil.GetLogger(request.Context())

	switch {
	case errors.Is(err, ErrEmailTaken):
		return apperr.Conflict("Email is already registered")

	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrAccountDisabled),
		errors.Is(err, ErrBadCredentials):
		logger.WarnContext(request.Context(), "credentials_rejected",
			slog.String("reason", err.Error()),
		)
		return apperr.Unauthorized("Invalid email or password")

	case errors.Is(err, ErrSessionRevoked):
		logger.WarnContext(request.Context(), "revoked_token_presented")
		return apperr.Unauthorized("Invalid or expired token")
	}

	if te := sec.AsTokenError(err); te != nil {
		logger.WarnContext(request.Context(), "token_rejected",
			slog.String("reason", string(te.Reason)),
		)
		return apperr.Unauthorized("Invalid or expired token")
	}

	return err
}
