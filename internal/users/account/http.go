// Copyright (c) 2026 Giftwise. All rights reserved.

/*
Package account provides the HTTP delivery layer for participant profiles.

It implements the RESTful interface for participants to read and edit their
gift preferences, budget, and shipping details, and to leave the platform.

# Security

All endpoints in this package require an active authentication session
provided by the RequireAuth middleware.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giftwise/giftwise/internal/platform/constants"
	requestutil "github.com/giftwise/giftwise/internal/platform/request"
	"github.com/giftwise/giftwise/internal/platform/respond"
	"github.com/giftwise/giftwise/internal/platform/validate"
)

// Handler implements the HTTP layer for profile management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's
// endpoints. The router is mounted at /api/v1/me by the server.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getMe)
	router.Patch("/", handler.updateMe)
	router.Delete("/", handler.deleteMe)

	return router
}

// # Profile Endpoints

/*
GET /api/v1/me.

Description: Retrieves the full private profile of the authenticated
participant.

Response:
  - 200: Account: Fully hydrated profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.GetProfile(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	DisplayName     *string `json:"display_name"`
	GiftPreferences *string `json:"gift_preferences"`
	Interests       *string `json:"interests"`
	Budget          *int    `json:"budget"`
	Address         *string `json:"address"`
	IsStudent       *bool   `json:"is_student"`
}

/*
PATCH /api/v1/me.

Description: Applies partial updates to the authenticated participant's
profile. Absent fields are left unchanged.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: Account: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.DisplayName != nil {
		v.MinLen("display_name", *input.DisplayName, 2).MaxLen("display_name", *input.DisplayName, 100)
	}
	if input.GiftPreferences != nil {
		v.MaxLen("gift_preferences", *input.GiftPreferences, 500)
	}
	if input.Interests != nil {
		v.MaxLen("interests", *input.Interests, 500)
	}
	if input.Budget != nil {
		v.Range("budget", *input.Budget, 1, 10000)
	}
	if input.Address != nil {
		v.MaxLen("address", *input.Address, 300)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.UpdateProfile(request.Context(), accountID, UpdateProfileInput{
		DisplayName:     input.DisplayName,
		GiftPreferences: input.GiftPreferences,
		Interests:       input.Interests,
		Budget:          input.Budget,
		Address:         input.Address,
		IsStudent:       input.IsStudent,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
DELETE /api/v1/me.

Description: Permanently deletes the authenticated participant's account and
revokes the presented session credentials.

Response:
  - 204: No Content: Account deleted successfully
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	accessToken := requestutil.BearerToken(request)
	if accessToken == "" {
		if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil {
			accessToken = cookie.Value
		}
	}

	refreshToken := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if err := handler.accountService.DeleteAccount(request.Context(), accountID, accessToken, refreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
