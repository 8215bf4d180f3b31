// Copyright (c) 2026 Giftwise. All rights reserved.

package suggest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/giftwise/giftwise/internal/platform/request"
	"github.com/giftwise/giftwise/internal/platform/respond"
)

// Handler implements the HTTP layer for gift suggestions.
type Handler struct {
	suggestService *Service
}

// NewHandler constructs a new suggestion [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{suggestService: service}
}

// Routes returns a [chi.Router] configured with the suggestion endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.suggest)

	return router
}

/*
POST /api/v1/suggest.

Description: Returns a gift idea derived from the authenticated participant's
stored preferences and budget. No request body is required.

Response:
  - 200: Suggestion: The resolved gift idea
  - 401: ErrUnauthorized: Authentication required
  - 422: ErrUnprocessable: Profile has no usable preferences
  - 502: ErrBadGateway: Upstream suggestion service failed
*/
func (handler *Handler) suggest(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	suggestion, err := handler.suggestService.Suggest(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suggestion)
}
