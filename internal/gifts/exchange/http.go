// Copyright (c) 2026 Giftwise. All rights reserved.

package exchange

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/giftwise/giftwise/internal/platform/request"
	"github.com/giftwise/giftwise/internal/platform/respond"
)

// Handler implements the HTTP layer for the draw.
type Handler struct {
	exchangeService *Service
}

// NewHandler constructs a new exchange [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{exchangeService: service}
}

// Routes returns a [chi.Router] configured with the exchange endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/draw", handler.draw)
	router.Get("/me", handler.myRecipient)

	return router
}

/*
POST /api/v1/exchange/draw.

Description: Runs the Secret Santa draw across all active participants,
replacing any previous draw.

Response:
  - 200: DrawResult: Participant count and timestamp
  - 401: ErrUnauthorized: Authentication required
  - 422: ErrUnprocessable: Fewer than two participants
*/
func (handler *Handler) draw(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredAccountID(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.exchangeService.Draw(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/exchange/me.

Description: Reveals who the authenticated participant is gifting to,
including the giftee's wishlist and shipping address.

Response:
  - 200: Recipient: The giftee's details
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: No assignment for this participant
*/
func (handler *Handler) myRecipient(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipient, err := handler.exchangeService.MyRecipient(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, recipient)
}
