// Copyright (c) 2026 Giftwise. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/giftwise/giftwise/internal/platform/apperr"
	"github.com/giftwise/giftwise/internal/platform/constants"
	"github.com/giftwise/giftwise/internal/platform/ctxutil"
	"github.com/giftwise/giftwise/internal/platform/sec"
	"github.com/giftwise/giftwise/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns validate.ErrInvalidJSON if decoding fails.
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
BearerToken extracts the token from an 'Authorization: Bearer' header.

Returns an empty string when the header is absent or not bearer-shaped.
*/
func BearerToken(request *http.Request) string {
	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

/*
Identity extracts the authenticated identity from the request context.

Returns nil if the request is not authenticated.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated and returns the identity.

Returns:
  - *sec.Identity: The authenticated identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}

/*
RequiredAccountID returns the account UUID of the currently logged-in user.

Returns:
  - string: Account UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredAccountID(request *http.Request) (string, error) {
	identity, err := RequiredIdentity(request)
	if err != nil {
		return "", err
	}
	return identity.AccountID, nil
}
