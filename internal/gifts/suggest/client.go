// Copyright (c) 2026 Giftwise. All rights reserved.

package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/giftwise/giftwise/internal/platform/apperr"
)

// # Upstream Contract

// SuggestionClient resolves an interest/budget pair into a gift idea.
//
// Defined as an interface so the service can be tested without network
// access and so the upstream vendor can be swapped behind one type.
type SuggestionClient interface {
	Suggest(ctx context.Context, interest string, budget int) (string, error)
}

// # HTTP Implementation

// HTTPSuggestionClient calls the external suggestion API over HTTPS.
//
// The upstream expects a JSON body of {"interest": ..., "budget": ...} with
// the budget serialized as a string, authorized by a bearer API key, and
// answers {"gift": ...}. When a translation endpoint is configured the gift
// text is additionally translated before being returned.
type HTTPSuggestionClient struct {
	httpClient *http.Client

	apiURL string
	apiKey string

	translateURL string
	targetLang   string
}

// NewHTTPSuggestionClient constructs the upstream client.
//
// # Parameters
//   - apiURL, apiKey: The suggestion API endpoint and its bearer key.
//   - translateURL: Optional translation endpoint; empty disables translation.
//   - targetLang: Language code for translation, e.g. "ru".
func NewHTTPSuggestionClient(apiURL, apiKey, translateURL, targetLang string) *HTTPSuggestionClient {
	return &HTTPSuggestionClient{
		httpClient:   &http.Client{Timeout: upstreamTimeout},
		apiURL:       apiURL,
		apiKey:       apiKey,
		translateURL: translateURL,
		targetLang:   targetLang,
	}
}

type suggestionRequest struct {
	Interest string `json:"interest"`
	Budget   string `json:"budget"`
}

type suggestionResponse struct {
	Gift string `json:"gift"`
}

/*
Suggest asks the upstream API for a gift idea.

Upstream failures surface as apperr.BadGateway so the transport layer renders
a 502 instead of blaming the client.
*/
func (client *HTTPSuggestionClient) Suggest(ctx context.Context, interest string, budget int) (string, error) {
	payload, err := json.Marshal(suggestionRequest{
		Interest: interest,
		Budget:   strconv.Itoa(budget),
	})
	if err != nil {
		return "", fmt.Errorf("suggest_client_marshal_failed: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("suggest_client_request_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+client.apiKey)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", apperr.BadGateway("Gift suggestion service is unavailable", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		return "", apperr.BadGateway(fmt.Sprintf("Gift suggestion service returned status %d", response.StatusCode), nil)
	}

	var body suggestionResponse
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil || body.Gift == "" {
		return "", apperr.BadGateway("Gift suggestion service returned an unreadable answer", err)
	}

	gift := body.Gift

	// Translation is best-effort: an untranslated suggestion is still a
	// suggestion.
	if client.translateURL != "" {
		if translated, err := client.translate(ctx, gift); err == nil {
			gift = translated
		}
	}

	return gift, nil
}

type translateRequest struct {
	Query  string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// translate converts the English suggestion into the configured language.
func (client *HTTPSuggestionClient) translate(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Query:  text,
		Source: "en",
		Target: client.targetLang,
	})
	if err != nil {
		return "", fmt.Errorf("suggest_translate_marshal_failed: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.translateURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("suggest_translate_request_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("suggest_translate_call_failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("suggest_translate_status_%d", response.StatusCode)
	}

	var body translateResponse
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil || body.TranslatedText == "" {
		return "", fmt.Errorf("suggest_translate_decode_failed: %w", err)
	}

	return body.TranslatedText, nil
}
