// Copyright (c) 2026 Giftwise. All rights reserved.

package suggest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwise/giftwise/internal/gifts/suggest"
	"github.com/giftwise/giftwise/internal/platform/apperr"
)

/*
TestHTTPSuggestionClient_Suggest verifies the wire format: bearer key, JSON
body with the budget serialized as a string, and the {"gift": ...} answer.
*/
func TestHTTPSuggestionClient_Suggest(t *testing.T) {
	var captured struct {
		authorization string
		body          map[string]string
	}

	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		captured.authorization = request.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(request.Body).Decode(&captured.body))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]string{"gift": "a chess set"})
	}))
	defer upstream.Close()

	client := suggest.NewHTTPSuggestionClient(upstream.URL, "sk-test-key", "", "ru")

	gift, err := client.Suggest(context.Background(), "strategy games", 25)
	require.NoError(t, err)

	assert.Equal(t, "a chess set", gift)
	assert.Equal(t, "Bearer sk-test-key", captured.authorization)
	assert.Equal(t, "strategy games", captured.body["interest"])
	assert.Equal(t, "25", captured.body["budget"])
}

/*
TestHTTPSuggestionClient_Translation verifies the translated text replaces
the English suggestion when a translation endpoint is configured, and that a
broken translator falls back to the original text.
*/
func TestHTTPSuggestionClient_Translation(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(writer).Encode(map[string]string{"gift": "a chess set"})
	}))
	defer upstream.Close()

	t.Run("translated", func(t *testing.T) {
		translator := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "a chess set", body["q"])
			assert.Equal(t, "en", body["source"])
			assert.Equal(t, "ru", body["target"])

			_ = json.NewEncoder(writer).Encode(map[string]string{"translatedText": "шахматный набор"})
		}))
		defer translator.Close()

		client := suggest.NewHTTPSuggestionClient(upstream.URL, "sk-test-key", translator.URL, "ru")

		gift, err := client.Suggest(context.Background(), "strategy games", 25)
		require.NoError(t, err)
		assert.Equal(t, "шахматный набор", gift)
	})

	t.Run("translator_down_falls_back", func(t *testing.T) {
		translator := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer translator.Close()

		client := suggest.NewHTTPSuggestionClient(upstream.URL, "sk-test-key", translator.URL, "ru")

		gift, err := client.Suggest(context.Background(), "strategy games", 25)
		require.NoError(t, err)
		assert.Equal(t, "a chess set", gift)
	})
}

/*
TestHTTPSuggestionClient_UpstreamErrors verifies error answers map to 502.
*/
func TestHTTPSuggestionClient_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http_500", func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
		}},
		{"empty_gift", func(writer http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]string{"gift": ""})
		}},
		{"garbage_body", func(writer http.ResponseWriter, _ *http.Request) {
			_, _ = writer.Write([]byte("not json"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(tt.handler)
			defer upstream.Close()

			client := suggest.NewHTTPSuggestionClient(upstream.URL, "sk-test-key", "", "ru")

			_, err := client.Suggest(context.Background(), "anything", 10)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, http.StatusBadGateway, ae.HTTPStatus)
		})
	}
}
