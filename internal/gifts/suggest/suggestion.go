// Copyright (c) 2026 Giftwise. All rights reserved.

/*
Package suggest produces personalized gift ideas for participants.

The heavy lifting is delegated to a third-party suggestion API; this package
owns the account-to-request mapping, a Redis response cache, and the optional
translation of suggestions into the participant's language.
*/
package suggest

import "time"

// Upstream and cache tuning.
const (
	// SuggestionCacheTTL bounds how long an upstream answer is reused for
	// the same interest/budget combination.
	SuggestionCacheTTL = 6 * time.Hour

	// upstreamTimeout caps a single round-trip to the suggestion API.
	upstreamTimeout = 15 * time.Second
)

// Suggestion is a single gift idea resolved for a participant.
type Suggestion struct {
	Gift     string `json:"gift"`
	Interest string `json:"interest"`
	Budget   int    `json:"budget"`

	// Cached reports whether the idea was served from the cache instead of
	// the upstream API.
	Cached bool `json:"cached"`
}
