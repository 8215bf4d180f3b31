// Copyright (c) 2026 Giftwise. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwise/giftwise/internal/platform/sec"
)

const (
	testIssuer     = "giftwise.test"
	testAccessTTL  = 15 * time.Minute
	testRefreshTTL = 7 * 24 * time.Hour
)

// fakeClock is a mutable clock for deterministic expiry tests.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestCodec(clock *fakeClock) *sec.TokenCodec {
	return sec.NewTokenCodec(
		[]byte("unit-test-secret-key"),
		testIssuer,
		testAccessTTL,
		testRefreshTTL,
		clock.Now,
	)
}

func TestTokenCodec_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	token, claims, err := codec.Issue("alice@example.com", "acc-1", sec.TokenAccess)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, claims.ID, "every token must carry a jti")

	verified, err := codec.Verify(token, sec.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", verified.Subject)
	assert.Equal(t, "acc-1", verified.AccountID)
	assert.Equal(t, string(sec.TokenAccess), verified.Kind)
}

func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	token, _, err := codec.Issue("alice@example.com", "acc-1", sec.TokenAccess)
	require.NoError(t, err)

	// One second before expiry: still valid.
	clock.Advance(testAccessTTL - time.Second)
	_, err = codec.Verify(token, sec.TokenAccess)
	assert.NoError(t, err)

	// Exactly at expiry (now == expiresAt): expired.
	clock.Advance(time.Second)
	_, err = codec.Verify(token, sec.TokenAccess)
	require.Error(t, err)
	assert.True(t, sec.IsTokenExpired(err))
}

func TestTokenCodec_KindSeparation(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	accessToken, _, err := codec.Issue("alice@example.com", "acc-1", sec.TokenAccess)
	require.NoError(t, err)
	refreshToken, _, err := codec.Issue("alice@example.com", "acc-1", sec.TokenRefresh)
	require.NoError(t, err)

	// A refresh token never validates as an access token, and vice versa.
	_, err = codec.Verify(refreshToken, sec.TokenAccess)
	te := sec.AsTokenError(err)
	require.NotNil(t, te)
	assert.Equal(t, sec.TokenWrongKind, te.Reason)

	_, err = codec.Verify(accessToken, sec.TokenRefresh)
	te = sec.AsTokenError(err)
	require.NotNil(t, te)
	assert.Equal(t, sec.TokenWrongKind, te.Reason)
}

func TestTokenCodec_RefreshOutlivesAccess(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	refreshToken, _, err := codec.Issue("alice@example.com", "acc-1", sec.TokenRefresh)
	require.NoError(t, err)

	// Far past the access TTL the refresh token must remain valid.
	clock.Advance(24 * time.Hour)
	_, err = codec.Verify(refreshToken, sec.TokenRefresh)
	assert.NoError(t, err)

	clock.Advance(testRefreshTTL)
	_, err = codec.Verify(refreshToken, sec.TokenRefresh)
	assert.True(t, sec.IsTokenExpired(err))
}

func TestTokenCodec_Malformed(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ4In0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.token, sec.TokenAccess)
			te := sec.AsTokenError(err)
			require.NotNil(t, te)
			assert.Equal(t, sec.TokenMalformed, te.Reason)
		})
	}
}

func TestTokenCodec_ForeignSignatureIsMalformed(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	forger := sec.NewTokenCodec([]byte("some-other-secret"), testIssuer, testAccessTTL, testRefreshTTL, clock.Now)
	forged, _, err := forger.Issue("alice@example.com", "acc-1", sec.TokenAccess)
	require.NoError(t, err)

	_, err = codec.Verify(forged, sec.TokenAccess)
	te := sec.AsTokenError(err)
	require.NotNil(t, te)
	assert.Equal(t, sec.TokenMalformed, te.Reason)
}
