// Copyright (c) 2026 Giftwise. All rights reserved.

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwise/giftwise/internal/platform/ctxutil"
	"github.com/giftwise/giftwise/internal/platform/sec"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestLogger_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Equal(t, custom, ctxutil.GetLogger(ctx))
}

func TestIdentity_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetIdentity(ctx))

	identity := &sec.Identity{
		AccountID: "01936b2e-0000-7000-8000-000000000001",
		Email:     "alice@example.com",
	}
	ctx = ctxutil.WithIdentity(ctx, identity)

	got := ctxutil.GetIdentity(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "alice@example.com", got.Email)
}
