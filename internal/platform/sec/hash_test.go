// Copyright (c) 2026 Giftwise. All rights reserved.

package sec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwise/giftwise/internal/platform/sec"
)

// Cost 4 is bcrypt's minimum; production cost would make the suite crawl.
func newTestHasher() *sec.PasswordHasher {
	return sec.NewPasswordHasher(4, 2)
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := newTestHasher()
	ctx := context.Background()

	hash, err := hasher.Hash(ctx, "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, hasher.Verify(ctx, "pw123", hash))
	assert.False(t, hasher.Verify(ctx, "pw124", hash))
}

func TestPasswordHasher_SaltedOutputsDiffer(t *testing.T) {
	hasher := newTestHasher()
	ctx := context.Background()

	first, err := hasher.Hash(ctx, "pw123")
	require.NoError(t, err)
	second, err := hasher.Hash(ctx, "pw123")
	require.NoError(t, err)

	// The internal random salt makes the outputs distinct, yet both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify(ctx, "pw123", first))
	assert.True(t, hasher.Verify(ctx, "pw123", second))
}

func TestPasswordHasher_MalformedHashVerifiesFalse(t *testing.T) {
	hasher := newTestHasher()
	ctx := context.Background()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plaintext", "pw123"},
		{"truncated_bcrypt", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, hasher.Verify(ctx, "pw123", tt.hash))
		})
	}
}

func TestPasswordHasher_CanceledContext(t *testing.T) {
	hasher := newTestHasher()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := hasher.Hash(ctx, "pw123")
	assert.Error(t, err)
	assert.False(t, hasher.Verify(ctx, "pw123", "$2a$04$whatever"))
}
