// Copyright (c) 2026 Giftwise. All rights reserved.

package exchange_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwise/giftwise/internal/gifts/exchange"
	"github.com/giftwise/giftwise/internal/platform/apperr"
)

// # Test Doubles

type stubStore struct {
	participants []string
	assignments  []*exchange.Assignment
	recipients   map[string]*exchange.Recipient
}

func (store *stubStore) ListParticipantIDs(_ context.Context) ([]string, error) {
	return store.participants, nil
}

func (store *stubStore) ReplaceAssignments(_ context.Context, assignments []*exchange.Assignment) error {
	store.assignments = assignments
	return nil
}

func (store *stubStore) FindRecipientForSender(_ context.Context, senderID string) (*exchange.Recipient, error) {
	recipient, found := store.recipients[senderID]
	if !found {
		return nil, exchange.ErrNotDrawn
	}
	return recipient, nil
}

func newExchangeService(store *stubStore) *exchange.Service {
	clock := func() time.Time { return time.Date(2026, 12, 10, 18, 0, 0, 0, time.UTC) }
	return exchange.NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)), clock)
}

// # Tests

/*
TestService_DrawProperties verifies the derangement invariants across a range
of group sizes: every participant gives exactly once, receives exactly once,
and never draws themselves.
*/
func TestService_DrawProperties(t *testing.T) {
	for _, groupSize := range []int{2, 3, 5, 16} {
		t.Run(fmt.Sprintf("group_of_%d", groupSize), func(t *testing.T) {
			participants := make([]string, groupSize)
			for i := range participants {
				participants[i] = fmt.Sprintf("participant-%02d", i)
			}

			store := &stubStore{participants: participants}
			service := newExchangeService(store)

			result, err := service.Draw(context.Background())
			require.NoError(t, err)
			assert.Equal(t, groupSize, result.Participants)
			require.Len(t, store.assignments, groupSize)

			senders := make(map[string]bool)
			recipients := make(map[string]bool)

			for _, assignment := range store.assignments {
				assert.NotEqual(t, assignment.SenderID, assignment.RecipientID, "self-assignment")
				assert.False(t, senders[assignment.SenderID], "duplicate sender")
				assert.False(t, recipients[assignment.RecipientID], "duplicate recipient")
				senders[assignment.SenderID] = true
				recipients[assignment.RecipientID] = true
				assert.NotEmpty(t, assignment.ID)
			}

			assert.Len(t, senders, groupSize)
			assert.Len(t, recipients, groupSize)
		})
	}
}

/*
TestService_DrawTooFewParticipants verifies groups below two are rejected and
nothing is written.
*/
func TestService_DrawTooFewParticipants(t *testing.T) {
	for _, participants := range [][]string{nil, {"only-one"}} {
		store := &stubStore{participants: participants}
		service := newExchangeService(store)

		_, err := service.Draw(context.Background())
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 422, ae.HTTPStatus)
		assert.Nil(t, store.assignments)
	}
}

/*
TestService_MyRecipient verifies lookup and the not-drawn mapping.
*/
func TestService_MyRecipient(t *testing.T) {
	store := &stubStore{
		recipients: map[string]*exchange.Recipient{
			"sender-1": {DisplayName: "Dana", GiftPreferences: "tea", Budget: 15},
		},
	}
	service := newExchangeService(store)

	recipient, err := service.MyRecipient(context.Background(), "sender-1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", recipient.DisplayName)

	_, err = service.MyRecipient(context.Background(), "sender-2")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 404, ae.HTTPStatus)
}
