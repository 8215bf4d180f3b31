// Copyright (c) 2026 Giftwise. All rights reserved.

package exchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/giftwise/giftwise/internal/platform/apperr"
	"github.com/giftwise/giftwise/pkg/uuidv7"
)

// ErrNotDrawn means the participant has no assignment, either because no
// draw has happened yet or because they joined after the last one.
var ErrNotDrawn = errors.New("exchange: no assignment for participant")

// # Service Layer

// Service orchestrates the Secret Santa draw.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service]. The clock is injected for
// testability; nil selects [time.Now].
func NewService(store Store, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, logger: logger, now: now}
}

/*
Draw assigns every active participant a recipient.

Description: Shuffles the participants and closes them into a single cycle,
so everyone gives exactly one gift, receives exactly one gift, and nobody
draws themselves. Re-drawing replaces the previous assignment set atomically.

Parameters:
  - context: context.Context

Returns:
  - *DrawResult: Participant count and draw timestamp
  - error: apperr.Unprocessable with fewer than two participants; storage
    failures otherwise
*/
func (service *Service) Draw(context context.Context) (*DrawResult, error) {
	participants, err := service.store.ListParticipantIDs(context)
	if err != nil {
		return nil, fmt.Errorf("exchange_service_list_failed: %w", err)
	}

	// A single participant cannot gift themselves; the cycle needs at
	// least two nodes.
	if len(participants) < 2 {
		return nil, apperr.Unprocessable("At least two participants are required for a draw")
	}

	rand.Shuffle(len(participants), func(i, j int) {
		participants[i], participants[j] = participants[j], participants[i]
	})

	drawnAt := service.now()
	assignments := make([]*Assignment, len(participants))
	for i, senderID := range participants {
		assignments[i] = &Assignment{
			ID:          uuidv7.New(),
			SenderID:    senderID,
			RecipientID: participants[(i+1)%len(participants)],
			CreatedAt:   drawnAt,
		}
	}

	if err := service.store.ReplaceAssignments(context, assignments); err != nil {
		return nil, fmt.Errorf("exchange_service_replace_failed: %w", err)
	}

	service.logger.Info("exchange_draw_completed",
		slog.Int("participants", len(participants)),
	)

	return &DrawResult{Participants: len(participants), DrawnAt: drawnAt}, nil
}

/*
MyRecipient resolves who the authenticated participant is gifting to.

Parameters:
  - context: context.Context
  - senderID: string

Returns:
  - *Recipient: The giftee's wishlist and shipping details
  - error: apperr.NotFound when the participant has no assignment
*/
func (service *Service) MyRecipient(context context.Context, senderID string) (*Recipient, error) {
	recipient, err := service.store.FindRecipientForSender(context, senderID)
	if err != nil {
		if errors.Is(err, ErrNotDrawn) {
			return nil, apperr.NotFound("Gift assignment")
		}
		return nil, fmt.Errorf("exchange_service_recipient_failed: %w", err)
	}
	return recipient, nil
}
