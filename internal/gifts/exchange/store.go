// Copyright (c) 2026 Giftwise. All rights reserved.

package exchange

import "context"

// # Exchange Data Access

// Store defines the data access contract for the draw.
type Store interface {

	/*
		ListParticipantIDs returns the ids of every account eligible for the
		draw, i.e. all accounts that are not disabled.
	*/
	ListParticipantIDs(ctx context.Context) ([]string, error)

	/*
		ReplaceAssignments atomically discards any previous draw and persists
		the new assignment set. Either the whole draw lands or none of it.
	*/
	ReplaceAssignments(ctx context.Context, assignments []*Assignment) error

	/*
		FindRecipientForSender resolves the sender's giftee profile.

		Returns:
		  - *Recipient: Name, wishlist and shipping details of the giftee
		  - error: ErrNotDrawn if the sender has no assignment; storage
		    failures otherwise
	*/
	FindRecipientForSender(ctx context.Context, senderID string) (*Recipient, error)
}
