// Copyright (c) 2026 Giftwise. All rights reserved.

/*
Package exchange implements the Secret Santa draw.

A draw assigns every active participant exactly one recipient and exactly one
sender, with nobody gifting themselves. Assignments are secret: a participant
can look up only who they are gifting to, never who gifts to them.
*/
package exchange

import "time"

// Assignment is one sender→recipient edge of a completed draw.
type Assignment struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Recipient is the profile subset a sender is shown about their giftee.
//
// The email is deliberately absent: the sender ships a gift, they don't
// contact the recipient.
type Recipient struct {
	DisplayName     string `json:"display_name"`
	GiftPreferences string `json:"gift_preferences"`
	Interests       string `json:"interests"`
	Budget          int    `json:"budget"`
	Address         string `json:"address"`
}

// DrawResult summarizes a completed draw for the caller.
type DrawResult struct {
	Participants int       `json:"participants"`
	DrawnAt      time.Time `json:"drawn_at"`
}
