// Copyright (c) 2026 Giftwise. All rights reserved.

package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewStore creates a new PostgreSQL-backed exchange [Store].
func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
ListParticipantIDs implements Store.

Description: Selects every enabled account id, ordered for deterministic
iteration (the draw itself shuffles).
*/
func (store *PostgresStore) ListParticipantIDs(context context.Context) ([]string, error) {
	query := `
		SELECT id FROM users.account
		WHERE disabled = FALSE
		ORDER BY createdat
	`

	rows, err := store.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list participants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan participant id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: participant iteration failed: %w", err)
	}

	return ids, nil
}

/*
ReplaceAssignments implements Store.

Description: Runs DELETE + batch INSERT inside one transaction so the table
always holds either the previous complete draw or the new one, never a mix.
The schema's UNIQUE constraints on sender and recipient reject any defective
assignment set before it can land.
*/
func (store *PostgresStore) ReplaceAssignments(context context.Context, assignments []*Assignment) error {

	// Establish an isolated database transaction to safely execute multiple
	// interrelated queries.
	transaction, err := store.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}

	// Ensures that uncommitted network handles are safely reclaimed if
	// application logic panics.
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context, `DELETE FROM gifts.assignment`); err != nil {
		return fmt.Errorf("postgres: failed to clear previous draw: %w", err)
	}

	batch := &pgx.Batch{}
	for _, assignment := range assignments {
		batch.Queue(
			`INSERT INTO gifts.assignment (id, sender, recipient, createdat) VALUES ($1, $2, $3, $4)`,
			assignment.ID,
			assignment.SenderID,
			assignment.RecipientID,
			assignment.CreatedAt,
		)
	}

	results := transaction.SendBatch(context, batch)
	for range assignments {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("postgres: failed to insert assignment: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("postgres: failed to close assignment batch: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit draw transaction: %w", err)
	}

	return nil
}

/*
FindRecipientForSender implements Store.

Description: Joins the assignment edge onto the recipient's account row and
projects only the fields a sender is allowed to see.
*/
func (store *PostgresStore) FindRecipientForSender(context context.Context, senderID string) (*Recipient, error) {
	query := `
		SELECT a.displayname, a.giftpreferences, a.interests, a.budget, a.address
		FROM gifts.assignment g
		JOIN users.account a ON a.id = g.recipient
		WHERE g.sender = $1
	`

	recipient := &Recipient{}
	err := store.pool.QueryRow(context, query, senderID).Scan(
		&recipient.DisplayName,
		&recipient.GiftPreferences,
		&recipient.Interests,
		&recipient.Budget,
		&recipient.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotDrawn
		}
		return nil, fmt.Errorf("postgres: failed to resolve recipient: %w", err)
	}

	return recipient, nil
}
