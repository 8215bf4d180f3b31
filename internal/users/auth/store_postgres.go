// Copyright (c) 2026 Giftwise. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giftwise/giftwise/internal/platform/dberr"
)

// # Account Repository

// PostgresAccountStore implements the AccountStore interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to the
// domain sentinels so the service layer never sees driver details.
type PostgresAccountStore struct {
	pool *pgxpool.Pool
}

// NewAccountStore creates a new PostgreSQL implementation of AccountStore.
func NewAccountStore(pool *pgxpool.Pool) *PostgresAccountStore {
	return &PostgresAccountStore{pool: pool}
}

const accountColumns = `
	id, email, passwordhash, displayname, giftpreferences, interests,
	budget, address, isstudent, disabled, createdat, updatedat`

/*
Create persists a new account row into users.account.

A unique violation on the email column is reported as ErrEmailTaken: two
concurrent registrations both pass the service pre-check, and the database
constraint decides the winner.
*/
func (store *PostgresAccountStore) Create(ctx context.Context, account *Account) error {
	const query = `
		INSERT INTO users.account (
			id, email, passwordhash, displayname, giftpreferences, interests,
			budget, address, isstudent, disabled, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	_, err := store.pool.Exec(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.DisplayName,
		account.GiftPreferences,
		account.Interests,
		account.Budget,
		account.Address,
		account.IsStudent,
		account.Disabled,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("postgres_account_store_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves an account by its unique email address.

Returns ErrAccountNotFound when no row matches.
*/
func (store *PostgresAccountStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	const query = `
		SELECT` + accountColumns + `
		FROM users.account
		WHERE email = $1`

	account, err := store.scanOne(store.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("postgres_account_store_find_by_email_failed: %w", err)
	}

	return account, nil
}

/*
FindByID retrieves an account by its primary key.

Returns ErrAccountNotFound when no row matches.
*/
func (store *PostgresAccountStore) FindByID(ctx context.Context, id string) (*Account, error) {
	const query = `
		SELECT` + accountColumns + `
		FROM users.account
		WHERE id = $1`

	account, err := store.scanOne(store.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("postgres_account_store_find_by_id_failed: %w", err)
	}

	return account, nil
}

/*
UpdateProfile persists the mutable profile fields.

Email and password hash are deliberately excluded: the email is immutable and
password changes travel through a dedicated path.
*/
func (store *PostgresAccountStore) UpdateProfile(ctx context.Context, account *Account) error {
	const query = `
		UPDATE users.account
		SET displayname = $2, giftpreferences = $3, interests = $4,
		    budget = $5, address = $6, isstudent = $7, updatedat = $8
		WHERE id = $1`

	account.UpdatedAt = time.Now()
	_, err := store.pool.Exec(ctx, query,
		account.ID,
		account.DisplayName,
		account.GiftPreferences,
		account.Interests,
		account.Budget,
		account.Address,
		account.IsStudent,
		account.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_account_store_update_profile_failed: %w", err)
	}

	return nil
}

/*
Delete permanently removes the account row.

Exchange assignments referencing the account cascade away with it.
*/
func (store *PostgresAccountStore) Delete(ctx context.Context, id string) error {
	const query = "DELETE FROM users.account WHERE id = $1"
	if _, err := store.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("postgres_account_store_delete_failed: %w", err)
	}
	return nil
}

// scanOne hydrates a single Account from a row.
func (store *PostgresAccountStore) scanOne(row pgx.Row) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.DisplayName,
		&account.GiftPreferences,
		&account.Interests,
		&account.Budget,
		&account.Address,
		&account.IsStudent,
		&account.Disabled,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}
