// Copyright (c) 2026 Giftwise. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/giftwise/giftwise/internal/platform/apperr"
	"github.com/giftwise/giftwise/internal/users/auth"
)

// # Service Layer

// SessionRevoker terminates the caller's session credentials. Implemented by
// the auth service; account deletion uses it to force an immediate sign-out.
type SessionRevoker interface {
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// Service orchestrates business logic for participant profiles.
//
// It owns the mutable profile surface (wishlist preferences, budget, shipping
// address) while credential data stays under the auth domain's control.
type Service struct {
	accounts auth.AccountStore
	sessions SessionRevoker
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accounts auth.AccountStore, sessions SessionRevoker, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private profile of a participant.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *auth.Account: The hydrated profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, accountID string) (*auth.Account, error) {
	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotFound) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return account, nil
}

// UpdateProfileInput defines the mutable subset of profile fields. Nil
// pointers mean "leave unchanged".
type UpdateProfileInput struct {
	DisplayName     *string
	GiftPreferences *string
	Interests       *string
	Budget          *int
	Address         *string
	IsStudent       *bool
}

/*
UpdateProfile applies a partial set of changes to a participant's profile.

Description: Fetches the existing account state, overrides provided fields,
and synchronizes the change to persistent storage. The email and password
hash are never touched here.

Parameters:
  - context: context.Context
  - accountID: string
  - input: UpdateProfileInput

Returns:
  - *auth.Account: The updated profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, accountID string, input UpdateProfileInput) (*auth.Account, error) {

	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotFound) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.DisplayName != nil {
		account.DisplayName = *input.DisplayName
	}
	if input.GiftPreferences != nil {
		account.GiftPreferences = *input.GiftPreferences
	}
	if input.Interests != nil {
		account.Interests = *input.Interests
	}
	if input.Budget != nil {
		account.Budget = *input.Budget
	}
	if input.Address != nil {
		account.Address = *input.Address
	}
	if input.IsStudent != nil {
		account.IsStudent = *input.IsStudent
	}

	// Persist changes
	if err := service.accounts.UpdateProfile(context, account); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("participant_profile_updated", slog.String("account_id", accountID))

	return account, nil
}

/*
DeleteAccount permanently removes a participant account.

Description: Deletes the account row and immediately revokes the presented
session tokens to force a global sign-out. Any exchange assignments involving
the participant are removed by the schema's cascade rules.

Parameters:
  - context: context.Context
  - accountID: string
  - accessToken, refreshToken: The caller's current credentials (may be empty)

Returns:
  - error: Execution failures
*/
func (service *Service) DeleteAccount(context context.Context, accountID, accessToken, refreshToken string) error {

	if err := service.accounts.Delete(context, accountID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	// Revocation is best-effort: the account row is already gone, so every
	// future token resolution fails regardless.
	if err := service.sessions.Logout(context, accessToken, refreshToken); err != nil {
		service.logger.Error("account_delete_revocation_failed",
			slog.String("account_id", accountID),
			slog.Any("error", err),
		)
	}

	service.logger.Warn("participant_account_deleted", slog.String("account_id", accountID))

	return nil
}
