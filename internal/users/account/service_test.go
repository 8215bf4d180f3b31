// Copyright (c) 2026 Giftwise. All rights reserved.

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwise/giftwise/internal/platform/apperr"
	"github.com/giftwise/giftwise/internal/users/account"
	"github.com/giftwise/giftwise/internal/users/auth"
)

// # Test Doubles

type stubAccounts struct {
	byID    map[string]*auth.Account
	updated *auth.Account
	deleted []string
}

func newStubAccounts(accounts ...*auth.Account) *stubAccounts {
	store := &stubAccounts{byID: make(map[string]*auth.Account)}
	for _, a := range accounts {
		store.byID[a.ID] = a
	}
	return store
}

func (store *stubAccounts) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	for _, a := range store.byID {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, auth.ErrAccountNotFound
}

func (store *stubAccounts) FindByID(_ context.Context, id string) (*auth.Account, error) {
	a, found := store.byID[id]
	if !found {
		return nil, auth.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (store *stubAccounts) Create(_ context.Context, a *auth.Account) error {
	store.byID[a.ID] = a
	return nil
}

func (store *stubAccounts) UpdateProfile(_ context.Context, a *auth.Account) error {
	store.updated = a
	store.byID[a.ID] = a
	return nil
}

func (store *stubAccounts) Delete(_ context.Context, id string) error {
	store.deleted = append(store.deleted, id)
	delete(store.byID, id)
	return nil
}

type stubRevoker struct {
	calls [][2]string
}

func (revoker *stubRevoker) Logout(_ context.Context, accessToken, refreshToken string) error {
	revoker.calls = append(revoker.calls, [2]string{accessToken, refreshToken})
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bobAccount() *auth.Account {
	return &auth.Account{
		ID:          "0193e4a2-0000-7000-8000-000000000001",
		Email:       "bob@example.com",
		DisplayName: "Bob",
		Interests:   "model trains",
		Budget:      20,
	}
}

// # Tests

/*
TestService_GetProfile checks lookup and the not-found mapping.
*/
func TestService_GetProfile(t *testing.T) {
	store := newStubAccounts(bobAccount())
	service := account.NewService(store, &stubRevoker{}, discardLogger())

	profile, err := service.GetProfile(context.Background(), bobAccount().ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", profile.Email)

	_, err = service.GetProfile(context.Background(), "missing-id")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 404, ae.HTTPStatus)
}

/*
TestService_UpdateProfile verifies delta semantics: provided fields change,
absent fields survive untouched.
*/
func TestService_UpdateProfile(t *testing.T) {
	store := newStubAccounts(bobAccount())
	service := account.NewService(store, &stubRevoker{}, discardLogger())

	newBudget := 50
	newPrefs := "no socks please"

	updated, err := service.UpdateProfile(context.Background(), bobAccount().ID, account.UpdateProfileInput{
		Budget:          &newBudget,
		GiftPreferences: &newPrefs,
	})
	require.NoError(t, err)

	assert.Equal(t, 50, updated.Budget)
	assert.Equal(t, "no socks please", updated.GiftPreferences)

	// Untouched fields keep their values.
	assert.Equal(t, "Bob", updated.DisplayName)
	assert.Equal(t, "model trains", updated.Interests)

	require.NotNil(t, store.updated)
	assert.Equal(t, 50, store.updated.Budget)
}

/*
TestService_DeleteAccount verifies the row is removed and the presented
tokens are revoked.
*/
func TestService_DeleteAccount(t *testing.T) {
	store := newStubAccounts(bobAccount())
	revoker := &stubRevoker{}
	service := account.NewService(store, revoker, discardLogger())

	err := service.DeleteAccount(context.Background(), bobAccount().ID, "access-token", "refresh-token")
	require.NoError(t, err)

	assert.Equal(t, []string{bobAccount().ID}, store.deleted)
	require.Len(t, revoker.calls, 1)
	assert.Equal(t, [2]string{"access-token", "refresh-token"}, revoker.calls[0])
}
