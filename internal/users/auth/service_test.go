// Copyright (c) 2026 Giftwise. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwise/giftwise/internal/platform/sec"
	"github.com/giftwise/giftwise/internal/users/auth"
)

// Low bcrypt cost keeps the suite fast; production uses the default cost.
const testBcryptCost = 4

// # Test Doubles

type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.current
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.current = clock.current.Add(d)
}

// memoryAccounts is an in-memory AccountStore with the same uniqueness
// semantics as the Postgres implementation.
type memoryAccounts struct {
	mu          sync.Mutex
	byEmail     map[string]*auth.Account
	createCalls int
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{byEmail: make(map[string]*auth.Account)}
}

func (store *memoryAccounts) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	account, found := store.byEmail[email]
	if !found {
		return nil, auth.ErrAccountNotFound
	}
	clone := *account
	return &clone, nil
}

func (store *memoryAccounts) FindByID(_ context.Context, id string) (*auth.Account, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, account := range store.byEmail {
		if account.ID == id {
			clone := *account
			return &clone, nil
		}
	}
	return nil, auth.ErrAccountNotFound
}

func (store *memoryAccounts) Create(_ context.Context, account *auth.Account) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.createCalls++
	if _, exists := store.byEmail[account.Email]; exists {
		return auth.ErrEmailTaken
	}
	clone := *account
	store.byEmail[account.Email] = &clone
	return nil
}

func (store *memoryAccounts) UpdateProfile(_ context.Context, account *auth.Account) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing, found := store.byEmail[account.Email]
	if !found {
		return auth.ErrAccountNotFound
	}
	existing.DisplayName = account.DisplayName
	existing.GiftPreferences = account.GiftPreferences
	existing.Interests = account.Interests
	existing.Budget = account.Budget
	existing.Address = account.Address
	existing.IsStudent = account.IsStudent
	return nil
}

func (store *memoryAccounts) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for email, account := range store.byEmail {
		if account.ID == id {
			delete(store.byEmail, email)
			return nil
		}
	}
	return nil
}

// setDisabled flips the stored flag directly, simulating moderation action.
func (store *memoryAccounts) setDisabled(email string, disabled bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if account, found := store.byEmail[email]; found {
		account.Disabled = disabled
	}
}

// memoryDenyList is an in-memory DenyList honoring the injected clock for
// TTL expiry.
type memoryDenyList struct {
	mu      sync.Mutex
	clock   *fakeClock
	revoked map[string]time.Time
	failErr error
}

func newMemoryDenyList(clock *fakeClock) *memoryDenyList {
	return &memoryDenyList{clock: clock, revoked: make(map[string]time.Time)}
}

func (list *memoryDenyList) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	list.mu.Lock()
	defer list.mu.Unlock()

	if list.failErr != nil {
		return list.failErr
	}
	list.revoked[tokenID] = list.clock.Now().Add(ttl)
	return nil
}

func (list *memoryDenyList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	list.mu.Lock()
	defer list.mu.Unlock()

	if list.failErr != nil {
		return false, list.failErr
	}
	expiry, found := list.revoked[tokenID]
	if !found {
		return false, nil
	}
	return list.clock.Now().Before(expiry), nil
}

// # Fixture

type serviceFixture struct {
	service  *auth.Service
	accounts *memoryAccounts
	denyList *memoryDenyList
	clock    *fakeClock
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	clock := newFakeClock()
	accounts := newMemoryAccounts()
	denyList := newMemoryDenyList(clock)

	codec := sec.NewTokenCodec(
		[]byte("unit-test-signing-secret"),
		"giftwise.app",
		auth.AccessTokenTTL,
		auth.RefreshTokenTTL,
		clock.Now,
	)
	hasher := sec.NewPasswordHasher(testBcryptCost, 2)

	return &serviceFixture{
		service:  auth.NewService(accounts, denyList, codec, hasher, clock.Now),
		accounts: accounts,
		denyList: denyList,
		clock:    clock,
	}
}

func registerAlice(t *testing.T, fixture *serviceFixture) *auth.SessionPair {
	t.Helper()

	pair, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Email:       "alice@example.com",
		Password:    "winter-gifts-2026",
		DisplayName: "Alice",
		Interests:   "board games",
		Budget:      25,
	})
	require.NoError(t, err)
	require.NotNil(t, pair)
	return pair
}

// # Lifecycle Tests

/*
TestService_SessionLifecycle walks the full happy path: register, login,
resolve the identity from the access token, expire the access token, then
mint a replacement via the refresh token.
*/
func TestService_SessionLifecycle(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	registered := registerAlice(t, fixture)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.True(t, registered.RefreshExpiresAt.After(registered.AccessExpiresAt))

	// Fresh login issues a working pair.
	pair, err := fixture.service.Login(ctx, "alice@example.com", "winter-gifts-2026")
	require.NoError(t, err)

	identity, err := fixture.service.AuthenticateRequest(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Equal(t, pair.Account.ID, identity.AccountID)
	assert.NotEmpty(t, identity.TokenID)

	// Past the access TTL the access token dies but the refresh token lives.
	fixture.clock.Advance(auth.AccessTokenTTL + time.Minute)

	_, err = fixture.service.AuthenticateRequest(ctx, pair.AccessToken)
	require.Error(t, err)
	assert.True(t, sec.IsTokenExpired(err))

	newAccessToken, newClaims, err := fixture.service.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, pair.Account.ID, newClaims.AccountID)

	identity, err = fixture.service.AuthenticateRequest(ctx, newAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", identity.Email)
}

/*
TestService_RefreshDoesNotRotate asserts that refreshing never invalidates
the presented refresh token: the same credential keeps working until its
natural expiry.
*/
func TestService_RefreshDoesNotRotate(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	pair := registerAlice(t, fixture)

	firstAccess, _, err := fixture.service.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	fixture.clock.Advance(time.Hour)

	secondAccess, _, err := fixture.service.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, firstAccess, secondAccess)

	// Refresh tokens presented to the refresh endpoint must be of kind
	// refresh: an access token is rejected outright.
	_, _, err = fixture.service.Refresh(ctx, firstAccess)
	require.Error(t, err)

	tokenErr := sec.AsTokenError(err)
	require.NotNil(t, tokenErr)
	assert.Equal(t, sec.TokenWrongKind, tokenErr.Reason)
}

/*
TestService_RefreshExpiry asserts the refresh token dies at its own TTL,
terminating the session for good.
*/
func TestService_RefreshExpiry(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	pair := registerAlice(t, fixture)

	fixture.clock.Advance(auth.RefreshTokenTTL)

	_, _, err := fixture.service.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.True(t, sec.IsTokenExpired(err))
}

// # Credential Tests

/*
TestService_AuthenticateFailureModes covers the three internally distinct
rejection reasons, including their gate order: a disabled account is reported
as disabled even when the password is also wrong.
*/
func TestService_AuthenticateFailureModes(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	registerAlice(t, fixture)

	_, err := fixture.service.Authenticate(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)

	_, err = fixture.service.Authenticate(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrBadCredentials)

	fixture.accounts.setDisabled("alice@example.com", true)

	_, err = fixture.service.Authenticate(ctx, "alice@example.com", "winter-gifts-2026")
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)

	// Disabled wins over bad credentials: the password gate never runs.
	_, err = fixture.service.Authenticate(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)
}

/*
TestService_RegisterDuplicateEmail verifies double registration conflicts and
leaves only the first account in the store.
*/
func TestService_RegisterDuplicateEmail(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	registerAlice(t, fixture)

	_, err := fixture.service.Register(ctx, auth.RegisterInput{
		Email:       "alice@example.com",
		Password:    "another-password",
		DisplayName: "Impostor",
	})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	// The pre-check short-circuits before touching the store again.
	assert.Equal(t, 1, fixture.accounts.createCalls)
}

/*
TestService_EmailNormalization verifies the email is canonicalized on both
write and read paths, so case and padding never split an identity in two.
*/
func TestService_EmailNormalization(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	_, err := fixture.service.Register(ctx, auth.RegisterInput{
		Email:       "  Alice@Example.COM ",
		Password:    "winter-gifts-2026",
		DisplayName: "Alice",
	})
	require.NoError(t, err)

	pair, err := fixture.service.Login(ctx, "alice@example.com", "winter-gifts-2026")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", pair.Account.Email)
}

// # Revocation Tests

/*
TestService_LogoutRevokesBothTokens verifies that logged-out tokens are
refused even though they remain cryptographically valid, and that logout is
idempotent.
*/
func TestService_LogoutRevokesBothTokens(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	pair := registerAlice(t, fixture)

	require.NoError(t, fixture.service.Logout(ctx, pair.AccessToken, pair.RefreshToken))

	_, err := fixture.service.AuthenticateRequest(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrSessionRevoked)

	_, _, err = fixture.service.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrSessionRevoked)

	// Second logout with the same (now revoked) tokens is a no-op.
	require.NoError(t, fixture.service.Logout(ctx, pair.AccessToken, pair.RefreshToken))

	// Garbage tokens are ignored too.
	require.NoError(t, fixture.service.Logout(ctx, "not-a-token", ""))
}

/*
TestService_DisabledMidSession verifies the per-request account re-check: a
participant disabled after login is locked out immediately, valid tokens
notwithstanding.
*/
func TestService_DisabledMidSession(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	pair := registerAlice(t, fixture)

	_, err := fixture.service.AuthenticateRequest(ctx, pair.AccessToken)
	require.NoError(t, err)

	fixture.accounts.setDisabled("alice@example.com", true)

	_, err = fixture.service.AuthenticateRequest(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)

	_, _, err = fixture.service.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)
}

/*
TestService_DenyListOutageFailsClosed verifies that a deny-list storage
failure rejects the request instead of letting a possibly revoked token pass.
*/
func TestService_DenyListOutageFailsClosed(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	pair := registerAlice(t, fixture)

	fixture.denyList.failErr = errors.New("redis: connection refused")

	_, err := fixture.service.AuthenticateRequest(ctx, pair.AccessToken)
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrSessionRevoked)
}
