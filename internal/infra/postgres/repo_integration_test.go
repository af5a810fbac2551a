//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/moonwallet/internal/platform/account"
	"github.com/kislikjeka/moonwallet/internal/platform/addressbook"
	"github.com/kislikjeka/moonwallet/internal/platform/settings"
	"github.com/kislikjeka/moonwallet/internal/platform/user"
	"github.com/kislikjeka/moonwallet/testutil/testdb"
)

var testDB *testdb.TestDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testDB, err = testdb.NewTestDB(ctx)
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}

	code := m.Run()

	testDB.Close(ctx)
	if code != 0 {
		panic("tests failed")
	}
}

func setupTest(t *testing.T) context.Context {
	ctx := context.Background()
	require.NoError(t, testDB.Reset(ctx))
	return ctx
}

// Helper to create a test user row
func createTestUser(t *testing.T, ctx context.Context) uuid.UUID {
	repo := NewUserRepository(testDB.Pool)
	u := &user.User{
		Email:        "test-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(ctx, u))
	return u.ID
}

// =============================================================================
// AccountRepository
// =============================================================================

func TestAccountRepository_CreateAndGet(t *testing.T) {
	ctx := setupTest(t)
	repo := NewAccountRepository(testDB.Pool)

	a := &account.Account{
		Name:     "main",
		Address:  "0x1111111111111111111111111111111111111111",
		Keystore: []byte(`{"version":1}`),
	}
	require.NoError(t, repo.Create(ctx, a))
	assert.NotEqual(t, uuid.Nil, a.ID, "Create assigns an ID")

	byID, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "main", byID.Name)
	assert.Equal(t, a.Address, byID.Address)
	assert.Equal(t, a.Keystore, byID.Keystore)

	byAddr, err := repo.GetByAddress(ctx, a.Address)
	require.NoError(t, err)
	assert.Equal(t, a.ID, byAddr.ID)
}

func TestAccountRepository_GetMissing(t *testing.T) {
	ctx := setupTest(t)
	repo := NewAccountRepository(testDB.Pool)

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAccountRepository_ListNewestFirst(t *testing.T) {
	ctx := setupTest(t)
	repo := NewAccountRepository(testDB.Pool)

	first := &account.Account{Name: "first", Address: "0x1111111111111111111111111111111111111111", Keystore: []byte("{}")}
	second := &account.Account{Name: "second", Address: "0x2222222222222222222222222222222222222222", Keystore: []byte("{}")}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "second", accounts[0].Name)
}

func TestAccountRepository_Delete(t *testing.T) {
	ctx := setupTest(t)
	repo := NewAccountRepository(testDB.Pool)

	a := &account.Account{Name: "doomed", Address: "0x1111111111111111111111111111111111111111", Keystore: []byte("{}")}
	require.NoError(t, repo.Create(ctx, a))

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), account.ErrAccountNotFound)
}

func TestAccountRepository_ExistsByName(t *testing.T) {
	ctx := setupTest(t)
	repo := NewAccountRepository(testDB.Pool)

	a := &account.Account{Name: "main", Address: "0x1111111111111111111111111111111111111111", Keystore: []byte("{}")}
	require.NoError(t, repo.Create(ctx, a))

	exists, err := repo.ExistsByName(ctx, "main")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "other")
	require.NoError(t, err)
	assert.False(t, exists)
}

// =============================================================================
// UserRepository
// =============================================================================

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := setupTest(t)
	repo := NewUserRepository(testDB.Pool)

	u := &user.User{Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Nil(t, byEmail.LastLoginAt)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	ctx := setupTest(t)
	repo := NewUserRepository(testDB.Pool)

	u := &user.User{Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))

	now := u.CreatedAt
	u.LastLoginAt = &now
	require.NoError(t, repo.Update(ctx, u))

	reloaded, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	ctx := setupTest(t)
	repo := NewUserRepository(testDB.Pool)

	err := repo.Update(ctx, &user.User{ID: uuid.New(), Email: "ghost@example.com"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

// =============================================================================
// AddressBookRepository
// =============================================================================

func TestAddressBookRepository_CRUD(t *testing.T) {
	ctx := setupTest(t)
	repo := NewAddressBookRepository(testDB.Pool)
	userID := createTestUser(t, ctx)

	e := &addressbook.Entry{
		UserID:  userID,
		Name:    "exchange",
		Address: "0x2222222222222222222222222222222222222222",
		Memo:    "cold storage",
	}
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "exchange", got.Name)
	assert.Equal(t, "cold storage", got.Memo)

	got.Memo = "hot wallet"
	require.NoError(t, repo.Update(ctx, got))

	reloaded, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "hot wallet", reloaded.Memo)

	require.NoError(t, repo.Delete(ctx, e.ID))
	_, err = repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, addressbook.ErrEntryNotFound)
}

func TestAddressBookRepository_ListSortedByName(t *testing.T) {
	ctx := setupTest(t)
	repo := NewAddressBookRepository(testDB.Pool)
	userID := createTestUser(t, ctx)
	otherUser := createTestUser(t, ctx)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, repo.Create(ctx, &addressbook.Entry{
			UserID:  userID,
			Name:    name,
			Address: "0x2222222222222222222222222222222222222222",
		}))
	}
	require.NoError(t, repo.Create(ctx, &addressbook.Entry{
		UserID:  otherUser,
		Name:    "not mine",
		Address: "0x3333333333333333333333333333333333333333",
	}))

	entries, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 3, "other users' entries are excluded")
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, "zeta", entries[2].Name)
}

func TestAddressBookRepository_ExistsByUserAndName(t *testing.T) {
	ctx := setupTest(t)
	repo := NewAddressBookRepository(testDB.Pool)
	userID := createTestUser(t, ctx)

	require.NoError(t, repo.Create(ctx, &addressbook.Entry{
		UserID:  userID,
		Name:    "exchange",
		Address: "0x2222222222222222222222222222222222222222",
	}))

	exists, err := repo.ExistsByUserAndName(ctx, userID, "exchange")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUserAndName(ctx, uuid.New(), "exchange")
	require.NoError(t, err)
	assert.False(t, exists, "name uniqueness is per user")
}

// =============================================================================
// SettingsRepository
// =============================================================================

func TestSettingsRepository_UpsertAndGet(t *testing.T) {
	ctx := setupTest(t)
	repo := NewSettingsRepository(testDB.Pool)
	userID := createTestUser(t, ctx)

	_, err := repo.Get(ctx, userID)
	assert.ErrorIs(t, err, settings.ErrSettingsNotFound)

	s := &settings.Settings{
		UserID:          userID,
		DisplayCurrency: "USD",
		PrivacyDefault:  "transparent",
		PageSize:        20,
		PollIntervalSec: 10,
	}
	require.NoError(t, repo.Upsert(ctx, s))

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "USD", got.DisplayCurrency)
	assert.Equal(t, 20, got.PageSize)

	// Second upsert replaces in place
	s.DisplayCurrency = "EUR"
	s.PrivacyDefault = "shielded"
	require.NoError(t, repo.Upsert(ctx, s))

	got, err = repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.DisplayCurrency)
	assert.Equal(t, "shielded", got.PrivacyDefault)
}
