package account_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/moonwallet/internal/platform/account"
	"github.com/kislikjeka/moonwallet/internal/platform/session"
)

// =============================================================================
// Mock Repository
// =============================================================================

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockRepository) GetByAddress(ctx context.Context, address string) (*account.Account, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*account.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

var _ account.Repository = (*MockRepository)(nil)

// =============================================================================
// Tests
// =============================================================================

func TestService_CreateGeneratesSealedAccount(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("ExistsByName", ctx, "main").Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*account.Account")).Return(nil)

	svc := account.NewService(repo)

	acc, err := svc.Create(ctx, "main", "strong password")
	require.NoError(t, err)

	assert.Equal(t, "main", acc.Name)
	assert.NotEmpty(t, acc.Keystore)

	_, err = account.ValidateAddress(acc.Address)
	assert.NoError(t, err, "derived address is well-formed")

	// The keystore opens with the same password
	seed, err := svc.UnlockKeystore(acc, "strong password")
	require.NoError(t, err)
	assert.Len(t, seed, ed25519.SeedSize)

	_, err = svc.UnlockKeystore(acc, "wrong password")
	assert.ErrorIs(t, err, session.ErrInvalidPassword)
	repo.AssertExpectations(t)
}

func TestService_CreateRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("ExistsByName", ctx, "main").Return(true, nil)

	svc := account.NewService(repo)

	_, err := svc.Create(ctx, "main", "strong password")
	assert.ErrorIs(t, err, account.ErrDuplicateName)
	repo.AssertNotCalled(t, "Create")
}

func TestService_ImportDerivesSameAddressAsSeed(t *testing.T) {
	ctx := context.Background()
	seed := make([]byte, ed25519.SeedSize)
	_, err := rand.Read(seed)
	require.NoError(t, err)

	priv := ed25519.NewKeyFromSeed(seed)
	wantAddr := account.AddressFromPublicKey(priv.Public().(ed25519.PublicKey))

	repo := new(MockRepository)
	repo.On("ExistsByName", ctx, "imported").Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*account.Account")).Return(nil)

	svc := account.NewService(repo)

	acc, err := svc.Import(ctx, "imported", "strong password", seed)
	require.NoError(t, err)
	assert.Equal(t, wantAddr, acc.Address)

	// Unlocking restores the identical seed
	restored, err := svc.UnlockKeystore(acc, "strong password")
	require.NoError(t, err)
	assert.Equal(t, seed, restored)
}

func TestService_ImportRejectsBadSeedLength(t *testing.T) {
	repo := new(MockRepository)
	svc := account.NewService(repo)

	_, err := svc.Import(context.Background(), "imported", "strong password", []byte("short"))
	assert.Error(t, err)
}

func TestService_DeleteMissingAccount(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(MockRepository)
	repo.On("GetByID", ctx, id).Return(nil, account.ErrAccountNotFound)

	svc := account.NewService(repo)

	err := svc.Delete(ctx, id)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	repo.AssertNotCalled(t, "Delete")
}
