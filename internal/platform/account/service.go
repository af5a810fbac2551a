package account

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"

	"github.com/kislikjeka/moonwallet/internal/platform/keystore"
)

// Service provides business logic for account operations
type Service struct {
	repo Repository
}

// NewService creates a new account service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create generates a fresh spend key, seals it under the password and
// persists the account. The plaintext seed is not retained.
func (s *Service) Create(ctx context.Context, name, password string) (*Account, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	return s.create(ctx, name, password, pub, priv.Seed())
}

// Import creates an account from an existing 32-byte seed
func (s *Service) Import(ctx context.Context, name, password string, seed []byte) (*Account, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes", ed25519.SeedSize)
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	return s.create(ctx, name, password, pub, seed)
}

func (s *Service) create(ctx context.Context, name, password string, pub, seed []byte) (*Account, error) {
	blob, err := keystore.Encrypt(seed, password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt keystore: %w", err)
	}

	acc := &Account{
		ID:       uuid.New(),
		Name:     name,
		Address:  AddressFromPublicKey(pub),
		Keystore: blob,
	}

	if err := acc.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := s.repo.ExistsByName(ctx, acc.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check account existence: %w", err)
	}
	if exists {
		return nil, ErrDuplicateName
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return acc, nil
}

// GetByID retrieves an account by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all accounts
func (s *Service) List(ctx context.Context) ([]*Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Delete deletes an account
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// UnlockKeystore decrypts an account's keystore blob with the password
// and returns the secret material
func (s *Service) UnlockKeystore(acc *Account, password string) ([]byte, error) {
	return keystore.Decrypt(acc.Keystore, password)
}
