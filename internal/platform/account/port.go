package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for account persistence
type Repository interface {
	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// GetByAddress retrieves an account by its checksummed address
	GetByAddress(ctx context.Context, address string) (*Account, error)

	// List retrieves all accounts, newest first
	List(ctx context.Context) ([]*Account, error)

	// Delete deletes an account by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByName checks if an account with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}
