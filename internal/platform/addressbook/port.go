package addressbook

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for address book persistence
type Repository interface {
	// Create creates a new entry
	Create(ctx context.Context, entry *Entry) error

	// GetByID retrieves an entry by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// ListByUser retrieves all entries for a user, sorted by name
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Entry, error)

	// Update updates an existing entry
	Update(ctx context.Context, entry *Entry) error

	// Delete deletes an entry by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByUserAndName checks if an entry with the given name exists
	ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}
