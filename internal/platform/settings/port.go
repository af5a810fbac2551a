package settings

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for settings persistence
type Repository interface {
	// Get retrieves settings for a user
	Get(ctx context.Context, userID uuid.UUID) (*Settings, error)

	// Upsert creates or replaces settings for a user
	Upsert(ctx context.Context, settings *Settings) error
}
