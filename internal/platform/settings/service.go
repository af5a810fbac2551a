package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Service provides business logic for dashboard settings
type Service struct {
	repo Repository
}

// NewService creates a new settings service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a user's settings, falling back to defaults when none
// are stored yet. Absence is not an error.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Settings, error) {
	stored, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return Default(userID), nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return stored, nil
}

// Update validates and persists a user's settings
func (s *Service) Update(ctx context.Context, settings *Settings) (*Settings, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
