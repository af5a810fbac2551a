package addressbook

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service provides business logic for address book operations
type Service struct {
	repo Repository
}

// NewService creates a new address book service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new entry for a user
func (s *Service) Create(ctx context.Context, entry *Entry) (*Entry, error) {
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := s.repo.ExistsByUserAndName(ctx, entry.UserID, entry.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check entry existence: %w", err)
	}
	if exists {
		return nil, ErrDuplicateName
	}

	entry.ID = uuid.New()
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

// List retrieves all entries for a user
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// Update updates an entry after verifying ownership
func (s *Service) Update(ctx context.Context, entry *Entry, userID uuid.UUID) (*Entry, error) {
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	if entry.Name != existing.Name {
		exists, err := s.repo.ExistsByUserAndName(ctx, userID, entry.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check entry name: %w", err)
		}
		if exists {
			return nil, ErrDuplicateName
		}
	}

	entry.UserID = existing.UserID
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return entry, nil
}

// Delete deletes an entry after verifying ownership
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return ErrUnauthorizedAccess
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
