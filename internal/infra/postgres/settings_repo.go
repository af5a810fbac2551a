package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kislikjeka/moonwallet/internal/platform/settings"
)

// SettingsRepository implements the settings repository using PostgreSQL
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new PostgreSQL settings repository
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get retrieves settings for a user
func (r *SettingsRepository) Get(ctx context.Context, userID uuid.UUID) (*settings.Settings, error) {
	query := `
		SELECT user_id, display_currency, privacy_default, page_size, poll_interval_sec, updated_at
		FROM settings
		WHERE user_id = $1
	`

	s := &settings.Settings{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.DisplayCurrency, &s.PrivacyDefault, &s.PageSize, &s.PollIntervalSec, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, settings.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// Upsert creates or replaces settings for a user
func (r *SettingsRepository) Upsert(ctx context.Context, s *settings.Settings) error {
	query := `
		INSERT INTO settings (user_id, display_currency, privacy_default, page_size, poll_interval_sec, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			display_currency = EXCLUDED.display_currency,
			privacy_default = EXCLUDED.privacy_default,
			page_size = EXCLUDED.page_size,
			poll_interval_sec = EXCLUDED.poll_interval_sec,
			updated_at = EXCLUDED.updated_at
	`

	s.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx, query,
		s.UserID, s.DisplayCurrency, s.PrivacyDefault, s.PageSize, s.PollIntervalSec, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
