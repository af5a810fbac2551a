package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kislikjeka/moonwallet/internal/platform/addressbook"
)

// AddressBookRepository implements the address book repository using PostgreSQL
type AddressBookRepository struct {
	pool *pgxpool.Pool
}

// NewAddressBookRepository creates a new PostgreSQL address book repository
func NewAddressBookRepository(pool *pgxpool.Pool) *AddressBookRepository {
	return &AddressBookRepository{pool: pool}
}

// Create creates a new entry
func (r *AddressBookRepository) Create(ctx context.Context, e *addressbook.Entry) error {
	query := `
		INSERT INTO address_book (id, user_id, name, address, memo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.UserID, e.Name, e.Address, e.Memo, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// GetByID retrieves an entry by ID
func (r *AddressBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*addressbook.Entry, error) {
	query := `
		SELECT id, user_id, name, address, memo, created_at, updated_at
		FROM address_book
		WHERE id = $1
	`

	e := &addressbook.Entry{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.UserID, &e.Name, &e.Address, &e.Memo, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, addressbook.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// ListByUser retrieves all entries for a user, sorted by name
func (r *AddressBookRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*addressbook.Entry, error) {
	query := `
		SELECT id, user_id, name, address, memo, created_at, updated_at
		FROM address_book
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*addressbook.Entry
	for rows.Next() {
		e := &addressbook.Entry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Address, &e.Memo, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Update updates an existing entry
func (r *AddressBookRepository) Update(ctx context.Context, e *addressbook.Entry) error {
	query := `
		UPDATE address_book
		SET name = $2, address = $3, memo = $4, updated_at = $5
		WHERE id = $1
	`

	e.UpdatedAt = time.Now()
	tag, err := r.pool.Exec(ctx, query, e.ID, e.Name, e.Address, e.Memo, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return addressbook.ErrEntryNotFound
	}
	return nil
}

// Delete deletes an entry by ID
func (r *AddressBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM address_book WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return addressbook.ErrEntryNotFound
	}
	return nil
}

// ExistsByUserAndName checks if an entry with the given name exists for the user
func (r *AddressBookRepository) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM address_book WHERE user_id = $1 AND name = $2)`,
		userID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check entry name: %w", err)
	}
	return exists, nil
}
