package addressbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/kislikjeka/moonwallet/internal/platform/account"
)

// Entry represents a saved recipient in the address book
type Entry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Memo      string    `json:"memo,omitempty" db:"memo"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Validate validates entry fields; the address is normalized to its
// checksummed form
func (e *Entry) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if e.Name == "" {
		return ErrMissingName
	}
	if len(e.Name) > 100 {
		return ErrNameTooLong
	}
	if len(e.Memo) > 500 {
		return ErrMemoTooLong
	}

	checksummed, err := account.ValidateAddress(e.Address)
	if err != nil {
		return err
	}
	e.Address = checksummed
	return nil
}
