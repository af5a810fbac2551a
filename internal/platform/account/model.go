package account

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a wallet account: a display name, an on-chain
// address and the encrypted spend key. The plaintext key never touches
// this struct; unlocking goes through the session guard.
type Account struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Keystore  []byte    `json:"-" db:"keystore"` // encrypted key blob, never serialized out
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidateCreate validates account fields for creation
func (a *Account) ValidateCreate() error {
	if a.Name == "" {
		return ErrMissingName
	}
	if len(a.Name) > 100 {
		return ErrNameTooLong
	}

	checksummed, err := ValidateAddress(a.Address)
	if err != nil {
		return err
	}
	a.Address = checksummed

	if len(a.Keystore) == 0 {
		return ErrMissingKeystore
	}
	return nil
}
