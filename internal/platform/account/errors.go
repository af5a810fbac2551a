package account

import "errors"

var (
	// Validation errors
	ErrMissingName     = errors.New("account name is required")
	ErrNameTooLong     = errors.New("account name exceeds 100 characters")
	ErrMissingKeystore = errors.New("account keystore is required")
	ErrDuplicateName   = errors.New("account name already exists")

	// Address validation errors
	ErrMissingAddress  = errors.New("address is required")
	ErrInvalidAddress  = errors.New("invalid address format (must be 0x followed by 40 hex characters)")
	ErrInvalidChecksum = errors.New("invalid address checksum")

	// Repository errors
	ErrAccountNotFound = errors.New("account not found")

	// Lifecycle errors
	ErrNoActiveAccount = errors.New("no active account")
)
