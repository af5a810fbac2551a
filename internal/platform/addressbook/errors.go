package addressbook

import "errors"

var (
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrMissingName        = errors.New("entry name is required")
	ErrNameTooLong        = errors.New("entry name exceeds 100 characters")
	ErrMemoTooLong        = errors.New("memo exceeds 500 characters")
	ErrDuplicateName      = errors.New("entry name already exists")
	ErrEntryNotFound      = errors.New("address book entry not found")
	ErrUnauthorizedAccess = errors.New("unauthorized entry access")
)
