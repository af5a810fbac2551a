package settings

import "errors"

var (
	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrUnsupportedCurrency = errors.New("unsupported display currency")
	ErrInvalidPageSize     = errors.New("page size must be between 1 and 100")
	ErrInvalidPollInterval = errors.New("poll interval must be between 5 and 300 seconds")
	ErrSettingsNotFound    = errors.New("settings not found")
)
