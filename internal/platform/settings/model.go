package settings

import (
	"time"

	"github.com/google/uuid"
)

// Supported display currencies
var supportedCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
	"JPY": true,
}

// Settings holds per-user dashboard preferences
type Settings struct {
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	DisplayCurrency string    `json:"display_currency" db:"display_currency"`
	PrivacyDefault  string    `json:"privacy_default" db:"privacy_default"`
	PageSize        int       `json:"page_size" db:"page_size"`
	PollIntervalSec int       `json:"poll_interval_sec" db:"poll_interval_sec"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Default returns the default settings for a user
func Default(userID uuid.UUID) *Settings {
	return &Settings{
		UserID:          userID,
		DisplayCurrency: "USD",
		PrivacyDefault:  "transparent",
		PageSize:        10,
		PollIntervalSec: 10,
	}
}

// Validate validates settings fields
func (s *Settings) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if !supportedCurrencies[s.DisplayCurrency] {
		return ErrUnsupportedCurrency
	}
	if s.PageSize < 1 || s.PageSize > 100 {
		return ErrInvalidPageSize
	}
	if s.PollIntervalSec < 5 || s.PollIntervalSec > 300 {
		return ErrInvalidPollInterval
	}
	return nil
}
