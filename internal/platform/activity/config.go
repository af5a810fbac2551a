package activity

import "time"

// Config holds configuration for the snapshot fetcher
type Config struct {
	// PollInterval is how often the full snapshot is refetched
	PollInterval time.Duration

	// FetchTimeout bounds a single snapshot request
	FetchTimeout time.Duration
}

// DefaultConfig returns the default fetcher configuration
func DefaultConfig() *Config {
	return &Config{
		PollInterval: 10 * time.Second,
		FetchTimeout: 30 * time.Second,
	}
}

// Validate fills in sane values for missing fields
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		c.PollInterval = 10 * time.Second
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	return nil
}
