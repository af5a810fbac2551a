package activity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kislikjeka/moonwallet/pkg/logger"
)

// Fetcher periodically retrieves the full transaction snapshot for an
// address and merges it into the store. A failed fetch leaves the store
// untouched; the next tick retries. Fetch is read-only apart from the
// merge itself, so a superseded in-flight fetch is harmless: both results
// are merged and idempotence absorbs the redundancy.
type Fetcher struct {
	config  *Config
	client  NodeClient
	store   *Store
	logger  *logger.Logger
	trigger chan struct{}

	mu      sync.Mutex
	running bool
}

// NewFetcher creates a snapshot fetcher for the store's address
func NewFetcher(config *Config, client NodeClient, store *Store, log *logger.Logger) *Fetcher {
	if config == nil {
		config = DefaultConfig()
	}
	_ = config.Validate()

	return &Fetcher{
		config:  config,
		client:  client,
		store:   store,
		logger:  log.WithField("component", "fetcher").WithField("address", store.Address()),
		trigger: make(chan struct{}, 1),
	}
}

// Run polls on a fixed interval until the context is cancelled. An
// out-of-band Trigger causes an immediate refetch without resetting
// the interval.
func (f *Fetcher) Run(ctx context.Context) {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return
	}
	f.running = true
	f.mu.Unlock()

	f.logger.Info("starting snapshot fetcher", "poll_interval", f.config.PollInterval)

	ticker := time.NewTicker(f.config.PollInterval)
	defer ticker.Stop()

	// Initial fetch immediately
	f.fetchOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("snapshot fetcher stopping")
			f.mu.Lock()
			f.running = false
			f.mu.Unlock()
			return
		case <-ticker.C:
			f.fetchOnce(ctx)
		case <-f.trigger:
			f.fetchOnce(ctx)
		}
	}
}

// Trigger requests an out-of-band refetch. It never blocks; if a refetch
// is already queued the signal is coalesced.
func (f *Fetcher) Trigger() {
	select {
	case f.trigger <- struct{}{}:
	default:
	}
}

// RefreshNow fetches and merges a snapshot synchronously. Used by the
// explicit refresh endpoint so the caller observes the merged result.
func (f *Fetcher) RefreshNow(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, f.config.FetchTimeout)
	defer cancel()

	records, err := f.client.GetTransactions(ctx, f.store.Address())
	if err != nil {
		return fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	f.store.Merge(records)
	return nil
}

// fetchOnce performs one poll cycle, logging transient failures instead
// of surfacing them
func (f *Fetcher) fetchOnce(ctx context.Context) {
	if err := f.RefreshNow(ctx); err != nil {
		f.logger.Warn("snapshot fetch failed, will retry next tick", "error", err)
		return
	}
	f.logger.Debug("snapshot merged", "records", f.store.Len())
}
