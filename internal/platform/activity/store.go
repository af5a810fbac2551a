package activity

import (
	"sort"
	"sync"
)

// Store holds the authoritative, deduplicated set of transactions for a
// single address. It is created when an account is activated and discarded
// on account switch or logout; only the snapshot fetcher and the event
// ingestor write to it, and only through Merge.
type Store struct {
	mu       sync.RWMutex
	address  string
	index    map[string]int // hash -> position in records (arrival order)
	records  []Record       // arrival order, one entry per hash
	sorted   []Record       // materialized view, newest first
	onChange []func()
}

// NewStore creates an empty store scoped to the given address
func NewStore(address string) *Store {
	return &Store{
		address: address,
		index:   make(map[string]int),
	}
}

// Address returns the address this store is scoped to
func (s *Store) Address() string {
	return s.address
}

// Merge folds a batch of records into the store. Incoming data wins per
// hash, with one exception: a confirmed record is never overwritten back
// to pending. Merging the same batch twice leaves the store unchanged.
// Change listeners fire once per merge that was actually applied.
func (s *Store) Merge(incoming []Record) {
	if len(incoming) == 0 {
		return
	}

	s.mu.Lock()
	changed := false
	for _, rec := range incoming {
		if rec.Hash == "" {
			continue
		}
		pos, ok := s.index[rec.Hash]
		if !ok {
			s.index[rec.Hash] = len(s.records)
			s.records = append(s.records, rec)
			changed = true
			continue
		}

		current := s.records[pos]
		// Status is monotonic: confirmed never reverts to pending
		if current.Status == StatusConfirmed && rec.Status == StatusPending {
			continue
		}
		if current != rec {
			s.records[pos] = rec
			changed = true
		}
	}
	if changed {
		s.materialize()
	}
	listeners := s.onChange
	s.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn()
		}
	}
}

// materialize rebuilds the sorted view: newest first by timestamp, with
// pending records (no timestamp yet) sorting as newest. The sort is stable
// over arrival order, so ties resolve deterministically and records never
// reorder relative to each other as new ones arrive.
// Caller must hold s.mu.
func (s *Store) materialize() {
	sorted := make([]Record, len(s.records))
	copy(sorted, s.records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newerThan(sorted[i], sorted[j])
	})
	s.sorted = sorted
}

// newerThan reports whether a should sort before b in a newest-first view
func newerThan(a, b Record) bool {
	aPending := a.Timestamp == 0
	bPending := b.Timestamp == 0
	if aPending != bPending {
		return aPending
	}
	return a.Timestamp > b.Timestamp
}

// Snapshot returns a copy of the sorted materialization, newest first
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// Get returns the record for a hash, if present
func (s *Store) Get(hash string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[hash]
	if !ok {
		return Record{}, false
	}
	return s.records[pos], true
}

// Len returns the number of records in the store
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// OnChange registers a listener invoked after every merge that changed
// the store contents
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}
