package activity

import "context"

// NodeClient defines the node API operations the activity feed depends on
type NodeClient interface {
	// GetTransactions returns the full transaction snapshot for an address
	GetTransactions(ctx context.Context, address string) ([]Record, error)

	// GetBalance returns the current balance for an address in micro-units
	GetBalance(ctx context.Context, address string) (int64, error)
}

// Stream is a subscription to the node's push channel for one address.
// Reconnection is the stream's own responsibility; the events channel is
// closed only when the stream is closed for good.
type Stream interface {
	// Events returns the channel push events are delivered on
	Events() <-chan Event

	// Close tears down the subscription and closes the events channel
	Close() error
}

// Refresher triggers an out-of-band snapshot refetch
type Refresher interface {
	Trigger()
}

// BalanceSink receives balance updates from the push channel
type BalanceSink func(balance int64)
