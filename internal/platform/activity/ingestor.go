package activity

import (
	"context"

	"github.com/kislikjeka/moonwallet/pkg/logger"
)

// Ingestor consumes typed push events from a stream and feeds incremental
// updates into the store. Transaction events for other addresses are
// dropped silently; block events trigger an out-of-band snapshot refetch,
// because a new block may retroactively confirm pending records whose full
// data is not in the event payload. Balance events bypass the store and go
// to the balance sink. While the stream is down, snapshot polling remains
// the sole source of truth, so nothing here is required for correctness.
type Ingestor struct {
	store     *Store
	refresher Refresher
	balance   BalanceSink
	logger    *logger.Logger
}

// NewIngestor creates an ingestor writing into the given store
func NewIngestor(store *Store, refresher Refresher, balance BalanceSink, log *logger.Logger) *Ingestor {
	return &Ingestor{
		store:     store,
		refresher: refresher,
		balance:   balance,
		logger:    log.WithField("component", "ingestor").WithField("address", store.Address()),
	}
}

// Run consumes events until the context is cancelled or the stream's
// channel is closed. It never blocks the rest of the application: event
// handling is merge-and-return.
func (in *Ingestor) Run(ctx context.Context, stream Stream) {
	in.logger.Info("event ingestor started")

	for {
		select {
		case <-ctx.Done():
			in.logger.Info("event ingestor stopping")
			return
		case ev, ok := <-stream.Events():
			if !ok {
				in.logger.Info("push stream closed")
				return
			}
			in.handle(ev)
		}
	}
}

func (in *Ingestor) handle(ev Event) {
	switch ev.Type {
	case EventTransaction:
		if ev.Transaction == nil {
			in.logger.Warn("transaction event without payload, dropped")
			return
		}
		if !ev.Transaction.Involves(in.store.Address()) {
			in.logger.Debug("transaction event for other address, dropped",
				"hash", ev.Transaction.Hash)
			return
		}
		in.store.Merge([]Record{*ev.Transaction})
		in.logger.Debug("transaction event merged",
			"hash", ev.Transaction.Hash,
			"status", ev.Transaction.Status)

	case EventBlock:
		// Full record data is not in the payload; refetch the snapshot
		if in.refresher != nil {
			in.refresher.Trigger()
		}
		in.logger.Debug("block event, snapshot refetch triggered")

	case EventBalance:
		if in.balance != nil {
			in.balance(ev.Balance)
		}
		in.logger.Debug("balance event", "balance", ev.Balance)

	default:
		in.logger.Warn("unknown push event type, dropped", "type", ev.Type)
	}
}
