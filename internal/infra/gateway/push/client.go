package push

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kislikjeka/moonwallet/internal/platform/activity"
	"github.com/kislikjeka/moonwallet/pkg/logger"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
	eventBuffer    = 64
)

// Dialer opens websocket subscriptions to the node's push channel
type Dialer struct {
	wsURL  string
	logger *logger.Logger
}

// NewDialer creates a push-channel dialer. wsURL is the node websocket
// endpoint, e.g. ws://node:8080/ws.
func NewDialer(wsURL string, log *logger.Logger) *Dialer {
	return &Dialer{
		wsURL:  wsURL,
		logger: log.WithField("component", "push"),
	}
}

// Subscribe opens a subscription for the given address. The returned
// stream reconnects with exponential backoff on connection loss and
// delivers events until Close is called or the context is cancelled.
func (d *Dialer) Subscribe(ctx context.Context, address string) (activity.Stream, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	s := &Stream{
		url:    fmt.Sprintf("%s/subscribe/%s", d.wsURL, address),
		events: make(chan activity.Event, eventBuffer),
		cancel: cancel,
		logger: d.logger.WithField("address", address),
	}
	go s.run(streamCtx)
	return s, nil
}

// Stream is one live push-channel subscription
type Stream struct {
	url       string
	events    chan activity.Event
	cancel    context.CancelFunc
	closeOnce sync.Once
	logger    *logger.Logger
}

// Events returns the channel push events are delivered on
func (s *Stream) Events() <-chan activity.Event {
	return s.events
}

// Close tears down the subscription; the events channel is closed once
// the reader goroutine exits
func (s *Stream) Close() error {
	s.closeOnce.Do(s.cancel)
	return nil
}

// run dials, reads and reconnects until the context is cancelled
func (s *Stream) run(ctx context.Context) {
	defer close(s.events)

	backoff := initialBackoff
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
		if err != nil {
			s.logger.Warn("push channel connect failed", "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff)
			continue
		}

		s.logger.Info("push channel connected")
		backoff = initialBackoff

		s.readLoop(ctx, conn)
		conn.Close()

		if ctx.Err() != nil {
			return
		}
		s.logger.Warn("push channel disconnected, reconnecting")
	}
}

// readLoop pumps messages from one connection until it fails or the
// context is cancelled
func (s *Stream) readLoop(ctx context.Context, conn *websocket.Conn) {
	// Unblock ReadMessage when the context is cancelled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		ev, ok := decode(data)
		if !ok {
			s.logger.Warn("malformed push event, dropped")
			continue
		}

		select {
		case s.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// sleep waits for d, returning false if the context was cancelled first
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
