package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kislikjeka/moonwallet/pkg/logger"
)

// State represents the session lock state
type State string

const (
	StateUnlocked       State = "unlocked"        // secret material present in memory
	StateLocked         State = "locked"          // secret material absent
	StateAwaitingReauth State = "awaiting_reauth" // a reauth prompt is open
)

// Operation is a zero-argument resumable action guarded by the session
type Operation func(ctx context.Context) error

// Pending describes the captured continuation waiting for a successful
// unlock. Modeled as an explicit value rather than a bare closure so it
// can be reported to the UI.
type Pending struct {
	Reason string
	op     Operation
}

// Unlocker verifies credentials against the locally held encrypted secret
// and returns the restored secret material
type Unlocker interface {
	Unlock(ctx context.Context, password string) ([]byte, error)
}

// Guard tracks whether signing secret material is available and intercepts
// sensitive operations across the lock boundary. An operation invoked while
// locked is not executed; it is captured as the pending continuation and
// replayed exactly once after a successful reauth. At most one continuation
// is held: blocking a second operation overwrites the first (last blocked
// wins), which holds as long as the UI never queues two sensitive
// operations concurrently.
type Guard struct {
	unlocker Unlocker
	logger   *logger.Logger

	// reauthMu serializes unlock attempts so a replay never runs
	// concurrently with a second SubmitReauth
	reauthMu sync.Mutex

	mu        sync.Mutex
	state     State
	secret    []byte
	pending   *Pending
	listeners []func(State)
}

// NewGuard creates a guard in the Locked state; secret material never
// survives a process restart
func NewGuard(unlocker Unlocker, log *logger.Logger) *Guard {
	return &Guard{
		unlocker: unlocker,
		logger:   log.WithField("component", "session"),
		state:    StateLocked,
	}
}

// State returns the current session state
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// PendingReason returns the display reason of the captured continuation,
// if one is queued
func (g *Guard) PendingReason() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return "", false
	}
	return g.pending.Reason, true
}

// OnStateChange registers a listener invoked after every state transition
func (g *Guard) OnStateChange(fn func(State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// SetUnlocked installs freshly restored secret material, e.g. right after
// account activation where the password was just verified
func (g *Guard) SetUnlocked(secret []byte) {
	g.mu.Lock()
	g.secret = secret
	g.setStateLocked(StateUnlocked)
	g.mu.Unlock()
}

// Lock wipes secret material from memory and moves to Locked
func (g *Guard) Lock() {
	g.mu.Lock()
	g.wipeSecret()
	g.setStateLocked(StateLocked)
	g.mu.Unlock()
}

// Secret returns a copy of the secret material while unlocked
func (g *Guard) Secret() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateUnlocked || g.secret == nil {
		return nil, ErrWalletLocked
	}
	out := make([]byte, len(g.secret))
	copy(out, g.secret)
	return out, nil
}

// Guard executes op immediately when the session is unlocked. While locked
// the operation is captured as the pending continuation with the given
// display reason, the state moves to AwaitingReauth, and ErrReauthRequired
// is returned. An op that fails with ErrWalletLocked is re-captured the
// same way: the node is authoritative about lock state even when the
// guard's own tracking missed a transition.
func (g *Guard) Guard(ctx context.Context, reason string, op Operation) error {
	g.mu.Lock()
	if g.state != StateUnlocked {
		g.capture(reason, op)
		g.mu.Unlock()
		return ErrReauthRequired
	}
	g.mu.Unlock()

	err := op(ctx)
	if errors.Is(err, ErrWalletLocked) {
		g.mu.Lock()
		g.wipeSecret()
		g.capture(reason, op)
		g.mu.Unlock()
		g.logger.Warn("operation hit locked wallet, captured for replay", "reason", reason)
		return ErrReauthRequired
	}
	return err
}

// SubmitReauth verifies the password, restores secret material and replays
// the pending continuation exactly once. Failed verification preserves
// both the pending continuation and the AwaitingReauth state, so a
// following correct password still replays the original operation. While
// already unlocked it is a no-op.
func (g *Guard) SubmitReauth(ctx context.Context, password string) error {
	g.reauthMu.Lock()
	defer g.reauthMu.Unlock()

	g.mu.Lock()
	if g.state == StateUnlocked {
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()

	secret, err := g.unlocker.Unlock(ctx, password)
	if err != nil {
		// Recoverable: state and pending continuation are untouched
		g.logger.Warn("reauth failed", "error", err)
		return fmt.Errorf("failed to unlock: %w", err)
	}

	g.mu.Lock()
	g.secret = secret
	g.setStateLocked(StateUnlocked)
	replay := g.pending
	g.pending = nil
	g.mu.Unlock()

	if replay == nil {
		return nil
	}

	g.logger.Info("replaying captured operation", "reason", replay.Reason)
	return g.Guard(ctx, replay.Reason, replay.op)
}

// capture stores op as the pending continuation, overwriting any earlier
// one, and moves to AwaitingReauth. Caller must hold g.mu.
func (g *Guard) capture(reason string, op Operation) {
	if g.pending != nil {
		g.logger.Warn("overwriting pending operation",
			"previous", g.pending.Reason,
			"new", reason)
	}
	g.pending = &Pending{Reason: reason, op: op}
	g.setStateLocked(StateAwaitingReauth)
}

// setStateLocked transitions the state and notifies listeners.
// Caller must hold g.mu; listeners run on the calling goroutine.
func (g *Guard) setStateLocked(next State) {
	if g.state == next {
		return
	}
	g.state = next
	for _, fn := range g.listeners {
		fn(next)
	}
}

// wipeSecret zeroes and drops secret material. Caller must hold g.mu.
func (g *Guard) wipeSecret() {
	for i := range g.secret {
		g.secret[i] = 0
	}
	g.secret = nil
}
