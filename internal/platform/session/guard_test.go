package session_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/moonwallet/internal/platform/session"
	"github.com/kislikjeka/moonwallet/pkg/logger"
)

// =============================================================================
// Fake unlocker
// =============================================================================

type fakeUnlocker struct {
	password string
	secret   []byte
	calls    int
}

func (u *fakeUnlocker) Unlock(ctx context.Context, password string) ([]byte, error) {
	u.calls++
	if password != u.password {
		return nil, session.ErrInvalidPassword
	}
	out := make([]byte, len(u.secret))
	copy(out, u.secret)
	return out, nil
}

func newGuard() (*session.Guard, *fakeUnlocker) {
	unlocker := &fakeUnlocker{password: "correct horse", secret: []byte("seed-material-32-bytes-long!!!!!")}
	return session.NewGuard(unlocker, logger.New("test", os.Stdout)), unlocker
}

// =============================================================================
// Tests
// =============================================================================

func TestGuard_StartsLocked(t *testing.T) {
	g, _ := newGuard()
	assert.Equal(t, session.StateLocked, g.State())

	_, err := g.Secret()
	assert.ErrorIs(t, err, session.ErrWalletLocked)
}

func TestGuard_RunsOperationWhileUnlocked(t *testing.T) {
	g, _ := newGuard()
	g.SetUnlocked([]byte("secret"))

	ran := false
	err := g.Guard(context.Background(), "send", func(ctx context.Context) error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, session.StateUnlocked, g.State())
}

func TestGuard_CapturesOperationWhileLocked(t *testing.T) {
	g, _ := newGuard()

	ran := false
	err := g.Guard(context.Background(), "send", func(ctx context.Context) error {
		ran = true
		return nil
	})

	assert.ErrorIs(t, err, session.ErrReauthRequired)
	assert.False(t, ran, "operation must not run while locked")
	assert.Equal(t, session.StateAwaitingReauth, g.State())

	reason, ok := g.PendingReason()
	require.True(t, ok)
	assert.Equal(t, "send", reason)
}

func TestGuard_ReauthReplaysCapturedOperationOnce(t *testing.T) {
	g, _ := newGuard()

	runs := 0
	_ = g.Guard(context.Background(), "send", func(ctx context.Context) error {
		runs++
		return nil
	})
	require.Equal(t, 0, runs)

	err := g.SubmitReauth(context.Background(), "correct horse")
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
	assert.Equal(t, session.StateUnlocked, g.State())

	// The continuation is consumed; another unlock replays nothing
	g.Lock()
	err = g.SubmitReauth(context.Background(), "correct horse")
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
}

func TestGuard_WrongPasswordPreservesPendingOperation(t *testing.T) {
	g, _ := newGuard()

	runs := 0
	_ = g.Guard(context.Background(), "send", func(ctx context.Context) error {
		runs++
		return nil
	})

	err := g.SubmitReauth(context.Background(), "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrInvalidPassword)
	assert.Equal(t, session.StateAwaitingReauth, g.State())
	assert.Equal(t, 0, runs)

	// The original intent survives the typo
	err = g.SubmitReauth(context.Background(), "correct horse")
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
}

func TestGuard_SecondBlockedOperationOverwritesFirst(t *testing.T) {
	g, _ := newGuard()

	var order []string
	_ = g.Guard(context.Background(), "send A", func(ctx context.Context) error {
		order = append(order, "A")
		return nil
	})
	_ = g.Guard(context.Background(), "send B", func(ctx context.Context) error {
		order = append(order, "B")
		return nil
	})

	reason, ok := g.PendingReason()
	require.True(t, ok)
	assert.Equal(t, "send B", reason)

	err := g.SubmitReauth(context.Background(), "correct horse")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, order, "only the last blocked operation replays")
}

func TestGuard_OperationHittingLockedWalletIsRecaptured(t *testing.T) {
	g, _ := newGuard()
	g.SetUnlocked([]byte("secret"))

	// The node reports the wallet locked even though the guard thought
	// it was unlocked
	attempts := 0
	err := g.Guard(context.Background(), "send", func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return session.ErrWalletLocked
		}
		return nil
	})

	assert.ErrorIs(t, err, session.ErrReauthRequired)
	assert.Equal(t, session.StateAwaitingReauth, g.State())

	_, secretErr := g.Secret()
	assert.ErrorIs(t, secretErr, session.ErrWalletLocked, "secret wiped on forced lock")

	err = g.SubmitReauth(context.Background(), "correct horse")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts, "captured operation replayed after reauth")
}

func TestGuard_ReauthWhileUnlockedIsNoOp(t *testing.T) {
	g, unlocker := newGuard()
	g.SetUnlocked([]byte("secret"))

	err := g.SubmitReauth(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, 0, unlocker.calls)
}

func TestGuard_OperationErrorsPassThrough(t *testing.T) {
	g, _ := newGuard()
	g.SetUnlocked([]byte("secret"))

	opErr := errors.New("insufficient funds")
	err := g.Guard(context.Background(), "send", func(ctx context.Context) error {
		return opErr
	})

	assert.ErrorIs(t, err, opErr)
	assert.Equal(t, session.StateUnlocked, g.State(), "domain errors do not lock the session")
	_, pending := g.PendingReason()
	assert.False(t, pending)
}

func TestGuard_LockWipesSecret(t *testing.T) {
	g, _ := newGuard()
	g.SetUnlocked([]byte("secret"))

	secret, err := g.Secret()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), secret)

	g.Lock()
	_, err = g.Secret()
	assert.ErrorIs(t, err, session.ErrWalletLocked)
}

func TestGuard_StateChangeListeners(t *testing.T) {
	g, _ := newGuard()

	var states []session.State
	g.OnStateChange(func(s session.State) { states = append(states, s) })

	g.SetUnlocked([]byte("secret"))
	g.Lock()
	_ = g.Guard(context.Background(), "send", func(ctx context.Context) error { return nil })

	assert.Equal(t, []session.State{
		session.StateUnlocked,
		session.StateLocked,
		session.StateAwaitingReauth,
	}, states)
}
