package session

import "errors"

var (
	// ErrWalletLocked means secret material is not available in memory.
	// Gateways map the node's wallet-locked failure to this sentinel so
	// the guard can capture a continuation even when its own state
	// tracking missed a lock transition.
	ErrWalletLocked = errors.New("wallet is locked")

	// ErrReauthRequired is returned to the caller of a guarded operation
	// that was captured as a pending continuation instead of executed
	ErrReauthRequired = errors.New("re-authentication required")

	// ErrInvalidPassword means credential verification failed; the caller
	// may retry with different credentials
	ErrInvalidPassword = errors.New("invalid password")
)
