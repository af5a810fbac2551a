package wallet

import "errors"

var (
	// ErrNoActiveAccount means no account has been activated yet
	ErrNoActiveAccount = errors.New("no active account")

	// ErrInsufficientFunds means the node rejected a transfer for lack
	// of balance; surfaced immediately, never retried
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidRecipient means the recipient address failed validation
	ErrInvalidRecipient = errors.New("invalid recipient address")

	// ErrInvalidAmount means the transfer amount is zero or negative
	ErrInvalidAmount = errors.New("amount must be positive")
)
