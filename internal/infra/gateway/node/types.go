package node

import (
	"fmt"

	"github.com/kislikjeka/moonwallet/internal/platform/activity"
	"github.com/kislikjeka/moonwallet/internal/platform/session"
	"github.com/kislikjeka/moonwallet/internal/platform/wallet"
)

// transactionDTO is the node API wire form of a transaction
type transactionDTO struct {
	Hash         string `json:"hash"`
	Sender       string `json:"sender"`
	Recipient    string `json:"recipient"`
	Amount       int64  `json:"amount"`
	Status       string `json:"status"`
	Timestamp    int64  `json:"timestamp,omitempty"`
	Commitment   string `json:"commitment,omitempty"`
	Nullifier    string `json:"nullifier,omitempty"`
	PrivacyLevel string `json:"privacy_level,omitempty"`
	Fee          int64  `json:"fee,omitempty"`
	GasUsed      int64  `json:"gas_used,omitempty"`
	GasPrice     int64  `json:"gas_price,omitempty"`
	VM           string `json:"vm,omitempty"`
	ShardID      int32  `json:"shard_id,omitempty"`
}

// toRecord converts a wire transaction to an activity record
func (t *transactionDTO) toRecord() activity.Record {
	return activity.Record{
		Hash:         t.Hash,
		Sender:       t.Sender,
		Recipient:    t.Recipient,
		Amount:       t.Amount,
		Status:       activity.Status(t.Status),
		Timestamp:    t.Timestamp,
		Commitment:   t.Commitment,
		Nullifier:    t.Nullifier,
		PrivacyLevel: t.PrivacyLevel,
		Fee:          t.Fee,
		GasUsed:      t.GasUsed,
		GasPrice:     t.GasPrice,
		VM:           t.VM,
		ShardID:      t.ShardID,
	}
}

// transactionsResponse is the snapshot poll response
type transactionsResponse struct {
	Transactions []transactionDTO `json:"transactions"`
}

// balanceResponse is the balance poll response
type balanceResponse struct {
	Balance int64 `json:"balance"`
}

// submitResponse is returned after submitting a transaction or deployment
type submitResponse struct {
	Hash string `json:"hash"`
}

// stakingResponse is the staking overview response
type stakingResponse struct {
	TotalStaked int64 `json:"total_staked"`
	Rewards     int64 `json:"rewards"`
	Positions   []struct {
		Validator string `json:"validator"`
		Amount    int64  `json:"amount"`
	} `json:"positions"`
}

// apiError is the node API error envelope
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("node API error %s: %s", e.Code, e.Message)
}

// Node API error codes
const (
	codeInsufficientFunds = "INSUFFICIENT_FUNDS"
	codeWalletLocked      = "WALLET_LOCKED"
	codeInvalidRecipient  = "INVALID_RECIPIENT"
)

// mapError translates a node API error into the domain sentinels the
// callers branch on
func mapError(e *apiError) error {
	switch e.Code {
	case codeInsufficientFunds:
		return fmt.Errorf("%w: %s", wallet.ErrInsufficientFunds, e.Message)
	case codeWalletLocked:
		return fmt.Errorf("%w: %s", session.ErrWalletLocked, e.Message)
	case codeInvalidRecipient:
		return fmt.Errorf("%w: %s", wallet.ErrInvalidRecipient, e.Message)
	default:
		return e
	}
}
