package push

import (
	"encoding/json"

	"github.com/kislikjeka/moonwallet/internal/platform/activity"
)

// wireEvent is the push-channel wire envelope
type wireEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// transactionPayload is the payload of a "transaction" event
type transactionPayload struct {
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

// balancePayload is the payload of a "balance" event
type balancePayload struct {
	Balance int64 `json:"balance"`
}

// decode translates a raw websocket message into an activity event.
// Returns false for malformed or unknown messages, which are dropped.
func decode(data []byte) (activity.Event, bool) {
	var ev wireEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return activity.Event{}, false
	}

	switch activity.EventType(ev.Type) {
	case activity.EventTransaction:
		var p transactionPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return activity.Event{}, false
		}
		return activity.Event{
			Type: activity.EventTransaction,
			Transaction: &activity.Record{
				Hash:         p.Hash,
				Sender:       p.Sender,
				Recipient:    p.Recipient,
				Amount:       p.Amount,
				Status:       activity.Status(p.Status),
				Timestamp:    p.Timestamp,
				Commitment:   p.Commitment,
				Nullifier:    p.Nullifier,
				PrivacyLevel: p.PrivacyLevel,
				Fee:          p.Fee,
				GasUsed:      p.GasUsed,
				GasPrice:     p.GasPrice,
				VM:           p.VM,
				ShardID:      p.ShardID,
			},
		}, true

	case activity.EventBalance:
		var p balancePayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return activity.Event{}, false
		}
		return activity.Event{Type: activity.EventBalance, Balance: p.Balance}, true

	case activity.EventBlock:
		return activity.Event{Type: activity.EventBlock}, true
	}

	return activity.Event{}, false
}
