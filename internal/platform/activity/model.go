package activity

// Status represents the confirmation status of a transaction
type Status string

const (
	StatusPending   Status = "pending"   // Seen by the network, not yet in a block
	StatusConfirmed Status = "confirmed" // Included in a block
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed:
		return true
	}
	return false
}

// Record represents a single transaction in the activity feed.
// A record is identified by its hash; the store never holds two records
// with the same hash.
type Record struct {
	Hash      string `json:"hash"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"` // micro-units
	Status    Status `json:"status"`
	Timestamp int64  `json:"timestamp"` // unix seconds, 0 while pending

	// Privacy metadata, empty for transparent transactions
	Commitment   string `json:"commitment,omitempty"`
	Nullifier    string `json:"nullifier,omitempty"`
	PrivacyLevel string `json:"privacy_level,omitempty"`

	Fee      int64  `json:"fee"`
	GasUsed  int64  `json:"gas_used"`
	GasPrice int64  `json:"gas_price"`
	VM       string `json:"vm,omitempty"`
	ShardID  int32  `json:"shard_id"`
}

// Involves reports whether the given address is the sender or recipient
// of the record
func (r *Record) Involves(address string) bool {
	return r.Sender == address || r.Recipient == address
}

// EventType identifies the kind of push event delivered over the
// persistent channel
type EventType string

const (
	EventTransaction EventType = "transaction"
	EventBalance     EventType = "balance"
	EventBlock       EventType = "block"
)

// Event is a single push update delivered by the node
type Event struct {
	Type        EventType
	Transaction *Record // set for EventTransaction
	Balance     int64   // set for EventBalance
}
