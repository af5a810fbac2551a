package wallet

// SendRequest describes a transfer initiated from the dashboard
type SendRequest struct {
	Recipient    string `json:"recipient"`
	Amount       int64  `json:"amount"` // micro-units
	PrivacyLevel string `json:"privacy_level,omitempty"`
}

// DeployRequest describes a smart-contract deployment
type DeployRequest struct {
	Code     string `json:"code"` // hex-encoded contract bytecode
	VM       string `json:"vm"`
	GasLimit int64  `json:"gas_limit"`
}

// SignedTransaction is the wire form of an authorized transfer
type SignedTransaction struct {
	Sender       string `json:"sender"`
	Recipient    string `json:"recipient"`
	Amount       int64  `json:"amount"`
	PrivacyLevel string `json:"privacy_level,omitempty"`
	Timestamp    int64  `json:"timestamp"`
	PublicKey    string `json:"public_key"`
	Signature    string `json:"signature"`
}

// SignedDeploy is the wire form of an authorized contract deployment
type SignedDeploy struct {
	Sender    string `json:"sender"`
	Code      string `json:"code"`
	VM        string `json:"vm"`
	GasLimit  int64  `json:"gas_limit"`
	Timestamp int64  `json:"timestamp"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

// StakingPosition is one delegation to a validator
type StakingPosition struct {
	Validator string `json:"validator"`
	Amount    int64  `json:"amount"`
}

// StakingInfo is the staking overview for an address
type StakingInfo struct {
	TotalStaked int64             `json:"total_staked"`
	Rewards     int64             `json:"rewards"`
	Positions   []StakingPosition `json:"positions"`
}

// SessionStatus is the session state reported to the dashboard
type SessionStatus struct {
	State         string `json:"state"`
	PendingReason string `json:"pending_reason,omitempty"`
}
