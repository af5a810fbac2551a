package wallet

import (
	"context"

	"github.com/kislikjeka/moonwallet/internal/platform/activity"
)

// NodeGateway defines the node API operations the wallet service needs.
// Implementations map node failures to the sentinel errors in this
// package and in the session package.
type NodeGateway interface {
	activity.NodeClient

	// SendTransaction submits a signed transfer and returns its hash
	SendTransaction(ctx context.Context, tx SignedTransaction) (string, error)

	// DeployContract submits a signed contract deployment and returns
	// the transaction hash
	DeployContract(ctx context.Context, deploy SignedDeploy) (string, error)

	// RequestFaucet asks the testnet faucet to fund an address
	RequestFaucet(ctx context.Context, address string, amount int64) error

	// GetStakingInfo returns the staking overview for an address
	GetStakingInfo(ctx context.Context, address string) (*StakingInfo, error)
}

// PushDialer opens a push-channel subscription for an address
type PushDialer interface {
	Subscribe(ctx context.Context, address string) (activity.Stream, error)
}

// BalanceCache caches balances per address
type BalanceCache interface {
	Get(ctx context.Context, address string) (int64, bool, error)
	Set(ctx context.Context, address string, balance int64) error
}
