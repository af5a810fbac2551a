package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kislikjeka/moonwallet/internal/platform/activity"
	"github.com/kislikjeka/moonwallet/internal/platform/wallet"
	"github.com/kislikjeka/moonwallet/pkg/logger"
)

const requestTimeout = 30 * time.Second

// Client is a JSON-over-HTTP client for the blockchain node API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new node API client
func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: log.WithField("component", "node_client"),
	}
}

// SetBaseURL overrides the API base URL (used in tests)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// GetTransactions returns the full transaction snapshot for an address
func (c *Client) GetTransactions(ctx context.Context, address string) ([]activity.Record, error) {
	var resp transactionsResponse
	url := fmt.Sprintf("%s/api/address/%s/transactions", c.baseURL, address)
	if err := c.doGet(ctx, url, &resp); err != nil {
		return nil, err
	}

	records := make([]activity.Record, 0, len(resp.Transactions))
	for i := range resp.Transactions {
		records = append(records, resp.Transactions[i].toRecord())
	}
	return records, nil
}

// GetBalance returns the current balance for an address in micro-units
func (c *Client) GetBalance(ctx context.Context, address string) (int64, error) {
	var resp balanceResponse
	url := fmt.Sprintf("%s/api/address/%s/balance", c.baseURL, address)
	if err := c.doGet(ctx, url, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// SendTransaction submits a signed transfer and returns its hash
func (c *Client) SendTransaction(ctx context.Context, tx wallet.SignedTransaction) (string, error) {
	var resp submitResponse
	if err := c.doPost(ctx, c.baseURL+"/api/transaction", tx, &resp); err != nil {
		return "", err
	}
	return resp.Hash, nil
}

// DeployContract submits a signed contract deployment
func (c *Client) DeployContract(ctx context.Context, deploy wallet.SignedDeploy) (string, error) {
	var resp submitResponse
	if err := c.doPost(ctx, c.baseURL+"/api/contract/deploy", deploy, &resp); err != nil {
		return "", err
	}
	return resp.Hash, nil
}

// RequestFaucet asks the testnet faucet to fund an address
func (c *Client) RequestFaucet(ctx context.Context, address string, amount int64) error {
	body := map[string]any{"address": address, "amount": amount}
	return c.doPost(ctx, c.baseURL+"/api/faucet", body, &struct{}{})
}

// GetStakingInfo returns the staking overview for an address
func (c *Client) GetStakingInfo(ctx context.Context, address string) (*wallet.StakingInfo, error) {
	var resp stakingResponse
	url := fmt.Sprintf("%s/api/address/%s/staking", c.baseURL, address)
	if err := c.doGet(ctx, url, &resp); err != nil {
		return nil, err
	}

	info := &wallet.StakingInfo{
		TotalStaked: resp.TotalStaked,
		Rewards:     resp.Rewards,
		Positions:   make([]wallet.StakingPosition, 0, len(resp.Positions)),
	}
	for _, p := range resp.Positions {
		info.Positions = append(info.Positions, wallet.StakingPosition{
			Validator: p.Validator,
			Amount:    p.Amount,
		})
	}
	return info, nil
}

func (c *Client) doGet(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *Client) doPost(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error *apiError `json:"error"`
		}
		body, _ := io.ReadAll(resp.Body)
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Error != nil {
			return mapError(envelope.Error)
		}
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
