package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kislikjeka/moonwallet/internal/platform/session"
	"github.com/kislikjeka/moonwallet/internal/platform/wallet"
	"github.com/kislikjeka/moonwallet/pkg/money"
)

// WalletServiceInterface defines the wallet operations needed by WalletHandler
type WalletServiceInterface interface {
	Balance(ctx context.Context) (int64, error)
	Send(ctx context.Context, req wallet.SendRequest) (string, error)
	DeployContract(ctx context.Context, req wallet.DeployRequest) (string, error)
	RequestFaucet(ctx context.Context, amount int64) error
	StakingInfo(ctx context.Context) (*wallet.StakingInfo, error)
}

// WalletHandler handles wallet operation HTTP requests
type WalletHandler struct {
	wallet WalletServiceInterface
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(w WalletServiceInterface) *WalletHandler {
	return &WalletHandler{wallet: w}
}

// BalanceResponse carries the balance both in micro-units and as a
// display string
type BalanceResponse struct {
	Balance   int64  `json:"balance"`
	Formatted string `json:"formatted"`
}

// SendRequest represents the transfer request body. Amount is a
// human-readable decimal string, e.g. "1.5".
type SendRequest struct {
	Recipient    string `json:"recipient"`
	Amount       string `json:"amount"`
	PrivacyLevel string `json:"privacy_level,omitempty"`
}

// DeployRequest represents the contract deployment request body
type DeployRequest struct {
	Code     string `json:"code"`
	VM       string `json:"vm"`
	GasLimit int64  `json:"gas_limit"`
}

// FaucetRequest represents the faucet request body
type FaucetRequest struct {
	Amount string `json:"amount"`
}

// SubmitResponse reports the hash of a submitted transaction
type SubmitResponse struct {
	Hash   string `json:"hash"`
	Status string `json:"status"`
}

// GetBalance handles GET /wallet/balance
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.wallet.Balance(r.Context())
	if err != nil {
		if errors.Is(err, wallet.ErrNoActiveAccount) {
			respondError(w, "no active account", http.StatusConflict)
			return
		}
		respondError(w, "failed to get balance", http.StatusBadGateway)
		return
	}

	respondJSON(w, BalanceResponse{
		Balance:   balance,
		Formatted: money.FormatMicro(balance),
	}, http.StatusOK)
}

// Send handles POST /wallet/send. While the session is locked the
// transfer is captured for replay and 401 REAUTH_REQUIRED is returned.
func (h *WalletHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	amount, err := money.ParseMicro(req.Amount)
	if err != nil {
		respondError(w, "invalid amount: "+err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := h.wallet.Send(r.Context(), wallet.SendRequest{
		Recipient:    req.Recipient,
		Amount:       amount,
		PrivacyLevel: req.PrivacyLevel,
	})
	if err != nil {
		h.respondWalletError(w, err)
		return
	}

	respondJSON(w, SubmitResponse{Hash: hash, Status: "submitted"}, http.StatusAccepted)
}

// Deploy handles POST /contracts/deploy; guarded like Send
func (h *WalletHandler) Deploy(w http.ResponseWriter, r *http.Request) {
	var req DeployRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		respondError(w, "contract code is required", http.StatusBadRequest)
		return
	}

	hash, err := h.wallet.DeployContract(r.Context(), wallet.DeployRequest{
		Code:     req.Code,
		VM:       req.VM,
		GasLimit: req.GasLimit,
	})
	if err != nil {
		h.respondWalletError(w, err)
		return
	}

	respondJSON(w, SubmitResponse{Hash: hash, Status: "submitted"}, http.StatusAccepted)
}

// RequestFaucet handles POST /wallet/faucet
func (h *WalletHandler) RequestFaucet(w http.ResponseWriter, r *http.Request) {
	var req FaucetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	amount, err := money.ParseMicro(req.Amount)
	if err != nil {
		respondError(w, "invalid amount: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.wallet.RequestFaucet(r.Context(), amount); err != nil {
		if errors.Is(err, wallet.ErrNoActiveAccount) {
			respondError(w, "no active account", http.StatusConflict)
			return
		}
		respondError(w, "faucet request failed", http.StatusBadGateway)
		return
	}

	respondJSON(w, map[string]string{"status": "funded"}, http.StatusOK)
}

// GetStaking handles GET /staking
func (h *WalletHandler) GetStaking(w http.ResponseWriter, r *http.Request) {
	info, err := h.wallet.StakingInfo(r.Context())
	if err != nil {
		if errors.Is(err, wallet.ErrNoActiveAccount) {
			respondError(w, "no active account", http.StatusConflict)
			return
		}
		respondError(w, "failed to get staking info", http.StatusBadGateway)
		return
	}

	respondJSON(w, info, http.StatusOK)
}

// respondWalletError maps domain errors from guarded operations to
// HTTP status codes
func (h *WalletHandler) respondWalletError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrReauthRequired):
		respondJSON(w, map[string]string{
			"error": "re-authentication required",
			"code":  "REAUTH_REQUIRED",
		}, http.StatusUnauthorized)
	case errors.Is(err, wallet.ErrNoActiveAccount):
		respondError(w, "no active account", http.StatusConflict)
	case errors.Is(err, wallet.ErrInsufficientFunds):
		respondError(w, "insufficient funds", http.StatusUnprocessableEntity)
	case errors.Is(err, wallet.ErrInvalidRecipient):
		respondError(w, "invalid recipient address", http.StatusBadRequest)
	case errors.Is(err, wallet.ErrInvalidAmount):
		respondError(w, "amount must be positive", http.StatusBadRequest)
	default:
		respondError(w, "operation failed: "+err.Error(), http.StatusBadGateway)
	}
}
