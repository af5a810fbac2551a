package handler

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kislikjeka/moonwallet/internal/platform/account"
	"github.com/kislikjeka/moonwallet/internal/platform/session"
)

// AccountServiceInterface defines the account operations needed by AccountHandler
type AccountServiceInterface interface {
	Create(ctx context.Context, name, password string) (*account.Account, error)
	Import(ctx context.Context, name, password string, seed []byte) (*account.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
	List(ctx context.Context) ([]*account.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Activator makes an account the active one
type Activator interface {
	Activate(ctx context.Context, id uuid.UUID, password string) (*account.Account, error)
	Deactivate()
	ActiveAccount() (*account.Account, error)
}

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accounts  AccountServiceInterface
	activator Activator
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts AccountServiceInterface, activator Activator) *AccountHandler {
	return &AccountHandler{
		accounts:  accounts,
		activator: activator,
	}
}

// CreateAccountRequest represents the account creation request body.
// When Seed is set the account is imported from the hex-encoded seed
// instead of generating a fresh key.
type CreateAccountRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Seed     string `json:"seed,omitempty"`
}

// ActivateRequest carries the wallet password for activation
type ActivateRequest struct {
	Password string `json:"password"`
}

// AccountInfo represents account information returned to the dashboard
type AccountInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *AccountHandler) accountInfo(a *account.Account) AccountInfo {
	info := AccountInfo{
		ID:        a.ID.String(),
		Name:      a.Name,
		Address:   a.Address,
		CreatedAt: a.CreatedAt,
	}
	if current, err := h.activator.ActiveAccount(); err == nil {
		info.Active = current.ID == a.ID
	}
	return info
}

// CreateAccount handles POST /accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		respondError(w, "password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	var (
		acc *account.Account
		err error
	)
	if req.Seed != "" {
		var seed []byte
		seed, err = hex.DecodeString(req.Seed)
		if err != nil {
			respondError(w, "seed must be hex-encoded", http.StatusBadRequest)
			return
		}
		acc, err = h.accounts.Import(r.Context(), req.Name, req.Password, seed)
	} else {
		acc, err = h.accounts.Create(r.Context(), req.Name, req.Password)
	}
	if err != nil {
		switch {
		case errors.Is(err, account.ErrDuplicateName):
			respondError(w, "account name already exists", http.StatusConflict)
		case errors.Is(err, account.ErrMissingName), errors.Is(err, account.ErrNameTooLong):
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to create account", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, h.accountInfo(acc), http.StatusCreated)
}

// ListAccounts handles GET /accounts
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		respondError(w, "failed to list accounts", http.StatusInternalServerError)
		return
	}

	infos := make([]AccountInfo, 0, len(accounts))
	for _, a := range accounts {
		infos = append(infos, h.accountInfo(a))
	}
	respondJSON(w, infos, http.StatusOK)
}

// GetAccount handles GET /accounts/{id}
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid account ID", http.StatusBadRequest)
		return
	}

	acc, err := h.accounts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			respondError(w, "account not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to get account", http.StatusInternalServerError)
		return
	}

	respondJSON(w, h.accountInfo(acc), http.StatusOK)
}

// DeleteAccount handles DELETE /accounts/{id}. The active account is
// deactivated first so its background workers stop.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid account ID", http.StatusBadRequest)
		return
	}

	if current, err := h.activator.ActiveAccount(); err == nil && current.ID == id {
		h.activator.Deactivate()
	}

	if err := h.accounts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			respondError(w, "account not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to delete account", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ActivateAccount handles POST /accounts/{id}/activate
func (h *AccountHandler) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid account ID", http.StatusBadRequest)
		return
	}

	var req ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		respondError(w, "password is required", http.StatusBadRequest)
		return
	}

	acc, err := h.activator.Activate(r.Context(), id, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			respondError(w, "account not found", http.StatusNotFound)
		case errors.Is(err, session.ErrInvalidPassword):
			respondError(w, "invalid password", http.StatusUnauthorized)
		default:
			respondError(w, "failed to activate account", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, h.accountInfo(acc), http.StatusOK)
}
