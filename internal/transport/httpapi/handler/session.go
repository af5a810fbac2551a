package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kislikjeka/moonwallet/internal/platform/session"
	"github.com/kislikjeka/moonwallet/internal/platform/wallet"
)

// SessionController exposes the session guard to the dashboard
type SessionController interface {
	Status() wallet.SessionStatus
	Guard() *session.Guard
}

// SessionHandler handles session lock/unlock HTTP requests
type SessionHandler struct {
	wallet SessionController
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(w SessionController) *SessionHandler {
	return &SessionHandler{wallet: w}
}

// UnlockRequest carries the wallet password for re-authentication
type UnlockRequest struct {
	Password string `json:"password"`
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.wallet.Status(), http.StatusOK)
}

// LockSession handles POST /session/lock
func (h *SessionHandler) LockSession(w http.ResponseWriter, r *http.Request) {
	h.wallet.Guard().Lock()
	respondJSON(w, h.wallet.Status(), http.StatusOK)
}

// UnlockSession handles POST /session/unlock. On success any operation
// captured while locked has already been replayed.
func (h *SessionHandler) UnlockSession(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		respondError(w, "password is required", http.StatusBadRequest)
		return
	}

	if err := h.wallet.Guard().SubmitReauth(r.Context(), req.Password); err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidPassword):
			respondError(w, "invalid password", http.StatusUnauthorized)
		case errors.Is(err, wallet.ErrNoActiveAccount):
			respondError(w, "no active account", http.StatusConflict)
		default:
			respondError(w, "unlock failed: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, h.wallet.Status(), http.StatusOK)
}
