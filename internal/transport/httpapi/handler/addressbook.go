package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kislikjeka/moonwallet/internal/platform/account"
	"github.com/kislikjeka/moonwallet/internal/platform/addressbook"
	"github.com/kislikjeka/moonwallet/internal/transport/httpapi/middleware"
)

// AddressBookServiceInterface defines the operations needed by AddressBookHandler
type AddressBookServiceInterface interface {
	Create(ctx context.Context, entry *addressbook.Entry) (*addressbook.Entry, error)
	List(ctx context.Context, userID uuid.UUID) ([]*addressbook.Entry, error)
	Update(ctx context.Context, entry *addressbook.Entry, userID uuid.UUID) (*addressbook.Entry, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// AddressBookHandler handles address book HTTP requests
type AddressBookHandler struct {
	service AddressBookServiceInterface
}

// NewAddressBookHandler creates a new address book handler
func NewAddressBookHandler(service AddressBookServiceInterface) *AddressBookHandler {
	return &AddressBookHandler{service: service}
}

// EntryRequest represents an address book entry create/update body
type EntryRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Memo    string `json:"memo,omitempty"`
}

// EntryInfo represents an address book entry returned to the dashboard
type EntryInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func entryInfo(e *addressbook.Entry) EntryInfo {
	return EntryInfo{
		ID:        e.ID.String(),
		Name:      e.Name,
		Address:   e.Address,
		Memo:      e.Memo,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// CreateEntry handles POST /addressbook
func (h *AddressBookHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Create(r.Context(), &addressbook.Entry{
		UserID:  userID,
		Name:    req.Name,
		Address: req.Address,
		Memo:    req.Memo,
	})
	if err != nil {
		respondAddressBookError(w, err)
		return
	}

	respondJSON(w, entryInfo(entry), http.StatusCreated)
}

// ListEntries handles GET /addressbook
func (h *AddressBookHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to list entries", http.StatusInternalServerError)
		return
	}

	infos := make([]EntryInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, entryInfo(e))
	}
	respondJSON(w, infos, http.StatusOK)
}

// UpdateEntry handles PUT /addressbook/{id}
func (h *AddressBookHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid entry ID", http.StatusBadRequest)
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Update(r.Context(), &addressbook.Entry{
		ID:      id,
		UserID:  userID,
		Name:    req.Name,
		Address: req.Address,
		Memo:    req.Memo,
	}, userID)
	if err != nil {
		respondAddressBookError(w, err)
		return
	}

	respondJSON(w, entryInfo(entry), http.StatusOK)
}

// DeleteEntry handles DELETE /addressbook/{id}
func (h *AddressBookHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid entry ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		respondAddressBookError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondAddressBookError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, addressbook.ErrEntryNotFound):
		respondError(w, "entry not found", http.StatusNotFound)
	case errors.Is(err, addressbook.ErrUnauthorizedAccess):
		respondError(w, "entry belongs to another user", http.StatusForbidden)
	case errors.Is(err, addressbook.ErrDuplicateName):
		respondError(w, "entry name already exists", http.StatusConflict)
	case errors.Is(err, addressbook.ErrMissingName),
		errors.Is(err, addressbook.ErrNameTooLong),
		errors.Is(err, addressbook.ErrMemoTooLong),
		errors.Is(err, account.ErrMissingAddress),
		errors.Is(err, account.ErrInvalidAddress),
		errors.Is(err, account.ErrInvalidChecksum):
		respondError(w, err.Error(), http.StatusBadRequest)
	default:
		respondError(w, "address book operation failed", http.StatusInternalServerError)
	}
}
