package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/kislikjeka/moonwallet/internal/platform/settings"
	"github.com/kislikjeka/moonwallet/internal/transport/httpapi/middleware"
)

// SettingsServiceInterface defines the operations needed by SettingsHandler
type SettingsServiceInterface interface {
	Get(ctx context.Context, userID uuid.UUID) (*settings.Settings, error)
	Update(ctx context.Context, s *settings.Settings) (*settings.Settings, error)
}

// SettingsHandler handles dashboard settings HTTP requests
type SettingsHandler struct {
	service SettingsServiceInterface
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(service SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// SettingsRequest represents the settings update body
type SettingsRequest struct {
	DisplayCurrency string `json:"display_currency"`
	PrivacyDefault  string `json:"privacy_default"`
	PageSize        int    `json:"page_size"`
	PollIntervalSec int    `json:"poll_interval_sec"`
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	s, err := h.service.Get(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to get settings", http.StatusInternalServerError)
		return
	}

	respondJSON(w, s, http.StatusOK)
}

// UpdateSettings handles PUT /settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), &settings.Settings{
		UserID:          userID,
		DisplayCurrency: req.DisplayCurrency,
		PrivacyDefault:  req.PrivacyDefault,
		PageSize:        req.PageSize,
		PollIntervalSec: req.PollIntervalSec,
	})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrUnsupportedCurrency),
			errors.Is(err, settings.ErrInvalidPageSize),
			errors.Is(err, settings.ErrInvalidPollInterval):
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to save settings", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, updated, http.StatusOK)
}
