package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/kislikjeka/moonwallet/internal/platform/activity"
	"github.com/kislikjeka/moonwallet/internal/platform/wallet"
)

// ActivityProvider exposes the active account's activity feed
type ActivityProvider interface {
	CurrentPage(q activity.Query) (activity.PageResult, error)
	RefreshNow(ctx context.Context) error
}

// ActivityHandler handles activity feed HTTP requests
type ActivityHandler struct {
	provider ActivityProvider
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(provider ActivityProvider) *ActivityHandler {
	return &ActivityHandler{provider: provider}
}

// GetActivity handles GET /activity.
// Query parameters: search, status, sort, page, page_size.
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	q := activity.Query{
		Search: r.URL.Query().Get("search"),
		Status: activity.StatusFilter(r.URL.Query().Get("status")),
		Sort:   activity.SortKey(r.URL.Query().Get("sort")),
	}

	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, "page must be an integer", http.StatusBadRequest)
			return
		}
		q.Page = page
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > 100 {
			respondError(w, "page_size must be between 1 and 100", http.StatusBadRequest)
			return
		}
		q.PageSize = size
	}

	result, err := h.provider.CurrentPage(q)
	if err != nil {
		if errors.Is(err, wallet.ErrNoActiveAccount) {
			respondError(w, "no active account", http.StatusConflict)
			return
		}
		respondError(w, "failed to project activity", http.StatusInternalServerError)
		return
	}

	respondJSON(w, result, http.StatusOK)
}

// RefreshActivity handles POST /activity/refresh.
// Fetches and merges a fresh snapshot before responding.
func (h *ActivityHandler) RefreshActivity(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.RefreshNow(r.Context()); err != nil {
		if errors.Is(err, wallet.ErrNoActiveAccount) {
			respondError(w, "no active account", http.StatusConflict)
			return
		}
		respondError(w, "refresh failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	respondJSON(w, map[string]string{"status": "refreshed"}, http.StatusOK)
}
