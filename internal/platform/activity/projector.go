package activity

import (
	"sort"
	"strings"
)

// SortKey selects the ordering of a projected page
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortAmountDesc SortKey = "amount"
)

// StatusFilter narrows a projection to one status, or passes everything
type StatusFilter string

const StatusAll StatusFilter = "all"

// DefaultPageSize is used when a query does not specify a page size
const DefaultPageSize = 10

// Query describes one projection of the store: free-text search,
// status filter, sort order and pagination. It carries no hidden state.
type Query struct {
	Search   string
	Status   StatusFilter
	Sort     SortKey
	Page     int
	PageSize int
}

// PageResult is one page of projected records
type PageResult struct {
	Records      []Record `json:"records"`
	Page         int      `json:"page"`
	TotalPages   int      `json:"total_pages"`
	TotalRecords int      `json:"total_records"`
}

// Project derives a filtered, sorted page from a newest-first snapshot.
// It is a pure function of (snapshot, query): re-running it with the same
// inputs yields the same page, and records that tie on the sort key keep
// the snapshot's stable order, so rows do not jump while the store grows.
// A page index beyond the end is clamped to the last valid page.
func Project(snapshot []Record, q Query) PageResult {
	filtered := filter(snapshot, q)

	switch q.Sort {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return newerThan(filtered[j], filtered[i])
		})
	case SortAmountDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Amount > filtered[j].Amount
		})
	default:
		// snapshot is already newest first
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return PageResult{
		Records:      filtered[start:end],
		Page:         page,
		TotalPages:   totalPages,
		TotalRecords: len(filtered),
	}
}

func filter(snapshot []Record, q Query) []Record {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	status := q.Status
	if status == "" {
		status = StatusAll
	}

	out := make([]Record, 0, len(snapshot))
	for _, rec := range snapshot {
		if status != StatusAll && string(rec.Status) != string(status) {
			continue
		}
		if search != "" && !matches(rec, search) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matches checks a lowercased search term against hash, sender and recipient
func matches(rec Record, search string) bool {
	return strings.Contains(strings.ToLower(rec.Hash), search) ||
		strings.Contains(strings.ToLower(rec.Sender), search) ||
		strings.Contains(strings.ToLower(rec.Recipient), search)
}
