package search

import (
	"time"

	"issuegrip/internal/domain"
)

// Options configures the controller; one component covers every widget variant
type Options struct {
	Debounce   time.Duration // quiet period before a search fires
	MaxResults int           // 0 keeps every result
	Timeout    time.Duration // 0 waits for the endpoint indefinitely
	UseFilters bool          // feed the filter panel into queries
}

// DebounceMsg fires when a debounce window elapses. Only the latest
// generation dispatches a search.
type DebounceMsg struct {
	Generation int
}

// ResultMsg carries the outcome of one dispatched search
type ResultMsg struct {
	Seq     int
	Term    string
	Issues  []domain.Issue
	Err     error
	Elapsed time.Duration
}
