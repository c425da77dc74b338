package state

import (
	"issuegrip/internal/domain"
)

// SearchState is the live state of the search widget. FocusIndex is -1 while
// the input holds focus and 0..len(Results)-1 while a result does.
type SearchState struct {
	Term           string
	Results        []domain.Issue
	Loading        bool
	ResultsVisible bool
	FocusIndex     int
}

// NewSearchState creates an empty search state with the input focused
func NewSearchState() *SearchState {
	return &SearchState{FocusIndex: -1}
}

// ReplaceResults swaps in a new result list; the focus always returns to the input
func (s *SearchState) ReplaceResults(results []domain.Issue) {
	s.Results = results
	s.FocusIndex = -1
}

// Reset clears everything but the term
func (s *SearchState) Reset() {
	s.ReplaceResults(nil)
	s.Loading = false
	s.ResultsVisible = false
}

// HasResults reports whether any result is available
func (s *SearchState) HasResults() bool {
	return len(s.Results) > 0
}

// ValidIndex reports whether i addresses a result
func (s *SearchState) ValidIndex(i int) bool {
	return i >= 0 && i < len(s.Results)
}

// FocusedIssue returns the result under the focus index, if any
func (s *SearchState) FocusedIssue() (domain.Issue, bool) {
	if !s.ValidIndex(s.FocusIndex) {
		return domain.Issue{}, false
	}
	return s.Results[s.FocusIndex], true
}

// AppState contains all the application state
type AppState struct {
	Search  *SearchState
	Filters domain.FilterState

	// UI state
	Width         int
	Height        int
	StatusMessage string
}

// NewAppState creates a new application state
func NewAppState(filters domain.FilterState) *AppState {
	return &AppState{
		Search:  NewSearchState(),
		Filters: filters,
	}
}
