package filters

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"issuegrip/internal/domain"
)

// Field identifies one control of the filter panel
type Field int

const (
	FieldState Field = iota
	FieldLimit
	FieldLabels
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldState:
		return "state"
	case FieldLimit:
		return "limit"
	case FieldLabels:
		return "labels"
	}
	return "unknown"
}

// ChangeFunc receives the full merged filter state after every change
type ChangeFunc func(domain.FilterState) tea.Cmd

// Service holds the filter panel values and its field focus
type Service struct {
	filters  domain.FilterState
	focused  Field
	onChange ChangeFunc
}

// NewService creates a filter panel seeded with initial values
func NewService(initial domain.FilterState, onChange ChangeFunc) *Service {
	if initial.Limit < 1 {
		initial.Limit = domain.DefaultFilterState().Limit
	}
	if !initial.State.Valid() {
		initial.State = domain.IssueOpen
	}
	return &Service{filters: initial, onChange: onChange}
}

// Filters returns the current values
func (s *Service) Filters() domain.FilterState {
	return s.filters
}

// Focused returns the field holding focus
func (s *Service) Focused() Field {
	return s.focused
}

// Focus moves focus to a field
func (s *Service) Focus(f Field) {
	if f >= 0 && f < fieldCount {
		s.focused = f
	}
}

// Next moves focus to the next field; false when already on the last one
func (s *Service) Next() bool {
	if s.focused+1 >= fieldCount {
		return false
	}
	s.focused++
	return true
}

// Prev moves focus to the previous field; false when already on the first one
func (s *Service) Prev() bool {
	if s.focused == 0 {
		return false
	}
	s.focused--
	return true
}

// SetState changes the issue state filter
func (s *Service) SetState(state domain.IssueState) tea.Cmd {
	if !state.Valid() || state == s.filters.State {
		return nil
	}
	next := s.filters
	next.State = state
	return s.apply(next)
}

// ToggleState flips between open and closed
func (s *Service) ToggleState() tea.Cmd {
	if s.filters.State == domain.IssueOpen {
		return s.SetState(domain.IssueClosed)
	}
	return s.SetState(domain.IssueOpen)
}

// SetLimitText applies the limit field's text. Anything that is not a whole
// number of at least 1 is rejected and the last valid limit kept.
func (s *Service) SetLimitText(text string) tea.Cmd {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n == s.filters.Limit {
		return nil
	}
	next := s.filters
	next.Limit = n
	return s.apply(next)
}

// SetLabels applies the comma-separated label field
func (s *Service) SetLabels(text string) tea.Cmd {
	if text == s.filters.Labels {
		return nil
	}
	next := s.filters
	next.Labels = text
	return s.apply(next)
}

func (s *Service) apply(next domain.FilterState) tea.Cmd {
	s.filters = next
	if s.onChange == nil {
		return nil
	}
	return s.onChange(next)
}
