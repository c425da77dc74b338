package navigation

import (
	"issuegrip/internal/ui/state"
)

// Service moves the focus index across the input (-1) and the result list
type Service struct {
	state   *state.SearchState
	handles []Handle
}

// NewService creates a new navigation service
func NewService(st *state.SearchState) *Service {
	return &Service{state: st}
}

// GetFocusIndex returns the current focus index
func (s *Service) GetFocusIndex() int {
	return s.state.FocusIndex
}

// Navigate handles navigation in a direction. Nothing moves without results.
func (s *Service) Navigate(direction Direction) Outcome {
	if !s.state.HasResults() {
		return Outcome{Target: TargetNone, Index: s.state.FocusIndex}
	}

	switch direction {
	case DirectionDown:
		return s.moveDown()
	case DirectionUp:
		return s.moveUp()
	}
	return Outcome{Target: TargetNone, Index: s.state.FocusIndex}
}

// Select returns the URL of the focused result, or an empty outcome when the
// input holds focus
func (s *Service) Select() Outcome {
	issue, ok := s.state.FocusedIssue()
	if !ok {
		return Outcome{Target: TargetNone, Index: s.state.FocusIndex}
	}
	return Outcome{Target: TargetResult, Index: s.state.FocusIndex, URL: issue.URL}
}

// MoveToIndex focuses a result directly, as a click does
func (s *Service) MoveToIndex(index int) Outcome {
	if !s.state.ValidIndex(index) {
		return Outcome{Target: TargetNone, Index: s.state.FocusIndex}
	}
	s.state.FocusIndex = index
	return Outcome{Target: TargetResult, Index: index}
}

// FocusInput moves focus back to the input
func (s *Service) FocusInput() Outcome {
	s.state.FocusIndex = -1
	return Outcome{Target: TargetInput, Index: -1}
}

func (s *Service) moveDown() Outcome {
	next := s.state.FocusIndex + 1
	if !s.state.ValidIndex(next) {
		return Outcome{Target: TargetNone, Index: s.state.FocusIndex}
	}
	s.state.FocusIndex = next
	return Outcome{Target: TargetResult, Index: next}
}

func (s *Service) moveUp() Outcome {
	prev := s.state.FocusIndex - 1
	if prev == -1 {
		return s.FocusInput()
	}
	if !s.state.ValidIndex(prev) {
		return Outcome{Target: TargetNone, Index: s.state.FocusIndex}
	}
	s.state.FocusIndex = prev
	return Outcome{Target: TargetResult, Index: prev}
}

// SetHandles records where each result was rendered, in result order
func (s *Service) SetHandles(handles []Handle) {
	s.handles = handles
}

// IndexAtRow maps a screen row back to the result rendered there
func (s *Service) IndexAtRow(row int) (int, bool) {
	for _, h := range s.handles {
		if row >= h.Row && row < h.Row+h.Rows {
			return h.Index, true
		}
	}
	return -1, false
}
