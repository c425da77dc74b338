package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"issuegrip/internal/ui/services/filters"
)

// Mode represents where keyboard focus currently is
type Mode int

const (
	ModeIdle    Mode = iota // focus is outside the widget
	ModeInput               // the search input has focus
	ModeResults             // a result row has focus
	ModeFilters             // a filter panel field has focus
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeInput:
		return "input"
	case ModeResults:
		return "results"
	case ModeFilters:
		return "filters"
	}
	return "unknown"
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	FocusIndex() int
	HasResults() bool
	FilterPanelEnabled() bool
	FilterField() filters.Field
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether the
	// key was consumed. Unconsumed keys fall through to the focused text
	// field or, failing that, to the global key subscription.
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Name returns the mode name for display
	Name() string
}
