package types

import "issuegrip/internal/ui/services/filters"

// Navigation actions
type NavigateAction struct {
	Direction string // "up" or "down"
}

func (a NavigateAction) Type() string { return "navigate" }

// SelectAction opens the focused result
type SelectAction struct{}

func (a SelectAction) Type() string { return "select" }

// PreviewAction pages the focused result's body
type PreviewAction struct{}

func (a PreviewAction) Type() string { return "preview" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// FocusInputAction returns focus to the search input, revealing any results
type FocusInputAction struct{}

func (a FocusInputAction) Type() string { return "focus_input" }

// UpdateTermAction carries the search input's new value
type UpdateTermAction struct {
	Term string
}

func (a UpdateTermAction) Type() string { return "update_term" }

// DismissAction is an interaction outside the widget: hide the results
type DismissAction struct{}

func (a DismissAction) Type() string { return "dismiss" }

// Filter panel actions
type FilterFieldAction struct {
	Direction string // "next" or "prev"
}

func (a FilterFieldAction) Type() string { return "filter_field" }

type ToggleStateAction struct{}

func (a ToggleStateAction) Type() string { return "toggle_state" }

type UpdateFilterAction struct {
	Field filters.Field
	Text  string
}

func (a UpdateFilterAction) Type() string { return "update_filter" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
