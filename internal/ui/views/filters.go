package views

import (
	"strings"

	"issuegrip/internal/domain"
	"issuegrip/internal/ui/services/filters"
)

// FilterPanelState is what the filter panel needs to render
type FilterPanelState struct {
	Filters    domain.FilterState
	Focused    bool
	Field      filters.Field
	LimitView  string // rendered limit text input
	LabelsView string // rendered labels text input
}

// FilterRenderer renders the filter panel
type FilterRenderer struct {
	styles *Styles
}

// NewFilterRenderer creates a new filter panel renderer
func NewFilterRenderer(styles *Styles) *FilterRenderer {
	return &FilterRenderer{styles: styles}
}

// Render draws the panel as a bordered box with one row per field
func (r *FilterRenderer) Render(s FilterPanelState) string {
	stateValue := "(•) open  ( ) closed"
	if s.Filters.State == domain.IssueClosed {
		stateValue = "( ) open  (•) closed"
	}

	rows := []string{
		r.label(s, filters.FieldState, "State") + stateValue,
		r.label(s, filters.FieldLimit, "Limit") + s.LimitView,
		r.label(s, filters.FieldLabels, "Labels") + s.LabelsView,
	}
	return r.styles.FilterBox.Render(strings.Join(rows, "\n"))
}

func (r *FilterRenderer) label(s FilterPanelState, field filters.Field, text string) string {
	if s.Focused && s.Field == field {
		return r.styles.FilterFocused.Render(text)
	}
	return r.styles.FilterLabel.Render(text)
}
