package ui

import (
	"issuegrip/internal/ui/input/types"
	"issuegrip/internal/ui/services/filters"
)

// modelContext exposes the model state the mode handlers read
type modelContext struct {
	m *Model
}

var _ types.Context = modelContext{}

func (c modelContext) FocusIndex() int {
	return c.m.navSvc.GetFocusIndex()
}

func (c modelContext) HasResults() bool {
	return c.m.state.Search.HasResults()
}

func (c modelContext) FilterPanelEnabled() bool {
	return c.m.config.ShowFilterPanel
}

func (c modelContext) FilterField() filters.Field {
	return c.m.filterSvc.Focused()
}
