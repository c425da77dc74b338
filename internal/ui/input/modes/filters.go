package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"issuegrip/internal/ui/input/keys"
	"issuegrip/internal/ui/input/types"
	"issuegrip/internal/ui/services/filters"
)

// FiltersMode is active while a filter panel field has focus. Text keys on
// the limit and labels fields fall through to the handler's field inputs;
// on the state select they go to the key bus.
type FiltersMode struct {
	keys keys.KeyMap
}

func NewFiltersMode(km keys.KeyMap) *FiltersMode {
	return &FiltersMode{keys: km}
}

func (m *FiltersMode) Name() string {
	return "filters"
}

func (m *FiltersMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Dismiss):
		return []types.Action{types.FocusInputAction{}}, true
	case key.Matches(msg, m.keys.NextField):
		return []types.Action{types.FilterFieldAction{Direction: "next"}}, true
	case key.Matches(msg, m.keys.PrevField):
		return []types.Action{types.FilterFieldAction{Direction: "prev"}}, true
	}

	if ctx.FilterField() == filters.FieldState {
		if key.Matches(msg, m.keys.Toggle) {
			return []types.Action{types.ToggleStateAction{}}, true
		}
	}
	return nil, false
}
