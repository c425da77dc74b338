package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"issuegrip/internal/ui/input/keys"
	"issuegrip/internal/ui/input/types"
)

// InputMode is active while the search input has focus. Navigation keys are
// consumed here so they never reach the text field.
type InputMode struct {
	keys keys.KeyMap
}

func NewInputMode(km keys.KeyMap) *InputMode {
	return &InputMode{keys: km}
}

func (m *InputMode) Name() string {
	return "search"
}

func (m *InputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Select):
		return []types.Action{types.SelectAction{}}, true
	case key.Matches(msg, m.keys.Dismiss):
		return []types.Action{
			types.DismissAction{},
			types.ChangeModeAction{Mode: types.ModeIdle},
		}, true
	case key.Matches(msg, m.keys.NextField):
		if !ctx.FilterPanelEnabled() {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilters}}, true
	}
	// The handler types everything else into the search field
	return nil, false
}
