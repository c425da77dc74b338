package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"issuegrip/internal/ui/input/keys"
	"issuegrip/internal/ui/input/types"
)

// IdleMode is active while focus is outside the widget. It consumes only
// application keys; everything else, "/" included, goes to the key bus.
type IdleMode struct {
	keys keys.KeyMap
}

func NewIdleMode(km keys.KeyMap) *IdleMode {
	return &IdleMode{keys: km}
}

func (m *IdleMode) Name() string {
	return "idle"
}

func (m *IdleMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, false
}
