package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"issuegrip/internal/ui/input/keys"
	"issuegrip/internal/ui/input/types"
)

// ResultsMode is active while a result row has focus
type ResultsMode struct {
	keys keys.KeyMap
}

func NewResultsMode(km keys.KeyMap) *ResultsMode {
	return &ResultsMode{keys: km}
}

func (m *ResultsMode) Name() string {
	return "results"
}

func (m *ResultsMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Select):
		return []types.Action{types.SelectAction{}}, true
	case key.Matches(msg, m.keys.Preview):
		return []types.Action{types.PreviewAction{}}, true
	case key.Matches(msg, m.keys.Dismiss):
		return []types.Action{
			types.DismissAction{},
			types.ChangeModeAction{Mode: types.ModeIdle},
		}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	}
	return nil, false
}
