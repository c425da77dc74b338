package input

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"issuegrip/internal/domain"
	"issuegrip/internal/ui/input/keys"
	"issuegrip/internal/ui/input/modes"
	"issuegrip/internal/ui/input/types"
	"issuegrip/internal/ui/services/filters"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        keys.KeyMap

	search *textinput.Model // the widget's search field
	limit  *textinput.Model // filter panel numeric field
	labels *textinput.Model // filter panel label field
}

func New(km keys.KeyMap) *Handler {
	search := textinput.New()
	search.Placeholder = "Search issues"
	search.Prompt = "🔍 "

	limit := textinput.New()
	limit.Prompt = ""
	limit.CharLimit = 4
	limit.Width = 4

	labels := textinput.New()
	labels.Prompt = ""
	labels.Placeholder = "bug,ui"
	labels.Width = 24

	h := &Handler{
		currentMode: types.ModeIdle,
		modes:       make(map[types.Mode]types.ModeHandler),
		keys:        km,
		search:      &search,
		limit:       &limit,
		labels:      &labels,
	}

	// Register all mode handlers
	h.modes[types.ModeIdle] = modes.NewIdleMode(km)
	h.modes[types.ModeInput] = modes.NewInputMode(km)
	h.modes[types.ModeResults] = modes.NewResultsMode(km)
	h.modes[types.ModeFilters] = modes.NewFiltersMode(km)

	return h
}

// HandleKey routes a key to the current mode. Keys the mode does not consume
// are typed into the focused text field, if any. The final bool reports
// whether anything consumed the key.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd, bool) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil, false
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmds []tea.Cmd
	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			cmds = append(cmds, h.ChangeMode(changeMode.Mode))
			if changeMode.Mode == types.ModeFilters {
				cmds = append(cmds, h.FocusFilterField(ctx.FilterField()))
			}
			continue
		}
		allActions = append(allActions, action)
	}

	if !consumed {
		if action, cmd, ok := h.updateField(msg, ctx); ok {
			consumed = true
			cmds = append(cmds, cmd)
			if action != nil {
				allActions = append(allActions, action)
			}
		}
	}

	return allActions, tea.Batch(cmds...), consumed
}

// updateField types msg into the text field that has focus
func (h *Handler) updateField(msg tea.KeyMsg, ctx types.Context) (types.Action, tea.Cmd, bool) {
	switch h.currentMode {
	case types.ModeInput:
		before := h.search.Value()
		var cmd tea.Cmd
		*h.search, cmd = h.search.Update(msg)
		if after := h.search.Value(); after != before {
			return types.UpdateTermAction{Term: after}, cmd, true
		}
		return nil, cmd, true

	case types.ModeFilters:
		var field *textinput.Model
		switch ctx.FilterField() {
		case filters.FieldLimit:
			field = h.limit
		case filters.FieldLabels:
			field = h.labels
		default:
			return nil, nil, false
		}
		before := field.Value()
		var cmd tea.Cmd
		*field, cmd = field.Update(msg)
		if after := field.Value(); after != before {
			return types.UpdateFilterAction{Field: ctx.FilterField(), Text: after}, cmd, true
		}
		return nil, cmd, true
	}
	return nil, nil, false
}

// ChangeMode moves keyboard focus. Field values survive focus changes.
func (h *Handler) ChangeMode(mode types.Mode) tea.Cmd {
	h.currentMode = mode
	h.search.Blur()
	h.limit.Blur()
	h.labels.Blur()
	if mode == types.ModeInput {
		return h.search.Focus()
	}
	return nil
}

// FocusFilterField focuses the text input backing a filter field, if it has one
func (h *Handler) FocusFilterField(field filters.Field) tea.Cmd {
	h.limit.Blur()
	h.labels.Blur()
	if h.currentMode != types.ModeFilters {
		return nil
	}
	switch field {
	case filters.FieldLimit:
		return h.limit.Focus()
	case filters.FieldLabels:
		return h.labels.Focus()
	}
	return nil
}

// SetFilterValues seeds the filter text fields
func (h *Handler) SetFilterValues(f domain.FilterState) {
	h.limit.SetValue(strconv.Itoa(f.Limit))
	h.labels.SetValue(f.Labels)
}

// Update handles non-keyboard messages (cursor blink) for the focused field
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, ti := range []*textinput.Model{h.search, h.limit, h.labels} {
		if !ti.Focused() {
			continue
		}
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// CurrentMode returns the current input mode
func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeIdle
	}
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if handler := h.modes[h.currentMode]; handler != nil {
		return handler.Name()
	}
	return ""
}

// Keys returns the key bindings
func (h *Handler) Keys() keys.KeyMap {
	return h.keys
}

// SearchInput returns the search field
func (h *Handler) SearchInput() *textinput.Model {
	return h.search
}

// LimitInput returns the filter panel limit field
func (h *Handler) LimitInput() *textinput.Model {
	return h.limit
}

// LabelsInput returns the filter panel labels field
func (h *Handler) LabelsInput() *textinput.Model {
	return h.labels
}
