package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"issuegrip/internal/config"
	"issuegrip/internal/domain"
	"issuegrip/internal/eventbus"
	"issuegrip/internal/issues"
	"issuegrip/internal/ui/input"
	"issuegrip/internal/ui/input/keys"
	inputtypes "issuegrip/internal/ui/input/types"
	"issuegrip/internal/ui/services/filters"
	"issuegrip/internal/ui/services/navigation"
	"issuegrip/internal/ui/services/search"
	"issuegrip/internal/ui/state"
	"issuegrip/internal/ui/views"
)

// Model is the search widget
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state
	logger *slog.Logger

	help    help.Model
	spinner spinner.Model
	layout  views.Layout // positions from the last render, for mouse hit-testing
	now     func() time.Time

	// Services
	searchSvc    *search.Service
	navSvc       *navigation.Service
	filterSvc    *filters.Service
	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	navigator    Navigator

	// Bus subscriptions held while the widget is mounted
	mounted        bool
	unsubscribes   []func()
	focusRequested bool
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, searcher issues.Searcher, bus eventbus.EventBus, navigator Navigator, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	m := &Model{
		bus:          bus,
		config:       cfg,
		logger:       logger,
		help:         help.New(),
		spinner:      s,
		now:          time.Now,
		navigator:    navigator,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(keys.DefaultKeyMap()),
	}

	// The filter service normalizes the configured filters
	m.filterSvc = filters.NewService(cfg.FilterState(), m.onFiltersChanged)
	m.state = state.NewAppState(m.filterSvc.Filters())
	m.inputHandler.SetFilterValues(m.state.Filters)

	m.searchSvc = search.NewService(m.state.Search, searcher, bus, logger, search.Options{
		Debounce:   cfg.Debounce,
		MaxResults: cfg.MaxResults,
		Timeout:    cfg.RequestTimeout,
		UseFilters: cfg.ShowFilterPanel,
	}, m.state.Filters)
	m.navSvc = navigation.NewService(m.state.Search)

	return m
}

// Init mounts the widget and focuses the search input
func (m *Model) Init() tea.Cmd {
	m.mount()
	return tea.Batch(m.focusInput(), m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, m.handleNonKeyboardMsg(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.state.StatusMessage = ""
	before := m.inputHandler.CurrentMode()

	actions, cmd, consumed := m.inputHandler.HandleKey(msg, modelContext{m})
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}

	// Keys nothing consumed are global: they go to the bus subscribers
	if !consumed {
		m.focusRequested = false
		m.bus.Publish(domain.KeyPressedEvent{
			Key:          msg.String(),
			InputFocused: m.inputHandler.CurrentMode() == inputtypes.ModeInput,
		})
		if m.focusRequested {
			m.focusRequested = false
			cmds = append(cmds, m.focusInput())
		}
	}

	if m.inputHandler.CurrentMode() != before {
		m.logger.Debug("focus moved", "key", msg.String(), "mode", m.inputHandler.ModeName())
	}
	return tea.Batch(cmds...)
}

// processAction executes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch action := action.(type) {
	case inputtypes.NavigateAction:
		return m.applyOutcome(m.navSvc.Navigate(navigation.Direction(action.Direction)))

	case inputtypes.SelectAction:
		outcome := m.navSvc.Select()
		if outcome.URL == "" {
			return nil
		}
		m.logger.Info("opening issue", "url", outcome.URL)
		return m.navigator.OpenURL(outcome.URL)

	case inputtypes.PreviewAction:
		issue, ok := m.state.Search.FocusedIssue()
		if !ok {
			return nil
		}
		return m.navigator.Page(m.helpRenderer.RenderPreview(issue, m.now()))

	case inputtypes.UpdateTermAction:
		return m.searchSvc.OnTermChange(action.Term)

	case inputtypes.FocusInputAction:
		return m.focusInput()

	case inputtypes.DismissAction:
		m.searchSvc.Dismiss()
		return nil

	case inputtypes.FilterFieldAction:
		var moved bool
		if action.Direction == "prev" {
			moved = m.filterSvc.Prev()
		} else {
			moved = m.filterSvc.Next()
		}
		if !moved {
			return m.focusInput()
		}
		return m.inputHandler.FocusFilterField(m.filterSvc.Focused())

	case inputtypes.ToggleStateAction:
		return m.filterSvc.ToggleState()

	case inputtypes.UpdateFilterAction:
		switch action.Field {
		case filters.FieldLimit:
			return m.filterSvc.SetLimitText(action.Text)
		case filters.FieldLabels:
			return m.filterSvc.SetLabels(action.Text)
		}
		return nil

	case inputtypes.ToggleHelpAction:
		return m.navigator.Page(m.helpRenderer.RenderHelp(m.inputHandler.Keys(), m.config.ShowFilterPanel))

	case inputtypes.QuitAction:
		m.unmount()
		return tea.Quit
	}
	return nil
}

// applyOutcome moves UI focus to wherever a navigation step landed
func (m *Model) applyOutcome(outcome navigation.Outcome) tea.Cmd {
	switch outcome.Target {
	case navigation.TargetResult:
		if m.inputHandler.CurrentMode() != inputtypes.ModeResults {
			return m.inputHandler.ChangeMode(inputtypes.ModeResults)
		}
	case navigation.TargetInput:
		return m.inputHandler.ChangeMode(inputtypes.ModeInput)
	}
	return nil
}

// focusInput gives the search input focus and reveals existing results
func (m *Model) focusInput() tea.Cmd {
	m.navSvc.FocusInput()
	m.searchSvc.Reveal()
	return m.inputHandler.ChangeMode(inputtypes.ModeInput)
}

// dismiss handles an interaction outside the widget
func (m *Model) dismiss() tea.Cmd {
	m.searchSvc.Dismiss()
	return m.inputHandler.ChangeMode(inputtypes.ModeIdle)
}

// onFiltersChanged receives the merged filter state from the panel
func (m *Model) onFiltersChanged(f domain.FilterState) tea.Cmd {
	m.state.Filters = f
	return m.searchSvc.SetFilters(f)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if msg.Y == m.layout.InputRow {
		return m.focusInput()
	}

	if m.state.Search.ResultsVisible {
		if index, ok := m.navSvc.IndexAtRow(msg.Y); ok {
			// A second click on the focused row follows its link
			if index == m.navSvc.GetFocusIndex() {
				return m.processAction(inputtypes.SelectAction{})
			}
			return m.applyOutcome(m.navSvc.MoveToIndex(index))
		}
	}

	for i, row := range m.layout.FilterRows {
		if msg.Y != row {
			continue
		}
		m.searchSvc.Dismiss()
		m.filterSvc.Focus(filters.Field(i))
		cmd := m.inputHandler.ChangeMode(inputtypes.ModeFilters)
		return tea.Batch(cmd, m.inputHandler.FocusFilterField(m.filterSvc.Focused()))
	}

	return m.dismiss()
}

// handleNonKeyboardMsg processes non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		return nil

	case search.DebounceMsg:
		return m.searchSvc.HandleDebounce(msg)

	case search.ResultMsg:
		m.searchSvc.HandleResult(msg)
		// Fresh results reset focus; a focused row may no longer exist
		if m.inputHandler.CurrentMode() == inputtypes.ModeResults && m.navSvc.GetFocusIndex() < 0 {
			return m.inputHandler.ChangeMode(inputtypes.ModeInput)
		}
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case openedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to open issue", "url", msg.url, "error", msg.err)
			m.state.StatusMessage = fmt.Sprintf("Could not open %s: %v", msg.url, msg.err)
			return nil
		}
		m.bus.Publish(domain.IssueOpenedEvent{URL: msg.url})
		m.state.StatusMessage = "Opened " + msg.url
		return nil

	case pagerDoneMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", "error", msg.err)
			m.state.StatusMessage = fmt.Sprintf("Pager failed: %v", msg.err)
		}
		return nil
	}

	// Cursor blink and other text input housekeeping
	return m.inputHandler.Update(msg)
}

// View renders the UI
func (m *Model) View() string {
	mode := m.inputHandler.CurrentMode()
	ss := m.state.Search

	out, layout := m.renderer.Render(views.ViewState{
		Width:          m.state.Width,
		Height:         m.state.Height,
		InputView:      m.inputHandler.SearchInput().View(),
		InputFocused:   mode == inputtypes.ModeInput,
		Results:        ss.Results,
		ResultsVisible: ss.ResultsVisible,
		FocusIndex:     ss.FocusIndex,
		Loading:        ss.Loading,
		SpinnerView:    m.spinner.View(),

		ShowFilterPanel: m.config.ShowFilterPanel,
		FilterPanel: views.FilterPanelState{
			Filters:    m.state.Filters,
			Focused:    mode == inputtypes.ModeFilters,
			Field:      m.filterSvc.Focused(),
			LimitView:  m.inputHandler.LimitInput().View(),
			LabelsView: m.inputHandler.LabelsInput().View(),
		},

		HelpModel:     m.help,
		KeyMap:        m.inputHandler.Keys(),
		StatusMessage: m.state.StatusMessage,
		Now:           m.now(),
	})

	m.layout = layout
	m.navSvc.SetHandles(layout.Results)
	return out
}

// State returns the application state
func (m *Model) State() *state.AppState {
	return m.state
}

// Mode returns where keyboard focus currently is
func (m *Model) Mode() inputtypes.Mode {
	return m.inputHandler.CurrentMode()
}
