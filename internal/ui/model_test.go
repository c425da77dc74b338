package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuegrip/internal/config"
	"issuegrip/internal/domain"
	"issuegrip/internal/eventbus"
	"issuegrip/internal/issues"
	"issuegrip/internal/issues/mocks"
	"issuegrip/internal/logging"
	inputtypes "issuegrip/internal/ui/input/types"
	"issuegrip/internal/ui/services/search"
)

type fakeNavigator struct {
	opened []string
	pages  []string
}

func (n *fakeNavigator) OpenURL(url string) tea.Cmd {
	n.opened = append(n.opened, url)
	return func() tea.Msg { return openedMsg{url: url} }
}

func (n *fakeNavigator) Page(content string) tea.Cmd {
	n.pages = append(n.pages, content)
	return func() tea.Msg { return pagerDoneMsg{} }
}

func sampleIssues() []domain.Issue {
	return []domain.Issue{
		{ID: 1, Number: 11, Title: "Crash on save", URL: "https://example.test/issues/11", State: domain.IssueOpen, Body: "Stack trace attached"},
		{ID: 2, Number: 12, Title: "Crash on load", URL: "https://example.test/issues/12", State: domain.IssueOpen},
	}
}

type harness struct {
	t        *testing.T
	m        *Model
	searcher *mocks.MockSearcher
	nav      *fakeNavigator
	bus      eventbus.EventBus
	quit     bool
}

func newHarness(t *testing.T, filterPanel bool) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockSearcher(ctrl)
	searcher.EXPECT().Backend().Return("proxy").AnyTimes()

	cfg := &config.Config{
		ShowFilterPanel: filterPanel,
		Filters:         config.FilterConfig{State: "open", Limit: 3},
	}
	bus := eventbus.New(logging.Discard())
	nav := &fakeNavigator{}
	m := NewModel(cfg, searcher, bus, nav, logging.Discard())
	m.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	h := &harness{t: t, m: m, searcher: searcher, nav: nav, bus: bus}
	h.run(m.Init())
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

// resolve runs a command, abandoning ones that sleep (cursor blink, spinner)
func resolve(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(50 * time.Millisecond):
		return nil, false
	}
}

// run executes cmd and feeds the widget's own messages back until it settles
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg, ok := resolve(next)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			h.quit = true
		case search.DebounceMsg, search.ResultMsg, openedMsg, pagerDoneMsg:
			_, c := h.m.Update(msg)
			queue = append(queue, c)
		}
	}
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	_, cmd := h.m.Update(msg)
	h.run(cmd)
}

func (h *harness) press(keys ...tea.KeyType) {
	h.t.Helper()
	for _, k := range keys {
		h.send(tea.KeyMsg{Type: k})
	}
}

// typeText types every rune before running any command, so only the last
// debounce window fires
func (h *harness) typeText(text string) {
	h.t.Helper()
	var msgs []tea.KeyMsg
	for _, r := range text {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	h.burst(msgs...)
}

func (h *harness) burst(msgs ...tea.KeyMsg) {
	h.t.Helper()
	var cmds []tea.Cmd
	for _, msg := range msgs {
		_, cmd := h.m.Update(msg)
		cmds = append(cmds, cmd)
	}
	h.run(tea.Batch(cmds...))
}

func (h *harness) click(y int) {
	h.t.Helper()
	h.send(tea.MouseMsg{X: 5, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) searchFor(term string, found []domain.Issue) {
	h.t.Helper()
	h.searcher.EXPECT().
		Search(gomock.Any(), issues.Query{Term: term}).
		Return(found, nil)
	h.typeText(term)
	require.Equal(h.t, term, h.m.State().Search.Term)
}

func TestInitFocusesInput(t *testing.T) {
	h := newHarness(t, false)
	assert.Equal(t, inputtypes.ModeInput, h.m.Mode())
	assert.True(t, h.m.mounted)
	assert.Equal(t, -1, h.m.State().Search.FocusIndex)
}

func TestTypingDebouncesIntoOneSearch(t *testing.T) {
	h := newHarness(t, false)
	h.searchFor("crash", sampleIssues())

	s := h.m.State().Search
	assert.False(t, s.Loading)
	assert.True(t, s.ResultsVisible)
	assert.Len(t, s.Results, 2)
	assert.Equal(t, -1, s.FocusIndex)
}

func TestKeyboardNavigationOpensFocusedIssue(t *testing.T) {
	h := newHarness(t, false)
	h.searchFor("crash", sampleIssues())

	var opened []string
	h.bus.Subscribe(domain.EventIssueOpened, func(e domain.DomainEvent) {
		opened = append(opened, e.(domain.IssueOpenedEvent).URL)
	})

	h.press(tea.KeyDown)
	assert.Equal(t, inputtypes.ModeResults, h.m.Mode())
	assert.Equal(t, 0, h.m.State().Search.FocusIndex)

	h.press(tea.KeyDown, tea.KeyDown)
	assert.Equal(t, 1, h.m.State().Search.FocusIndex, "no wraparound past the last result")

	h.press(tea.KeyUp, tea.KeyUp)
	assert.Equal(t, -1, h.m.State().Search.FocusIndex)
	assert.Equal(t, inputtypes.ModeInput, h.m.Mode())

	h.press(tea.KeyEnter)
	assert.Empty(t, h.nav.opened, "enter on the input opens nothing")

	h.press(tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	assert.Equal(t, []string{"https://example.test/issues/12"}, h.nav.opened)
	assert.Equal(t, []string{"https://example.test/issues/12"}, opened)
	assert.Contains(t, h.m.State().StatusMessage, "issues/12")

	// Navigation keys never reach the text field
	assert.Equal(t, "crash", h.m.inputHandler.SearchInput().Value())
}

func TestSlashShortcutFocusesInput(t *testing.T) {
	h := newHarness(t, false)
	h.searchFor("crash", sampleIssues())

	h.press(tea.KeyEsc)
	require.Equal(t, inputtypes.ModeIdle, h.m.Mode())
	assert.False(t, h.m.State().Search.ResultsVisible)
	assert.Len(t, h.m.State().Search.Results, 2, "dismiss keeps the results")

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	assert.Equal(t, inputtypes.ModeInput, h.m.Mode())
	assert.True(t, h.m.State().Search.ResultsVisible)
	assert.Equal(t, "crash", h.m.inputHandler.SearchInput().Value(), "the shortcut is not typed")
}

func TestSlashShortcutFromResults(t *testing.T) {
	h := newHarness(t, false)
	h.searchFor("crash", sampleIssues())

	h.press(tea.KeyDown, tea.KeyDown)
	require.Equal(t, 1, h.m.State().Search.FocusIndex)

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	assert.Equal(t, inputtypes.ModeInput, h.m.Mode())
	assert.Equal(t, -1, h.m.State().Search.FocusIndex)
}

func TestUnmountReleasesShortcut(t *testing.T) {
	h := newHarness(t, false)
	h.press(tea.KeyEsc)
	require.Equal(t, inputtypes.ModeIdle, h.m.Mode())

	h.m.unmount()
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	assert.Equal(t, inputtypes.ModeIdle, h.m.Mode())

	// Mounting again is what brings the shortcut back
	h.m.mount()
	h.m.mount()
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	assert.Equal(t, inputtypes.ModeInput, h.m.Mode())
	assert.Len(t, h.m.unsubscribes, 1)
}

func TestQuitUnmounts(t *testing.T) {
	h := newHarness(t, false)
	h.press(tea.KeyCtrlC)
	assert.True(t, h.quit)
	assert.False(t, h.m.mounted)
	assert.Empty(t, h.m.unsubscribes)
}

func TestSearchFailureLeavesEmptyState(t *testing.T) {
	h := newHarness(t, false)
	h.searcher.EXPECT().
		Search(gomock.Any(), issues.Query{Term: "crash"}).
		Return(nil, errors.New("boom"))
	h.typeText("crash")

	s := h.m.State().Search
	assert.False(t, s.Loading)
	assert.False(t, s.ResultsVisible)
	assert.Empty(t, s.Results)
	assert.Empty(t, h.m.State().StatusMessage, "search errors are not shown")
}

func TestClearingTermResets(t *testing.T) {
	h := newHarness(t, false)
	h.searchFor("ab", sampleIssues())

	h.burst(tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	s := h.m.State().Search
	assert.Empty(t, s.Term)
	assert.Empty(t, s.Results)
	assert.False(t, s.Loading)
	assert.False(t, s.ResultsVisible)
}

func TestMouseInteractions(t *testing.T) {
	h := newHarness(t, false)
	h.searchFor("crash", sampleIssues())
	h.m.View()

	// Row 0 is container padding, outside the widget
	h.click(0)
	assert.Equal(t, inputtypes.ModeIdle, h.m.Mode())
	assert.False(t, h.m.State().Search.ResultsVisible)

	h.click(h.m.layout.InputRow)
	assert.Equal(t, inputtypes.ModeInput, h.m.Mode())
	assert.True(t, h.m.State().Search.ResultsVisible)

	h.m.View()
	require.Len(t, h.m.layout.Results, 2)
	second := h.m.layout.Results[1]

	h.click(second.Row + second.Rows - 1)
	assert.Equal(t, inputtypes.ModeResults, h.m.Mode())
	assert.Equal(t, 1, h.m.State().Search.FocusIndex)
	assert.Empty(t, h.nav.opened)

	h.click(second.Row)
	assert.Equal(t, []string{"https://example.test/issues/12"}, h.nav.opened)
}

func TestPreviewPagesFocusedIssue(t *testing.T) {
	h := newHarness(t, false)
	h.searchFor("crash", sampleIssues())

	h.press(tea.KeyDown)
	h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	require.Len(t, h.nav.pages, 1)
	assert.Contains(t, h.nav.pages[0], "Crash on save")
	assert.Contains(t, h.nav.pages[0], "Stack trace attached")
}

func TestHelpOpensPager(t *testing.T) {
	h := newHarness(t, false)
	h.press(tea.KeyEsc)
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	require.Len(t, h.nav.pages, 1)
	assert.Contains(t, h.nav.pages[0], "issuegrip Help")
	assert.NotContains(t, h.nav.pages[0], "Filters")
}

func TestFilterChangeRerunsSearch(t *testing.T) {
	h := newHarness(t, true)

	open := issues.NewQuery("crash", domain.FilterState{State: domain.IssueOpen, Limit: 3})
	closed := issues.NewQuery("crash", domain.FilterState{State: domain.IssueClosed, Limit: 3})
	gomock.InOrder(
		h.searcher.EXPECT().Search(gomock.Any(), open).Return(sampleIssues(), nil),
		h.searcher.EXPECT().Search(gomock.Any(), closed).Return(sampleIssues()[:1], nil),
	)

	h.typeText("crash")
	require.Len(t, h.m.State().Search.Results, 2)

	h.press(tea.KeyTab)
	require.Equal(t, inputtypes.ModeFilters, h.m.Mode())

	h.press(tea.KeyRight)
	assert.Equal(t, domain.IssueClosed, h.m.State().Filters.State)
	assert.Len(t, h.m.State().Search.Results, 1)

	// Shift+Tab past the first field returns to the input
	h.press(tea.KeyShiftTab)
	assert.Equal(t, inputtypes.ModeInput, h.m.Mode())
}

func TestEscFromFilterPanelRevealsResults(t *testing.T) {
	h := newHarness(t, true)
	h.searcher.EXPECT().
		Search(gomock.Any(), issues.NewQuery("crash", domain.FilterState{State: domain.IssueOpen, Limit: 3})).
		Return(sampleIssues(), nil)
	h.typeText("crash")
	h.m.View()

	require.NotEmpty(t, h.m.layout.FilterRows)
	h.click(h.m.layout.FilterRows[0])
	require.Equal(t, inputtypes.ModeFilters, h.m.Mode())
	require.False(t, h.m.State().Search.ResultsVisible)

	h.press(tea.KeyEsc)
	s := h.m.State().Search
	assert.Equal(t, inputtypes.ModeInput, h.m.Mode())
	assert.True(t, s.ResultsVisible)
	assert.Equal(t, -1, s.FocusIndex)

	// The first row is on screen again before Enter can open it
	h.press(tea.KeyDown, tea.KeyEnter)
	assert.Equal(t, []string{"https://example.test/issues/11"}, h.nav.opened)
}

func TestFilterLimitField(t *testing.T) {
	h := newHarness(t, true)

	h.press(tea.KeyTab, tea.KeyTab)
	require.Equal(t, inputtypes.ModeFilters, h.m.Mode())

	// Rejected values keep the last valid limit; no term means no request
	h.press(tea.KeyBackspace)
	assert.Equal(t, 3, h.m.State().Filters.Limit)

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7")})
	assert.Equal(t, 7, h.m.State().Filters.Limit)
	assert.False(t, h.m.State().Search.Loading)
}

func TestTabIgnoredWithoutFilterPanel(t *testing.T) {
	h := newHarness(t, false)
	h.press(tea.KeyTab)
	assert.Equal(t, inputtypes.ModeInput, h.m.Mode())
}
