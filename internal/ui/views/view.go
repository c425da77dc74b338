package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"issuegrip/internal/domain"
	"issuegrip/internal/ui/services/navigation"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	InputView      string
	InputFocused   bool
	Results        []domain.Issue
	ResultsVisible bool
	FocusIndex     int
	Loading        bool
	SpinnerView    string

	ShowFilterPanel bool
	FilterPanel     FilterPanelState

	HelpModel     help.Model
	KeyMap        help.KeyMap
	StatusMessage string
	Now           time.Time
}

// Layout records where the interactive parts were drawn so mouse events can
// be mapped back to them. Rows are absolute screen rows.
type Layout struct {
	InputRow   int
	FilterRows []int // one row per filter field, in field order
	Results    []navigation.Handle
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	issueRender   *IssueRenderer
	filterRender  *FilterRenderer
	defaultWidth  int
	defaultHeight int
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		issueRender:   NewIssueRenderer(styles),
		filterRender:  NewFilterRenderer(styles),
		defaultWidth:  80,
		defaultHeight: 24,
	}
}

// Render produces the complete view and the layout it was drawn with
func (r *Renderer) Render(state ViewState) (string, Layout) {
	var layout Layout
	width := state.Width
	if width <= 0 {
		width = r.defaultWidth
	}
	height := state.Height
	if height <= 0 {
		height = r.defaultHeight
	}
	contentWidth := width - r.styles.Main.GetHorizontalPadding()

	var blocks []string
	row := r.styles.Main.GetPaddingTop()
	add := func(block string) int {
		start := row
		blocks = append(blocks, block)
		row += lipgloss.Height(block)
		return start
	}

	add(r.renderTitle(state, contentWidth))
	add("")

	if state.ShowFilterPanel {
		top := add(r.filterRender.Render(state.FilterPanel))
		// skip the top border
		layout.FilterRows = []int{top + 1, top + 2, top + 3}
		add("")
	}

	inputStyle := r.styles.InputBox
	if state.InputFocused {
		inputStyle = r.styles.InputFocused
	}
	layout.InputRow = add(inputStyle.Render(state.InputView))

	if state.ResultsVisible {
		for i, issue := range state.Results {
			card := r.issueRender.RenderIssue(issue, i == state.FocusIndex, contentWidth, state.Now)
			start := add(card)
			layout.Results = append(layout.Results, navigation.Handle{
				Index: i,
				Row:   start,
				Rows:  lipgloss.Height(card),
			})
		}
	}

	if state.StatusMessage != "" {
		add("")
		add(r.styles.Status.Render(state.StatusMessage))
	}

	helpText := ""
	if state.KeyMap != nil {
		h := state.HelpModel
		h.Width = contentWidth
		helpText = r.styles.Help.Render(h.View(state.KeyMap))
	}

	content := strings.Join(blocks, "\n")
	if helpText != "" {
		// push help to the bottom, accounting for container padding
		available := height - r.styles.Main.GetVerticalPadding()
		padding := available - lipgloss.Height(content) - lipgloss.Height(helpText)
		if padding > 0 {
			content += strings.Repeat("\n", padding)
		}
		content += "\n" + helpText
	}

	return r.styles.Main.Render(content), layout
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("issuegrip")
	if !state.Loading {
		return logo
	}

	right := r.styles.Loading.Render(fmt.Sprintf("%s Searching", state.SpinnerView))
	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}
