package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	Loading       lipgloss.Style
	OpenIcon      lipgloss.Style
	ClosedIcon    lipgloss.Style
	IssueTitle    lipgloss.Style
	IssueMeta     lipgloss.Style
	Comments      lipgloss.Style
	Cursor        lipgloss.Style
	FilterBox     lipgloss.Style
	FilterLabel   lipgloss.Style
	FilterFocused lipgloss.Style
	InputBox      lipgloss.Style
	InputFocused  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Loading:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		OpenIcon:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		ClosedIcon:  lipgloss.NewStyle().Foreground(lipgloss.Color("141")), // purple
		IssueTitle:  lipgloss.NewStyle().Bold(true),
		IssueMeta:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Comments:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		FilterBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		FilterLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(8),
		FilterFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Width(8),
		InputBox:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		InputFocused:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	}
}

// LabelChip styles a label with its own colour as background and the
// derived text colour on top
func LabelChip(background, text string) lipgloss.Style {
	fg := "#ffffff"
	if text == "black" {
		fg = "#000000"
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Padding(0, 1)
	if background = strings.TrimPrefix(background, "#"); background != "" {
		style = style.Background(lipgloss.Color("#" + background))
	}
	return style
}
