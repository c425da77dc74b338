package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"issuegrip/internal/domain"
	"issuegrip/internal/ui/input/keys"
)

// HelpRenderer renders the pager pages: the key reference and issue previews
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	faint   lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		faint: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

type helpSection struct {
	name     string
	bindings []key.Binding
}

// RenderHelp generates the key reference for the pager
func (r *HelpRenderer) RenderHelp(km keys.KeyMap, filterPanel bool) string {
	sections := []helpSection{
		{"Search", []key.Binding{km.Focus, km.Down, km.Dismiss}},
		{"Results", []key.Binding{km.Up, km.Down, km.Select, km.Preview}},
	}
	if filterPanel {
		sections = append(sections, helpSection{"Filters", []key.Binding{km.NextField, km.PrevField, km.Toggle}})
	}
	sections = append(sections, helpSection{"Other", []key.Binding{km.Help, km.Quit, km.ForceQuit}})

	var help strings.Builder
	help.WriteString(r.title.Render("issuegrip Help"))
	help.WriteString("\n")

	for _, s := range sections {
		help.WriteString(r.section.Render(s.name))
		help.WriteString("\n")
		for _, b := range s.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s  %s\n", r.key.Render(fmt.Sprintf("%-10s", h.Key)), r.desc.Render(h.Desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(r.faint.Render(`  Labels are comma separated; each becomes a label:"name" qualifier.`))
	return help.String()
}

// RenderPreview generates the pager page for one issue
func (r *HelpRenderer) RenderPreview(issue domain.Issue, now time.Time) string {
	var page strings.Builder
	page.WriteString(r.title.Render(fmt.Sprintf("#%d %s", issue.Number, issue.Title)))
	page.WriteString("\n")

	meta := fmt.Sprintf("%s · opened %s by %s · %d comments",
		issue.State,
		humanize.RelTime(issue.CreatedAt, now, "ago", "from now"),
		issue.Author,
		issue.Comments)
	page.WriteString(r.faint.Render(meta))
	page.WriteString("\n")

	if len(issue.Labels) > 0 {
		names := make([]string, 0, len(issue.Labels))
		for _, l := range issue.Labels {
			names = append(names, l.Name)
		}
		page.WriteString(r.key.Render(strings.Join(names, ", ")))
		page.WriteString("\n")
	}
	page.WriteString(r.faint.Render(issue.URL))
	page.WriteString("\n\n")

	body := strings.TrimSpace(issue.Body)
	if body == "" {
		body = "No description provided."
	}
	page.WriteString(body)
	page.WriteString("\n")
	return page.String()
}
