package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"issuegrip/internal/domain"
)

// IssueRenderer handles rendering of result rows
type IssueRenderer struct {
	styles *Styles
}

// NewIssueRenderer creates a new issue renderer
func NewIssueRenderer(styles *Styles) *IssueRenderer {
	return &IssueRenderer{styles: styles}
}

// RenderIssue renders one result card: title line, meta line and, when the
// issue has labels, a chip line
func (r *IssueRenderer) RenderIssue(issue domain.Issue, focused bool, width int, now time.Time) string {
	cursor := "  "
	if focused {
		cursor = r.styles.Cursor.Render("▌ ")
	}

	icon := r.styles.OpenIcon.Render("●")
	if !issue.IsOpen() {
		icon = r.styles.ClosedIcon.Render("✓")
	}

	comments := ""
	commentsWidth := 0
	if issue.Comments > 0 {
		text := fmt.Sprintf("  💬 %d", issue.Comments)
		commentsWidth = runewidth.StringWidth(text)
		comments = r.styles.Comments.Render(text)
	}

	// cursor, icon and a space take 4 cells
	titleWidth := width - 4 - commentsWidth
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := runewidth.Truncate(issue.Title, titleWidth, "…")
	titleStyle := r.styles.IssueTitle
	if focused {
		titleStyle = titleStyle.Inherit(r.styles.Highlight)
	}

	lines := []string{
		cursor + icon + " " + titleStyle.Render(title) + comments,
		"    " + r.styles.IssueMeta.Render(r.meta(issue, now)),
	}
	if chips := r.renderLabels(issue.Labels); chips != "" {
		lines = append(lines, "    "+chips)
	}
	return strings.Join(lines, "\n")
}

func (r *IssueRenderer) meta(issue domain.Issue, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d opened %s", issue.Number, humanize.RelTime(issue.CreatedAt, now, "ago", "from now"))
	if issue.Author != "" {
		fmt.Fprintf(&b, " by %s", issue.Author)
	}
	if !issue.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, " · updated %s", humanize.RelTime(issue.UpdatedAt, now, "ago", "from now"))
	}
	return b.String()
}

func (r *IssueRenderer) renderLabels(labels []domain.Label) string {
	chips := make([]string, 0, len(labels))
	for _, l := range labels {
		chips = append(chips, LabelChip(l.Color, l.TextColor()).Render(l.Name))
	}
	return strings.Join(chips, " ")
}
