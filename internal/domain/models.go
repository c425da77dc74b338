package domain

import (
	"strconv"
	"strings"
	"time"
)

// IssueState is the open/closed state of an issue
type IssueState string

const (
	IssueOpen   IssueState = "open"
	IssueClosed IssueState = "closed"
)

// Valid reports whether s is one of the known issue states
func (s IssueState) Valid() bool {
	return s == IssueOpen || s == IssueClosed
}

// Issue is a single search result from the issue tracker
type Issue struct {
	ID        int64
	Number    int
	Title     string
	URL       string
	State     IssueState
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Comments  int
	Labels    []Label
	Body      string
}

// IsOpen reports whether the issue is open
func (i Issue) IsOpen() bool {
	return i.State == IssueOpen
}

// Label is a tracker label attached to an issue
type Label struct {
	ID          int64
	Name        string
	Color       string // hex without '#', e.g. "d73a4a"
	Description string
}

// brightnessThreshold splits label backgrounds into light and dark
const brightnessThreshold = 128

// Brightness returns the perceived brightness of the label colour in [0, 255].
// ok is false when any channel has no leading hex digit, including colours
// too short to hold all three channels.
func (l Label) Brightness() (brightness float64, ok bool) {
	hex := strings.TrimPrefix(l.Color, "#")
	var rgb [3]float64
	for i := range rgb {
		start := i * 2
		if start >= len(hex) {
			return 0, false
		}
		end := min(start+2, len(hex))
		v, parsed := parseChannel(hex[start:end])
		if !parsed {
			return 0, false
		}
		rgb[i] = float64(v)
	}
	return (rgb[0]*299 + rgb[1]*587 + rgb[2]*114) / 1000, true
}

// parseChannel reads the leading hex digits of s, ignoring anything after them
func parseChannel(s string) (uint64, bool) {
	n := 0
	for n < len(s) && strings.ContainsRune("0123456789abcdefABCDEF", rune(s[n])) {
		n++
	}
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(s[:n], 16, 8)
	return v, err == nil
}

// TextColor returns "black" for light label backgrounds and "white" for dark
// or unparseable ones
func (l Label) TextColor() string {
	if b, ok := l.Brightness(); ok && b >= brightnessThreshold {
		return "black"
	}
	return "white"
}

// FilterState holds the ancillary query parameters edited in the filter panel
type FilterState struct {
	State  IssueState
	Labels string // comma-separated label names
	Limit  int
}

// DefaultFilterState returns the filters the panel starts with
func DefaultFilterState() FilterState {
	return FilterState{
		State:  IssueOpen,
		Labels: "",
		Limit:  3,
	}
}

// LabelNames splits the comma-separated label filter, dropping empty entries
func (f FilterState) LabelNames() []string {
	var names []string
	for _, part := range strings.Split(f.Labels, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
