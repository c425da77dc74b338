package ui

import (
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// BrowserEnv overrides the platform URL opener, e.g. "firefox --new-tab"
const BrowserEnv = "ISSUEGRIP_BROWSER"

// Navigator leaves the widget: it follows issue links and pages long text
type Navigator interface {
	OpenURL(url string) tea.Cmd
	Page(content string) tea.Cmd
}

// Opener is the terminal Navigator. URLs go to the platform opener and
// text is shown in the ov pager while the program gives up the terminal.
type Opener struct {
	browser string
	goos    string
}

// NewOpener creates an opener for the current platform
func NewOpener() *Opener {
	return &Opener{
		browser: os.Getenv(BrowserEnv),
		goos:    runtime.GOOS,
	}
}

// OpenURL starts the browser on url without waiting for it to exit
func (o *Opener) OpenURL(url string) tea.Cmd {
	return func() tea.Msg {
		cmd := o.command(url)
		if err := cmd.Start(); err != nil {
			return openedMsg{url: url, err: err}
		}
		go func() { _ = cmd.Wait() }()
		return openedMsg{url: url}
	}
}

func (o *Opener) command(url string) *exec.Cmd {
	if fields := strings.Fields(o.browser); len(fields) > 0 {
		return exec.Command(fields[0], append(fields[1:], url)...)
	}
	switch o.goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// Page shows content in the pager. Bubble Tea releases the terminal for the
// duration and restores it afterwards.
func (o *Opener) Page(content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return pagerDoneMsg{err: err}
	})
}

// pagerCommand runs ov as a tea.ExecCommand. ov opens the tty itself, so
// the standard streams handed over by Bubble Tea are not used.
type pagerCommand struct {
	content string
}

func (p *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}

	// Leave nothing behind on the widget's screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func (p *pagerCommand) SetStdin(io.Reader)  {}
func (p *pagerCommand) SetStdout(io.Writer) {}
func (p *pagerCommand) SetStderr(io.Writer) {}
