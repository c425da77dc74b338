package ui

// openedMsg reports the outcome of handing an issue URL to the browser
type openedMsg struct {
	url string
	err error
}

// pagerDoneMsg is sent when the pager returns control to the widget
type pagerDoneMsg struct {
	err error
}
