package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/popcorn/internal/service"
)

// Command factories for async operations

// SearchCmd runs req off the event loop. The service's own request context
// bounds it; a newer query cancels it.
func SearchCmd(svc *service.SearchService, req service.SearchRequest) tea.Cmd {
	return func() tea.Msg {
		return SearchDoneMsg{Outcome: svc.Execute(req)}
	}
}

// LoadDetailCmd fetches the detail record for req
func LoadDetailCmd(svc *service.DetailService, req service.DetailRequest) tea.Cmd {
	return func() tea.Msg {
		return DetailLoadedMsg{Outcome: svc.Execute(req)}
	}
}

// OpenURLCmd opens url in the browser; failures surface in the status line
func OpenURLCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return StatusMsg{Message: "Could not open browser: " + err.Error(), IsError: true}
		}
		return StatusMsg{Message: "Opened " + url}
	}
}

// StatusCmd shows a status message
func StatusCmd(message string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isError}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
