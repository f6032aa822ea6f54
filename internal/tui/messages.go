package tui

import "github.com/mmcdole/popcorn/internal/service"

// Message types for the TUI

// SearchDoneMsg carries a finished search back to the event loop
type SearchDoneMsg struct {
	Outcome service.SearchOutcome
}

// DetailLoadedMsg carries a finished detail fetch back to the event loop
type DetailLoadedMsg struct {
	Outcome service.DetailOutcome
}

// CloseDetailMsg closes the open movie
type CloseDetailMsg struct{}

// FocusSearchMsg moves focus to the search bar and clears the query
type FocusSearchMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
