package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// listPane is a filterable list on either side of the screen
type listPane interface {
	Update(msg tea.KeyMsg) tea.Cmd
	IsFilterTyping() bool
	IsFiltering() bool
	ToggleFilter()
	ClearFilter()
}

// collapsible is a pane that can fold to its title line
type collapsible interface {
	ToggleCollapsed()
	IsCollapsed() bool
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, m.shutdown()
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	// An active filter owns typing and its own Esc
	if list := m.focusedList(); list != nil {
		if list.IsFilterTyping() || (list.IsFiltering() && key.Matches(msg, Keys.Escape)) {
			return m, list.Update(msg)
		}
	}

	// Bindings registered by views
	if out, ok := m.Keys.Dispatch(msg); ok {
		if out == nil {
			return m, nil
		}
		return m.Update(out)
	}

	if m.Focus == FocusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handlePaneKey(msg)
}

// handleSearchKey handles keys while the search bar has focus
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.NextPane), msg.Type == tea.KeyDown, msg.Type == tea.KeyEsc:
		m.setFocus(FocusResults)
		return m, nil
	case key.Matches(msg, Keys.PrevPane):
		m.setFocus(FocusSide)
		return m, nil
	}

	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	return m, tea.Batch(cmd, m.queryChanged())
}

// handlePaneKey handles keys while a list or the detail pane has focus
func (m Model) handlePaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	open := m.DetailSvc.IsOpen()

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, m.shutdown()

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.NextPane):
		m.setFocus((m.Focus + 1) % 3)
		return m, nil

	case key.Matches(msg, Keys.PrevPane):
		m.setFocus((m.Focus + 2) % 3)
		return m, nil

	case key.Matches(msg, Keys.Collapse):
		if pane := m.focusedPane(); pane != nil {
			pane.ToggleCollapsed()
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if list := m.focusedList(); list != nil {
			list.ToggleFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Open):
		return m, m.openHighlighted()

	case key.Matches(msg, Keys.OpenIMDb):
		return m, m.openOnIMDb()

	case key.Matches(msg, Keys.Rate):
		if open {
			m.rate(starsForKey(msg.String()))
		}
		return m, nil

	case key.Matches(msg, Keys.ClearRate):
		if open {
			m.rate(0)
		}
		return m, nil

	case key.Matches(msg, Keys.Add):
		if open {
			return m, m.addToWatched()
		}
		return m, nil

	case key.Matches(msg, Keys.Delete):
		if m.Focus == FocusSide && !open {
			return m, m.removeWatched()
		}
		return m, nil
	}

	// Navigation goes to the focused pane
	switch {
	case m.Focus == FocusResults:
		return m, m.Results.Update(msg)
	case m.Focus == FocusSide && open:
		return m, m.Detail.Update(msg)
	case m.Focus == FocusSide:
		return m, m.Watched.Update(msg)
	}
	return m, nil
}

// openHighlighted opens (or closes) the movie under the cursor
func (m *Model) openHighlighted() tea.Cmd {
	switch {
	case m.Focus == FocusResults:
		if r, ok := m.Results.SelectedResult(); ok {
			return m.selectMovie(r.ImdbID)
		}
	case m.Focus == FocusSide && !m.DetailSvc.IsOpen():
		if e, ok := m.Watched.SelectedEntry(); ok {
			return m.selectMovie(e.ImdbID)
		}
	}
	return nil
}

func (m Model) focusedList() listPane {
	switch {
	case m.Focus == FocusResults:
		return m.Results
	case m.Focus == FocusSide && !m.DetailSvc.IsOpen():
		return m.Watched
	}
	return nil
}

func (m Model) focusedPane() collapsible {
	switch {
	case m.Focus == FocusResults:
		return m.Results
	case m.Focus == FocusSide && m.DetailSvc.IsOpen():
		return m.Detail
	case m.Focus == FocusSide:
		return m.Watched
	}
	return nil
}
