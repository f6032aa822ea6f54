package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// navbarReserved is the navbar width left for the logo and result count
const navbarReserved = 40

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	right := m.Watched.View()
	if m.DetailSvc.IsOpen() {
		right = m.Detail.View()
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, m.Results.View(), right)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderNavbar(),
		content,
		m.renderFooter(),
	)
}

// renderNavbar renders the logo, search bar and result count
func (m Model) renderNavbar() string {
	logo := styles.LogoStyle.Render("🍿 popcorn")
	count := styles.SubtitleStyle.Render(fmt.Sprintf("Found %d results", m.Results.Count()))

	input := m.SearchBar.View()
	gap := max(m.Width-lipgloss.Width(logo)-lipgloss.Width(input)-lipgloss.Width(count)-2, 1)

	return logo + " " + input + strings.Repeat(" ", gap) + count
}

// renderFooter renders the status line
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	center := m.footerHints()
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// footerHints returns context-specific key hints for the focused pane
func (m Model) footerHints() string {
	hint := func(k, desc string) string {
		return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
	}

	switch {
	case m.Focus == FocusSearch:
		return hint("↓/tab", "results") + "  " + hint("shift+tab", "side pane")
	case m.DetailSvc.IsOpen():
		return hint("1-0", "rate") + "  " + hint("a", "add") + "  " + hint("esc", "close")
	case m.Focus == FocusSide:
		return hint("l", "open") + "  " + hint("x", "remove") + "  " + hint("/", "filter")
	default:
		return hint("l", "open") + "  " + hint("/", "filter") + "  " + hint("enter", "new search")
	}
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SEARCH                          MOVIE
  type       Search (3+ chars)     1-9, 0     Rate 1-10 stars
  enter      New search            -          Clear rating
  tab        Next pane             a          Add to watched list
  S-tab      Previous pane         esc        Close movie

LISTS                           OTHER
  j/k        Up/down               z          Collapse pane
  l/space    Open/close movie      q          Quit
  /          Filter                ?          This help
  x          Remove from list      i          Open on IMDb

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
