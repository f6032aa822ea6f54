package tui

import "github.com/mmcdole/popcorn/internal/tui/components"

// Layout proportions
const (
	ResultsColumnPercent = 40
	MinColumnWidth       = 20

	// Navbar line + footer line
	ChromeHeight = 2
)

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(m.Height-ChromeHeight, components.CollapsedHeight)
	leftWidth := max(m.Width*ResultsColumnPercent/100, MinColumnWidth)
	rightWidth := max(m.Width-leftWidth, MinColumnWidth)

	m.Results.SetSize(leftWidth, contentHeight)
	m.Watched.SetSize(rightWidth, contentHeight)
	m.Detail.SetSize(rightWidth, contentHeight)

	// Logo and result count share the navbar with the input
	m.SearchBar.Width = max(m.Width-navbarReserved, 10)
}
