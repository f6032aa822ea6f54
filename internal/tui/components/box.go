package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// CollapsedHeight is the outer height of a collapsed box
const CollapsedHeight = BorderHeight + 1

// RenderBox draws a bordered pane of the given outer size. The title line
// carries a [–]/[+] marker; a collapsed box shows only that line.
func RenderBox(title, body string, width, height int, focused, collapsed bool) string {
	style := styles.InactiveBorder
	if focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	innerW := max(width-frameW, 1)

	marker := "[–]"
	if collapsed {
		marker = "[+]"
	}
	titleText := styles.Truncate(title, max(innerW-lipgloss.Width(marker)-1, 1))
	gap := max(innerW-lipgloss.Width(titleText)-lipgloss.Width(marker), 1)
	titleLine := styles.AccentStyle.Render(titleText) +
		lipgloss.NewStyle().Width(gap).Render("") +
		styles.DimStyle.Render(marker)

	if collapsed {
		return style.Width(innerW).Height(CollapsedHeight - frameH).Render(titleLine)
	}

	return style.
		Width(innerW).
		Height(max(height-frameH, 1)).
		Render(titleLine + "\n" + body)
}
