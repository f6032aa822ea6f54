package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// listColumn is the scrolling, filterable, collapsible base shared by the
// result list and the watched list
type listColumn struct {
	title string

	// Lines above the rows taken by the owner's own header
	reserved int

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width     int
	height    int
	focused   bool
	collapsed bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
}

func newListColumn(title string) listColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	// Blink ticks are only routed to the search bar
	ti.Cursor.SetMode(cursor.CursorStatic)

	return listColumn{title: title, filterInput: ti}
}

// SetSize sets the outer size of the column including its border
func (c *listColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *listColumn) SetFocused(focused bool) { c.focused = focused }

func (c *listColumn) IsFocused() bool { return c.focused }

// ToggleCollapsed folds the column down to its title line, or unfolds it
func (c *listColumn) ToggleCollapsed() { c.collapsed = !c.collapsed }

func (c *listColumn) IsCollapsed() bool { return c.collapsed }

// ToggleFilter activates the filter input
func (c *listColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *listColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *listColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *listColumn) ClearFilter() {
	c.filterActive = false
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.cursor = 0
	c.offset = 0
	c.recalcMaxVisible()
}

// FilterQuery returns the active filter text
func (c *listColumn) FilterQuery() string {
	if !c.filterActive {
		return ""
	}
	return c.filterInput.Value()
}

// Cursor returns the index of the highlighted row among the visible rows
func (c *listColumn) Cursor() int { return c.cursor }

// updateFilter routes a key to the filter input. It reports whether the key
// was consumed and whether the filter text changed.
func (c *listColumn) updateFilter(msg tea.KeyMsg) (handled, changed bool, cmd tea.Cmd) {
	if c.filterActive && c.filterInput.Focused() {
		switch msg.String() {
		case "esc":
			c.ClearFilter()
			return true, true, nil
		case "enter":
			// Accept filter, blur input to allow navigation
			c.filterInput.Blur()
			return true, false, nil
		case "backspace":
			if c.filterInput.Value() == "" {
				c.ClearFilter()
				return true, true, nil
			}
		}

		before := c.filterInput.Value()
		c.filterInput, cmd = c.filterInput.Update(msg)
		if c.filterInput.Value() != before {
			c.cursor = 0
			c.offset = 0
			return true, true, cmd
		}
		return true, false, cmd
	}

	if c.filterActive {
		switch msg.String() {
		case "esc":
			c.ClearFilter()
			return true, true, nil
		case "/":
			c.filterInput.Focus()
			return true, false, nil
		}
	}
	return false, false, nil
}

// navigate moves the cursor for list navigation keys over count rows
func (c *listColumn) navigate(msg tea.KeyMsg, count int) bool {
	if count == 0 {
		return false
	}
	switch msg.String() {
	case "j", "down":
		if c.cursor < count-1 {
			c.cursor++
		}
	case "k", "up":
		if c.cursor > 0 {
			c.cursor--
		}
	case "g", "home":
		c.cursor = 0
	case "G", "end":
		c.cursor = count - 1
	case "ctrl+d", "pgdown":
		c.cursor = min(c.cursor+max(c.maxVisible/2, 1), count-1)
	case "ctrl+u", "pgup":
		c.cursor = max(c.cursor-max(c.maxVisible/2, 1), 0)
	default:
		return false
	}
	c.ensureVisible()
	return true
}

// clampCursor keeps the cursor inside count rows after the rows change
func (c *listColumn) clampCursor(count int) {
	if c.cursor >= count {
		c.cursor = max(count-1, 0)
	}
	if c.offset > c.cursor {
		c.offset = c.cursor
	}
	c.ensureVisible()
}

func (c *listColumn) recalcMaxVisible() {
	// Interior height = total - border (top+bottom)
	// Reserve space for: title line + scroll indicators (header + footer)
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1 - c.reserved
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *listColumn) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

// itemWidth is the usable width inside the border
func (c *listColumn) itemWidth() int {
	return max(c.width-BorderWidth, 10)
}

// renderRows lays out the visible window of count rows produced by row,
// with scroll indicators and the filter bar
func (c *listColumn) renderRows(count, total int, row func(i int, selected bool, width int) string) string {
	width := c.itemWidth()

	end := min(c.offset+c.maxVisible, count)
	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, row(i, c.focused && i == c.cursor, width))
	}

	// ALWAYS reserve space for header and footer to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar(count, total)
	}
	return content
}

// renderEmpty renders a single dim message in place of rows
func (c *listColumn) renderEmpty(msg string, count, total int) string {
	content := " \n" + msg + "\n "
	if c.filterActive {
		content += "\n" + c.renderFilterBar(count, total)
	}
	return content
}

func (c *listColumn) renderFilterBar(count, total int) string {
	input := c.filterInput.View()
	if c.filterInput.Value() == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", count, total))
}

// frame wraps body in the column's box
func (c *listColumn) frame(body string) string {
	return RenderBox(c.title, body, c.width, c.height, c.focused, c.collapsed)
}
