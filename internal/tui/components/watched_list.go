package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/search"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// summaryLines is the height of the summary block above the rows
const summaryLines = 3

// WatchedList shows the watched-list summary and its entries
type WatchedList struct {
	listColumn

	entries []domain.WatchedEntry
	matches []search.WatchedMatch
	summary domain.WatchedSummary
}

// NewWatchedList creates an empty watched list
func NewWatchedList() *WatchedList {
	l := &WatchedList{listColumn: newListColumn("Movies you watched")}
	l.reserved = summaryLines
	return l
}

// SetEntries replaces the entries and their summary
func (l *WatchedList) SetEntries(entries []domain.WatchedEntry, summary domain.WatchedSummary) {
	l.entries = entries
	l.summary = summary
	l.applyFilter()
}

// ClearFilter deactivates the filter and shows every entry
func (l *WatchedList) ClearFilter() {
	l.listColumn.ClearFilter()
	l.applyFilter()
}

// SelectedEntry returns the highlighted entry
func (l *WatchedList) SelectedEntry() (domain.WatchedEntry, bool) {
	if l.cursor < 0 || l.cursor >= len(l.matches) {
		return domain.WatchedEntry{}, false
	}
	return l.matches[l.cursor].Entry, true
}

// Update handles navigation and filter keys
func (l *WatchedList) Update(msg tea.KeyMsg) tea.Cmd {
	if l.collapsed {
		return nil
	}
	if handled, changed, cmd := l.updateFilter(msg); handled {
		if changed {
			l.applyFilter()
		}
		return cmd
	}
	l.navigate(msg, len(l.matches))
	return nil
}

// View renders the summary and entries in their box
func (l *WatchedList) View() string {
	return l.frame(l.renderSummary(l.itemWidth()) + "\n" + l.renderContent())
}

func (l *WatchedList) applyFilter() {
	l.matches = search.FilterWatched(l.FilterQuery(), l.entries)
	l.clampCursor(len(l.matches))
}

func (l *WatchedList) renderSummary(width int) string {
	s := l.summary
	heading := styles.TitleStyle.Render("MOVIES YOU WATCHED")
	stats := fmt.Sprintf("#️⃣ %d movies   ⭐️ %.2f   🌟 %.2f   ⏳ %.2f min",
		s.Count, s.AvgImdbRating, s.AvgUserRating, s.AvgRuntime)
	rule := styles.DimStyle.Render(strings.Repeat("─", width))
	return heading + "\n" + styles.SubtitleStyle.Render(styles.Truncate(stats, width)) + "\n" + rule
}

func (l *WatchedList) renderContent() string {
	if len(l.entries) == 0 {
		return l.renderEmpty(styles.DimStyle.Render("Rate a movie and add it to your list"), 0, 0)
	}
	if len(l.matches) == 0 {
		return l.renderEmpty(styles.DimStyle.Render("No matches"), 0, len(l.entries))
	}

	return l.renderRows(len(l.matches), len(l.entries), func(i int, selected bool, width int) string {
		return l.renderItem(l.matches[i], selected, width)
	})
}

func (l *WatchedList) renderItem(m search.WatchedMatch, selected bool, width int) string {
	e := m.Entry
	base := styles.NormalItemStyle.UnsetPadding()
	if selected {
		base = styles.SelectedItemStyle.UnsetPadding()
	}

	stats := fmt.Sprintf(" ⭐️ %.1f  🌟 %d  ⏳ %d min", e.ImdbRating, e.UserRating, e.Runtime)
	titleWidth := max(width-lipgloss.Width(stats)-2, 1)

	title := styles.Truncate(e.Title, titleWidth)
	positions := m.MatchedIndexes
	if title != e.Title {
		positions = clipPositions(positions, len(title)-len("..."))
	}

	line := styles.Highlight(title, positions, base) + base.Render(stats)
	if selected {
		return styles.SelectedItemStyle.Width(width).Render(line)
	}
	return styles.NormalItemStyle.Width(width).Render(line)
}

// clipPositions drops match offsets at or past limit
func clipPositions(positions []int, limit int) []int {
	out := make([]int, 0, len(positions))
	for _, p := range positions {
		if p < limit {
			out = append(out, p)
		}
	}
	return out
}
