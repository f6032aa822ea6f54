package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/search"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// ResultList shows the published search status: a spinner while loading,
// the error message, or the results
type ResultList struct {
	listColumn

	status  domain.SessionStatus
	results []domain.SearchResult
	visible []domain.SearchResult

	selectedID string
	watched    map[string]bool
	spinner    string
}

// NewResultList creates an empty result list
func NewResultList() *ResultList {
	return &ResultList{
		listColumn: newListColumn("Results"),
		status:     domain.StatusReady{},
		watched:    make(map[string]bool),
	}
}

// SetStatus replaces the displayed status. New results reset the cursor.
func (l *ResultList) SetStatus(status domain.SessionStatus) {
	l.status = status
	results := domain.ResultsOf(status)
	if !sameResults(results, l.results) {
		l.results = results
		l.cursor = 0
		l.offset = 0
	}
	l.applyFilter()
}

// SetSpinner sets the current spinner frame shown while loading
func (l *ResultList) SetSpinner(frame string) { l.spinner = frame }

// SetSelectedID marks the movie whose detail is open
func (l *ResultList) SetSelectedID(id string) { l.selectedID = id }

// SetWatched marks ids already in the watched list
func (l *ResultList) SetWatched(ids map[string]bool) { l.watched = ids }

// Count returns the number of results, ignoring the local filter
func (l *ResultList) Count() int { return len(l.results) }

// ClearFilter deactivates the filter and shows every result
func (l *ResultList) ClearFilter() {
	l.listColumn.ClearFilter()
	l.applyFilter()
}

// SelectedResult returns the highlighted result
func (l *ResultList) SelectedResult() (domain.SearchResult, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return domain.SearchResult{}, false
	}
	return l.visible[l.cursor], true
}

// Update handles navigation and filter keys
func (l *ResultList) Update(msg tea.KeyMsg) tea.Cmd {
	if l.collapsed {
		return nil
	}
	if handled, changed, cmd := l.updateFilter(msg); handled {
		if changed {
			l.applyFilter()
		}
		return cmd
	}
	l.navigate(msg, len(l.visible))
	return nil
}

// View renders the list in its box
func (l *ResultList) View() string {
	return l.frame(l.renderContent())
}

func (l *ResultList) applyFilter() {
	l.visible = search.FilterResults(l.FilterQuery(), l.results)
	l.clampCursor(len(l.visible))
}

func (l *ResultList) renderContent() string {
	switch s := l.status.(type) {
	case domain.StatusLoading:
		return l.renderEmpty(styles.SpinnerStyle.Render(l.spinner)+styles.DimStyle.Render(" Loading..."), 0, 0)
	case domain.StatusError:
		return l.renderEmpty(styles.ErrorStyle.Render("⛔ "+s.Message), 0, 0)
	}

	if len(l.results) == 0 {
		return l.renderEmpty(styles.DimStyle.Render("Search for a movie to get started"), 0, 0)
	}
	if len(l.visible) == 0 {
		return l.renderEmpty(styles.DimStyle.Render("No matches"), 0, len(l.results))
	}

	return l.renderRows(len(l.visible), len(l.results), func(i int, selected bool, width int) string {
		return l.renderItem(l.visible[i], selected, width)
	})
}

func (l *ResultList) renderItem(r domain.SearchResult, selected bool, width int) string {
	marker := "  "
	switch {
	case r.ImdbID == l.selectedID:
		marker = styles.AccentStyle.Render("▸ ")
	case l.watched[r.ImdbID]:
		marker = styles.SuccessStyle.Render("✓ ")
	}

	year := styles.DimStyle.Render(" 🗓 " + r.Year)
	titleWidth := max(width-lipgloss.Width(marker)-lipgloss.Width(year)-2, 1)
	line := marker + styles.Truncate(r.Title, titleWidth) + year

	if selected {
		return styles.SelectedItemStyle.Width(width).Render(line)
	}
	return styles.NormalItemStyle.Width(width).Render(line)
}

func sameResults(a, b []domain.SearchResult) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ImdbID != b[i].ImdbID {
			return false
		}
	}
	return true
}
