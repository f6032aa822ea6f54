package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// Layout constants for the detail pane
const (
	DetailBorderHeight     = 2
	DetailScrollIndicators = 2
)

// detailContent holds the three-zone layout content
type detailContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// DetailPane shows the open movie with its rating control
type DetailPane struct {
	detail  *domain.MovieDetail
	loading bool
	errMsg  string
	spinner string

	rating    int
	maxRating int
	watched   *domain.WatchedEntry

	width      int
	height     int
	offset     int // scroll offset
	maxVisible int // max visible lines
	focused    bool
	collapsed  bool
}

// NewDetailPane creates an empty detail pane
func NewDetailPane() *DetailPane {
	return &DetailPane{maxRating: 10}
}

// SetDetail sets the loaded record, or the loading/error state before it arrives
func (d *DetailPane) SetDetail(detail *domain.MovieDetail, loading bool, errMsg string) {
	if d.detail == nil || detail == nil || d.detail.ImdbID != detail.ImdbID {
		d.offset = 0
	}
	d.detail = detail
	d.loading = loading
	d.errMsg = errMsg
}

// SetRating sets the current rating out of maxRating stars
func (d *DetailPane) SetRating(rating, maxRating int) {
	d.rating = rating
	d.maxRating = maxRating
}

// SetWatched sets the stored entry when the movie is already in the list
func (d *DetailPane) SetWatched(entry *domain.WatchedEntry) { d.watched = entry }

// SetSpinner sets the current spinner frame shown while loading
func (d *DetailPane) SetSpinner(frame string) { d.spinner = frame }

// SetSize updates the component dimensions
func (d *DetailPane) SetSize(width, height int) {
	d.width = width
	d.height = height
	// Reserve space for border, scroll indicators and title
	d.maxVisible = max(height-DetailBorderHeight-DetailScrollIndicators-1, 1)
}

func (d *DetailPane) SetFocused(focused bool) { d.focused = focused }

func (d *DetailPane) ToggleCollapsed() { d.collapsed = !d.collapsed }

func (d *DetailPane) IsCollapsed() bool { return d.collapsed }

// Update scrolls the body
func (d *DetailPane) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		d.offset++
	case "k", "up":
		if d.offset > 0 {
			d.offset--
		}
	}
	return nil
}

// View renders the component
func (d *DetailPane) View() string {
	title := "Movie"
	if d.detail != nil {
		title = d.detail.Title
	}
	return RenderBox(title, d.renderBody(), d.width, d.height, d.focused, d.collapsed)
}

func (d *DetailPane) renderBody() string {
	width := max(d.width-BorderWidth-1, 10)

	switch {
	case d.errMsg != "":
		return " \n" + styles.ErrorStyle.Render("⛔ "+d.errMsg)
	case d.loading || d.detail == nil:
		return " \n" + styles.SpinnerStyle.Render(d.spinner) + styles.DimStyle.Render(" Loading...")
	}

	content := d.renderContent(width)
	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	// Calculate available space for body
	availableForBody := max(d.maxVisible-len(headerLines)-len(footerLines), 1)

	// Clamp body scroll offset
	maxOffset := max(len(bodyLines)-availableForBody, 0)
	if d.offset > maxOffset {
		d.offset = maxOffset
	}
	end := min(d.offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[d.offset:end]

	up := " "
	if d.offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := append([]string{}, headerLines...)
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	parts = append(parts, footerLines...)
	return strings.Join(parts, "\n")
}

func (d *DetailPane) renderContent(width int) detailContent {
	m := d.detail

	var header strings.Builder
	header.WriteString(styles.TitleStyle.Render(styles.Truncate(m.Title, width)))
	header.WriteString("\n")
	header.WriteString(styles.DimStyle.Render(styles.Truncate(m.Released+" · "+m.Runtime, width)))
	header.WriteString("\n")
	header.WriteString(styles.SubtitleStyle.Render(styles.Truncate(m.Genre, width)))
	header.WriteString("\n")
	header.WriteString(styles.AccentStyle.Render("⭐️ " + m.ImdbRating))
	header.WriteString(styles.DimStyle.Render(" IMDb rating"))
	header.WriteString("\n")
	header.WriteString(d.renderRating())

	bodyWidth := min(width-2, 80)
	var body strings.Builder
	if m.Plot != "" {
		body.WriteString(styles.SubtitleStyle.Render(wordWrap(m.Plot, bodyWidth)))
		body.WriteString("\n\n")
	}
	body.WriteString(styles.DimStyle.Render(wordWrap("Starring "+m.Actors, bodyWidth)))
	body.WriteString("\n")
	body.WriteString(styles.DimStyle.Render(wordWrap("Directed by "+m.Director, bodyWidth)))

	return detailContent{
		header: header.String(),
		body:   body.String(),
		footer: d.renderFooter(),
	}
}

func (d *DetailPane) renderRating() string {
	if d.watched != nil {
		return styles.SuccessStyle.Render(fmt.Sprintf("You rated this movie %d ⭐️", d.watched.UserRating))
	}
	line := styles.RenderStars(d.rating, d.maxRating)
	if d.rating > 0 {
		line += " " + styles.AccentStyle.Render(fmt.Sprintf("%d", d.rating))
	}
	return line
}

func (d *DetailPane) renderFooter() string {
	if d.watched != nil {
		return styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" back")
	}
	hint := styles.HelpKeyStyle.Render("1-0") + styles.HelpDescStyle.Render(" rate  ")
	if d.rating > 0 {
		hint += styles.HelpKeyStyle.Render("a") + styles.HelpDescStyle.Render(" add to list  ")
	}
	return hint + styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" back")
}

// splitLines splits a string into lines, returning empty slice for empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		wordLen := len([]rune(word))

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}
		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}
	return result.String()
}
