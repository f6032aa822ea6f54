package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	PopcornYellow = lipgloss.Color("#FCC419")
	SlateDark     = lipgloss.Color("#212529")
	SlateLight    = lipgloss.Color("#343A40")
	DimGray       = lipgloss.Color("#6B7280")
	LightGray     = lipgloss.Color("#ADB5BD")
	White         = lipgloss.Color("#F8F9FA")
	Green         = lipgloss.Color("#10B981")
	Red           = lipgloss.Color("#FA5252")
	Violet        = lipgloss.Color("#6741D9")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PopcornYellow)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(PopcornYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	LogoStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(PopcornYellow).
			Bold(true).
			Padding(0, 1)

	NavbarStyle = lipgloss.NewStyle().
			Background(Violet).
			Foreground(White).
			Padding(0, 1)
)

// Modal style
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PopcornYellow).
			Padding(0, 2)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Rating stars
const (
	StarFull  = "★"
	StarEmpty = "☆"
)

var (
	StarFullStyle  = lipgloss.NewStyle().Foreground(PopcornYellow)
	StarEmptyStyle = lipgloss.NewStyle().Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PopcornYellow)
)

// Filter styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(PopcornYellow).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(PopcornYellow).
				Bold(true)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(PopcornYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Truncate cuts s to width display cells, adding an ellipsis when it cuts
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// RenderStars renders rating out of max as filled and empty stars
func RenderStars(rating, max int) string {
	if rating > max {
		rating = max
	}
	if rating < 0 {
		rating = 0
	}
	return StarFullStyle.Render(strings.Repeat(StarFull, rating)) +
		StarEmptyStyle.Render(strings.Repeat(StarEmpty, max-rating))
}

// Highlight renders the runes of s starting at the given byte offsets in the
// match style
func Highlight(s string, positions []int, base lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(s)
	}
	hit := make(map[int]bool, len(positions))
	for _, p := range positions {
		hit[p] = true
	}

	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
