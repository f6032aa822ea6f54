package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/service"
	"github.com/mmcdole/popcorn/internal/tui/components"
	"github.com/mmcdole/popcorn/internal/tui/styles"
	"github.com/mmcdole/popcorn/internal/watchlist"
)

// Focus identifies which part of the screen receives keys
type Focus int

const (
	FocusSearch Focus = iota
	FocusResults
	FocusSide
)

const (
	appTitle      = "popcorn"
	statusTimeout = 3 * time.Second
)

// URLOpener opens a web page outside the terminal
type URLOpener interface {
	Open(url string) error
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	SearchSvc *service.SearchService
	DetailSvc *service.DetailService
	Watchlist *watchlist.List
	Rating    *service.RatingSession // nil while no movie is open
	MaxRating int
	Browser   URLOpener // nil disables opening IMDb pages

	// Key bindings owned by views; Esc is registered only while a movie is open
	Keys      *KeyDispatcher
	unbindEsc func()

	// UI Components
	SearchBar textinput.Model
	Spinner   spinner.Model
	Results   *components.ResultList
	Watched   *components.WatchedList
	Detail    *components.DetailPane

	Focus    Focus
	ShowHelp bool

	// Dimensions
	Width  int
	Height int

	// Status line
	StatusMsg   string
	StatusIsErr bool

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(
	searchSvc *service.SearchService,
	detailSvc *service.DetailService,
	list *watchlist.List,
	maxRating int,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if maxRating < 1 {
		maxRating = service.DefaultMaxRating
	}

	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 100
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	m := Model{
		SearchSvc: searchSvc,
		DetailSvc: detailSvc,
		Watchlist: list,
		MaxRating: maxRating,
		Keys:      NewKeyDispatcher(),
		SearchBar: ti,
		Spinner:   sp,
		Results:   components.NewResultList(),
		Watched:   components.NewWatchedList(),
		Detail:    components.NewDetailPane(),
		Focus:     FocusSearch,
		logger:    logger,
	}

	m.Keys.Bind(Keys.Enter, func() tea.Msg { return FocusSearchMsg{} })
	m.syncViews()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.Spinner.Tick,
		tea.SetWindowTitle(appTitle),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.Results.SetSpinner(m.Spinner.View())
		m.Detail.SetSpinner(m.Spinner.View())
		return m, cmd

	case SearchDoneMsg:
		if m.SearchSvc.Apply(msg.Outcome) {
			m.syncViews()
		}
		return m, nil

	case DetailLoadedMsg:
		if !m.DetailSvc.Apply(msg.Outcome) {
			return m, nil
		}
		m.syncViews()
		if detail, ok := m.DetailSvc.Detail(); ok {
			return m, tea.SetWindowTitle("Movie | " + detail.Title)
		}
		return m, nil

	case CloseDetailMsg:
		return m, m.closeDetail()

	case FocusSearchMsg:
		if m.Focus == FocusSearch {
			return m, nil
		}
		m.setFocus(FocusSearch)
		m.SearchBar.SetValue("")
		return m, m.queryChanged()

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(statusTimeout)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input messages
	if m.Focus == FocusSearch {
		var cmd tea.Cmd
		m.SearchBar, cmd = m.SearchBar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// queryChanged hands a changed search bar value to the search session.
// Any change of query dismisses the open movie, short queries included.
func (m *Model) queryChanged() tea.Cmd {
	query := m.SearchBar.Value()
	if query == m.SearchSvc.Query() {
		return nil
	}

	closeCmd := m.closeDetail()
	req, ok := m.SearchSvc.SetQuery(query)
	m.syncViews()
	if !ok {
		return closeCmd
	}
	return tea.Batch(closeCmd, SearchCmd(m.SearchSvc, req))
}

// selectMovie opens id, or closes it when it is already open
func (m *Model) selectMovie(id string) tea.Cmd {
	req, ok := m.DetailSvc.Select(id)
	if !ok {
		return m.closeDetail()
	}

	m.Rating = service.NewRatingSession(m.MaxRating)
	if m.unbindEsc == nil {
		m.unbindEsc = m.Keys.Bind(Keys.Escape, func() tea.Msg { return CloseDetailMsg{} })
	}
	m.syncViews()
	return LoadDetailCmd(m.DetailSvc, req)
}

// closeDetail closes the open movie and discards its rating session
func (m *Model) closeDetail() tea.Cmd {
	wasOpen := m.DetailSvc.IsOpen() || m.unbindEsc != nil

	m.DetailSvc.Close()
	m.Rating = nil
	if m.unbindEsc != nil {
		m.unbindEsc()
		m.unbindEsc = nil
	}
	m.syncViews()

	if !wasOpen {
		return nil
	}
	return tea.SetWindowTitle(appTitle)
}

// rate sets the open movie's rating; zero clears it
func (m *Model) rate(stars int) {
	if m.Rating == nil {
		return
	}
	detail, ok := m.DetailSvc.Detail()
	if !ok || m.Watchlist.Contains(detail.ImdbID) {
		return
	}
	m.Rating.Rate(stars)
	m.syncViews()
}

// addToWatched commits the rating session into the watched list and
// closes the movie
func (m *Model) addToWatched() tea.Cmd {
	detail, ok := m.DetailSvc.Detail()
	if !ok || m.Rating == nil {
		return nil
	}

	entry, err := m.Rating.Commit(detail)
	if errors.Is(err, domain.ErrNoRating) {
		return StatusCmd("Rate the movie first", true)
	}
	if err != nil {
		m.logger.Error("failed to build watched entry", "imdbID", detail.ImdbID, "error", err)
		return StatusCmd("Could not add movie", true)
	}

	var status tea.Cmd
	switch err := m.Watchlist.Add(entry); {
	case errors.Is(err, domain.ErrAlreadyWatched):
		status = StatusCmd(entry.Title+" is already in your list", false)
	case err != nil:
		m.logger.Error("failed to save watched list", "imdbID", entry.ImdbID, "error", err)
		status = StatusCmd("Added "+entry.Title+", but the list could not be saved", true)
	default:
		status = StatusCmd("Added "+entry.Title, false)
	}

	return tea.Batch(m.closeDetail(), status)
}

// removeWatched deletes the highlighted watched entry
func (m *Model) removeWatched() tea.Cmd {
	entry, ok := m.Watched.SelectedEntry()
	if !ok {
		return nil
	}
	if err := m.Watchlist.Delete(entry.ImdbID); err != nil {
		m.logger.Error("failed to save watched list", "imdbID", entry.ImdbID, "error", err)
		m.syncViews()
		return StatusCmd("Removed "+entry.Title+", but the list could not be saved", true)
	}
	m.syncViews()
	return StatusCmd("Removed "+entry.Title, false)
}

// openOnIMDb opens the IMDb page of the open or highlighted movie
func (m *Model) openOnIMDb() tea.Cmd {
	if m.Browser == nil {
		return nil
	}

	id := m.DetailSvc.Selected()
	if id == "" {
		switch m.Focus {
		case FocusResults:
			if r, ok := m.Results.SelectedResult(); ok {
				id = r.ImdbID
			}
		case FocusSide:
			if e, ok := m.Watched.SelectedEntry(); ok {
				id = e.ImdbID
			}
		}
	}
	if id == "" {
		return nil
	}
	return OpenURLCmd(m.Browser, adapter.IMDbURL(id))
}

// shutdown aborts requests in flight and quits
func (m *Model) shutdown() tea.Cmd {
	m.SearchSvc.Close()
	m.DetailSvc.Close()
	return tea.Quit
}

// setFocus moves keyboard focus
func (m *Model) setFocus(f Focus) {
	m.Focus = f
	if f == FocusSearch {
		m.SearchBar.Focus()
	} else {
		m.SearchBar.Blur()
	}
	m.applyFocus()
}

func (m *Model) applyFocus() {
	open := m.DetailSvc.IsOpen()
	m.Results.SetFocused(m.Focus == FocusResults)
	m.Watched.SetFocused(m.Focus == FocusSide && !open)
	m.Detail.SetFocused(m.Focus == FocusSide && open)
}

// syncViews pushes service state into the components
func (m *Model) syncViews() {
	frame := m.Spinner.View()
	selected := m.DetailSvc.Selected()

	entries := m.Watchlist.Entries()
	watched := make(map[string]bool, len(entries))
	for _, e := range entries {
		watched[e.ImdbID] = true
	}

	m.Results.SetStatus(m.SearchSvc.Status())
	m.Results.SetSpinner(frame)
	m.Results.SetSelectedID(selected)
	m.Results.SetWatched(watched)

	m.Watched.SetEntries(entries, m.Watchlist.Summary())

	detail, _ := m.DetailSvc.Detail()
	m.Detail.SetDetail(detail, m.DetailSvc.Loading(), m.DetailSvc.Err())
	m.Detail.SetSpinner(frame)
	if m.Rating != nil {
		m.Detail.SetRating(m.Rating.Rating(), m.Rating.MaxRating())
	} else {
		m.Detail.SetRating(0, m.MaxRating)
	}
	if e, ok := m.Watchlist.Get(selected); ok {
		m.Detail.SetWatched(&e)
	} else {
		m.Detail.SetWatched(nil)
	}

	m.applyFocus()
}
