package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cineflixx/cfx/internal/catalog"
	"github.com/cineflixx/cfx/internal/feed"
	"github.com/cineflixx/cfx/internal/models"
	"github.com/cineflixx/cfx/internal/session"
	"github.com/cineflixx/cfx/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	SearchView
	DetailView
	FavoritesView
)

// searchDebounce is how long typing must pause before a search fires.
const searchDebounce = 300 * time.Millisecond

// nearEndThreshold is how close to the bottom of the list the cursor must
// be before the next page is requested.
const nearEndThreshold = 5

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	prevView    ViewState
	store       *session.Store
	source      catalog.Catalog
	feed        *feed.Controller
	debouncer   *feed.Debouncer
	queryChan   chan string
	width       int
	height      int
	movieList   list.Model
	listReady   bool
	favList     list.Model
	searchInput textinput.Model
	detail      *models.Movie
	status      string
	err         error
	help        help.Model
	keys        keyMap
}

type feedLoadedMsg struct {
	query string
	err   error
}

type pageAppendedMsg struct {
	applied bool
	err     error
}

type detailFetchedMsg struct {
	movie *models.Movie
	err   error
}

type debouncedQueryMsg string

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, store *session.Store, source catalog.Catalog, ctrl *feed.Controller) *Model {
	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.CharLimit = 80

	return &Model{
		ctx:         ctx,
		view:        BrowseView,
		store:       store,
		source:      source,
		feed:        ctrl,
		debouncer:   feed.NewDebouncer(searchDebounce),
		queryChan:   make(chan string, 8),
		searchInput: input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by loading the first page of the popular feed.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadFeed(""), m.waitForQuery())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.movieList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.favList.Width() != 0 {
			m.favList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case FavoritesView:
			return m.handleFavoritesKeys(msg)
		}

	case feedLoadedMsg:
		m.err = msg.err
		m.rebuildMovieList()
		return m, nil

	case pageAppendedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("could not load more results: %v", msg.err)
			return m, nil
		}
		if msg.applied {
			m.syncMovieList()
		}
		return m, nil

	case detailFetchedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("could not load details: %v", msg.err)
			return m, nil
		}
		m.detail = msg.movie
		m.prevView = m.view
		m.view = DetailView
		return m, nil

	case debouncedQueryMsg:
		return m, tea.Batch(m.loadFeed(string(msg)), m.waitForQuery())
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case BrowseView:
		return m.renderBrowse()
	case SearchView:
		return m.renderSearch()
	case DetailView:
		return m.renderDetail()
	case FavoritesView:
		return m.renderFavorites()
	default:
		return ""
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.view = SearchView
		m.searchInput.Focus()
		return m, textinput.Blink
	case "v":
		m.rebuildFavList()
		m.view = FavoritesView
		return m, nil
	case "f":
		m.toggleSelectedFavorite()
		m.syncMovieList()
		return m, nil
	case "enter":
		if sel, ok := m.selectedMovie(); ok {
			return m, m.fetchDetail(sel.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	if fetch := m.maybeLoadNextPage(); fetch != nil {
		return m, tea.Batch(cmd, fetch)
	}
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.debouncer.Cancel()
		m.searchInput.Blur()
		m.view = BrowseView
		return m, nil
	case "enter":
		m.debouncer.Cancel()
		query := strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.view = BrowseView
		return m, m.loadFeed(query)
	}

	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		query := strings.TrimSpace(after)
		m.debouncer.Schedule(func() {
			m.queryChan <- query
		})
	}
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.detail = nil
		m.view = m.prevView
		if m.view == FavoritesView {
			m.rebuildFavList()
		}
		return m, nil
	case "f":
		if m.detail != nil {
			m.toggleFavorite(*m.detail)
			m.syncMovieList()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleFavoritesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = BrowseView
		m.syncMovieList()
		return m, nil
	case "f":
		if sel, ok := m.favList.SelectedItem().(favoriteItem); ok {
			if err := m.store.RemoveFavorite(sel.movie.ID); err != nil {
				m.status = statusForError(err)
			} else {
				m.rebuildFavList()
			}
		}
		return m, nil
	case "enter":
		if sel, ok := m.favList.SelectedItem().(favoriteItem); ok {
			return m, m.fetchDetail(sel.movie.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.favList, cmd = m.favList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BrowseView:
		if m.listReady {
			m.movieList, cmd = m.movieList.Update(msg)
		}
	case FavoritesView:
		m.favList, cmd = m.favList.Update(msg)
	}
	return m, cmd
}

// selectedMovie returns the movie under the cursor in the browse list.
func (m *Model) selectedMovie() (models.Movie, bool) {
	if !m.listReady {
		return models.Movie{}, false
	}
	if sel, ok := m.movieList.SelectedItem().(movieItem); ok {
		return sel.movie, true
	}
	return models.Movie{}, false
}

// toggleSelectedFavorite toggles the favorite state of the movie under the
// cursor. Records saved from the browse list carry placeholder detail fields
// since the listing does not include a full overview.
func (m *Model) toggleSelectedFavorite() {
	sel, ok := m.selectedMovie()
	if !ok {
		return
	}
	sel.Overview = "N/A"
	sel.ReleaseDate = time.Now().Format("2006-01-02")
	m.toggleFavorite(sel)
}

func (m *Model) toggleFavorite(movie models.Movie) {
	if m.store.State() != session.Authenticated {
		m.status = statusForError(shared.ErrNotAuthenticated)
		return
	}

	var err error
	if m.store.IsFavorite(movie.ID) {
		err = m.store.RemoveFavorite(movie.ID)
	} else {
		err = m.store.AddFavorite(movie)
	}
	if err != nil {
		m.status = statusForError(err)
	}
}

func statusForError(err error) string {
	if errors.Is(err, shared.ErrNotAuthenticated) {
		return "log in to save favorites (cfx auth login)"
	}
	return err.Error()
}

// rebuildMovieList recreates the browse list from the feed, resetting the
// cursor. Used after an initial load or a new query.
func (m *Model) rebuildMovieList() {
	m.movieList = list.New(m.feedItems(), list.NewDefaultDelegate(), 0, 0)
	m.movieList.Title = m.feedTitle()
	m.movieList.SetShowHelp(false)
	m.movieList.SetFilteringEnabled(false)
	m.movieList.SetSize(m.width-4, m.height-8)
	m.listReady = true
}

// syncMovieList replaces the list items in place, keeping the cursor where
// it is. Used when a page is appended or a favorite flag changes.
func (m *Model) syncMovieList() {
	if !m.listReady {
		return
	}
	m.movieList.SetItems(m.feedItems())
	m.movieList.Title = m.feedTitle()
}

func (m *Model) feedItems() []list.Item {
	movies := m.feed.Items()
	items := make([]list.Item, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{movie: movie, fav: m.store.IsFavorite(movie.ID)}
	}
	return items
}

func (m *Model) feedTitle() string {
	if query := m.feed.Query(); query != "" {
		return fmt.Sprintf("Results for '%s'", query)
	}
	return "Popular Movies"
}

func (m *Model) rebuildFavList() {
	favorites := m.store.Favorites()
	items := make([]list.Item, len(favorites))
	for i, movie := range favorites {
		items[i] = favoriteItem{movie: movie}
	}
	m.favList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.favList.Title = "Favorites"
	m.favList.SetShowHelp(false)
	m.favList.SetFilteringEnabled(false)
	m.favList.SetSize(m.width-4, m.height-8)
}

// maybeLoadNextPage requests the next feed page when the cursor is near the
// bottom of the list. The controller itself drops duplicate requests, so
// firing on every cursor move near the end is safe.
func (m *Model) maybeLoadNextPage() tea.Cmd {
	if !m.listReady || !m.feed.HasMore() || m.feed.Loading() {
		return nil
	}
	if m.movieList.Index() < len(m.movieList.Items())-nearEndThreshold {
		return nil
	}
	return m.loadNextPage()
}

func (m *Model) loadFeed(query string) tea.Cmd {
	return func() tea.Msg {
		err := m.feed.LoadInitial(m.ctx, query)
		return feedLoadedMsg{query: query, err: err}
	}
}

func (m *Model) loadNextPage() tea.Cmd {
	return func() tea.Msg {
		applied, err := m.feed.LoadNextPage(m.ctx)
		return pageAppendedMsg{applied: applied, err: err}
	}
}

func (m *Model) fetchDetail(id int) tea.Cmd {
	return func() tea.Msg {
		movie, err := m.source.FetchDetail(m.ctx, id)
		return detailFetchedMsg{movie: movie, err: err}
	}
}

func (m *Model) waitForQuery() tea.Cmd {
	return func() tea.Msg {
		query, ok := <-m.queryChan
		if !ok {
			return nil
		}
		return debouncedQueryMsg(query)
	}
}

func (m *Model) renderBrowse() string {
	if !m.listReady {
		return styles.help.Render("Loading movies...")
	}

	footer := fmt.Sprintf("Page %d of %d", m.feed.Page(), m.feed.TotalPages())
	if m.feed.Loading() {
		footer = fmt.Sprintf("%s • loading...", footer)
	}
	if m.err != nil {
		footer = styles.err.Render(fmt.Sprintf("catalog unavailable: %v", m.err))
	}
	if m.status != "" {
		footer = styles.err.Render(m.status)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.favorite, m.keys.favorites, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.movieList.View(), styles.help.Render(footer), helpView)
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search")
	var body string
	if m.listReady {
		body = m.movieList.View()
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.searchInput.View(), body, helpView)
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.err.Render("No details available\n\nPress esc to go back")
	}

	title := styles.title.Render(m.detail.Title)
	rating := styles.rating.Render(fmt.Sprintf("★ %.1f", m.detail.VoteAverage))

	var meta []string
	if m.detail.ReleaseDate != "" {
		meta = append(meta, m.detail.ReleaseDate)
	}
	if m.detail.Runtime > 0 {
		meta = append(meta, fmt.Sprintf("%d min", m.detail.Runtime))
	}
	for _, genre := range m.detail.Genres {
		meta = append(meta, genre.Name)
	}

	var fav string
	if m.store.IsFavorite(m.detail.ID) {
		fav = styles.fav.Render("♥ in favorites")
	}

	helpKeys := []key.Binding{m.keys.favorite, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf(
		"%s\n%s  %s\n%s\n\n%s\n\n%s",
		title, rating, strings.Join(meta, " • "), fav, m.detail.Overview, helpView,
	)
}

func (m *Model) renderFavorites() string {
	if len(m.favList.Items()) == 0 {
		title := styles.title.Render("Favorites")
		helpKeys := []key.Binding{m.keys.back, m.keys.quit}
		helpView := m.help.ShortHelpView(helpKeys)
		return fmt.Sprintf("%s\nNo favorites yet. Press f on a movie to save it.\n\n%s", title, helpView)
	}

	removeKey := key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "remove"),
	)
	helpKeys := []key.Binding{m.keys.enter, removeKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.favList.View(), helpView)
}
