package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bmg/internal/gallery"
	"github.com/nikbrunner/bmg/internal/model"
	"github.com/nikbrunner/bmg/internal/source"
	"github.com/nikbrunner/bmg/internal/storage"
	"github.com/nikbrunner/bmg/internal/tui/layout"
	"go.uber.org/zap"
)

// Loader produces the bookmark list shown by the gallery.
type Loader interface {
	Load(ctx context.Context) source.Result
}

// IconResolver turns a favicon candidate into a displayable icon or the
// fallback glyph.
type IconResolver interface {
	OrFallback(ctx context.Context, candidate string) string
}

// BookmarksLoadedMsg carries the loader result into the model.
type BookmarksLoadedMsg struct {
	Result source.Result
}

// FaviconResolvedMsg carries one card's favicon resolution. Generation ties it
// to the view it was requested for.
type FaviconResolvedMsg struct {
	Generation int
	Index      int
	Resolved   string
}

// themeSavedMsg is sent after the theme was persisted.
type themeSavedMsg struct {
	theme storage.Theme
	err   error
}

// App is the main bubbletea model for the bookmark gallery.
type App struct {
	loader    Loader
	resolver  IconResolver
	prefs     storage.PrefStore
	pipeline  *gallery.Pipeline
	logger    *zap.Logger
	openURL   func(string) error
	copyText  func(string) error
	resetPage bool

	keys         KeyMap
	styles       Styles
	theme        storage.Theme
	layoutConfig layout.LayoutConfig

	// At most one theme save runs at a time so the last write always
	// matches the theme on screen.
	themeSaving bool

	mode  Mode
	focus Focus

	// Data
	records []model.Bookmark
	origin  string
	folders []FolderEntry

	// Derived view
	state gallery.State
	view  gallery.View
	icons IconState

	cursor  int // selected card on the current page
	sidebar SidebarState
	search  SearchState
	spinner spinner.Model

	// notice is the loader's fallback error, shown until the first view change
	notice string

	// Flash message shown in the help bar
	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Loader   Loader
	Resolver IconResolver      // optional, cards keep the resolving marker if nil
	Prefs    storage.PrefStore // optional, theme changes are not persisted if nil
	Pipeline *gallery.Pipeline // optional, English collation if nil
	Theme    storage.Theme
	Logger   *zap.Logger // optional, uses zap.NewNop if nil

	// ResetPageOnQuery returns to page 1 when the search term or sort changes.
	ResetPageOnQuery bool

	OpenURL   func(string) error // optional, uses OpenURL if nil
	Clipboard func(string) error // optional, uses the system clipboard if nil

	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, derived from Theme if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	theme := storage.ParseTheme(string(params.Theme))
	styles := StylesFor(theme)
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	pipeline := params.Pipeline
	if pipeline == nil {
		pipeline = gallery.NewForLocale("en")
	}

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	openURL := params.OpenURL
	if openURL == nil {
		openURL = OpenURL
	}

	copyText := params.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	app := App{
		loader:       params.Loader,
		resolver:     params.Resolver,
		prefs:        params.Prefs,
		pipeline:     pipeline,
		logger:       logger,
		openURL:      openURL,
		copyText:     copyText,
		resetPage:    params.ResetPageOnQuery,
		keys:         keys,
		styles:       styles,
		theme:        theme,
		layoutConfig: layoutConfig,
		mode:         ModeLoading,
		focus:        FocusGrid,
		state:        gallery.NewState(),
		search:       NewSearchState(layoutConfig),
		spinner:      sp,
		width:        80,
		height:       24,
	}

	if app.loader == nil {
		app.mode = ModeNormal
		app.folders = buildFolderEntries(nil)
		app.recompute()
	}
	return app
}

// WithDimensions returns a copy of the app sized to the given terminal.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Focus returns the pane receiving navigation keys.
func (a App) Focus() Focus {
	return a.focus
}

// State returns the gallery state the current view was derived from.
func (a App) State() gallery.State {
	return a.state
}

// CurrentView returns the computed page.
func (a App) CurrentView() gallery.View {
	return a.view
}

// Records returns the full bookmark list.
func (a App) Records() []model.Bookmark {
	return a.records
}

// Folders returns the sidebar entries.
func (a App) Folders() []FolderEntry {
	return a.folders
}

// Cursor returns the selected card index on the current page.
func (a App) Cursor() int {
	return a.cursor
}

// SidebarCursor returns the selected sidebar entry.
func (a App) SidebarCursor() int {
	return a.sidebar.Cursor
}

// Generation returns the favicon generation of the current view.
func (a App) Generation() int {
	return a.icons.Generation
}

// IconStatus returns the favicon state of card i on the current page.
func (a App) IconStatus(i int) IconStatus {
	if i < 0 || i >= len(a.icons.Status) {
		return IconResolving
	}
	return a.icons.Status[i]
}

// Theme returns the active theme.
func (a App) Theme() storage.Theme {
	return a.theme
}

// Notice returns the loader fallback notice, if still shown.
func (a App) Notice() string {
	return a.notice
}

// Message returns the current flash message.
func (a App) Message() string {
	return a.messageText
}

// SelectedBookmark returns the bookmark under the grid cursor.
func (a App) SelectedBookmark() (model.Bookmark, bool) {
	if a.cursor < 0 || a.cursor >= len(a.view.Items) {
		return model.Bookmark{}, false
	}
	return a.view.Items[a.cursor], true
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.loader == nil {
		return a.resolveIcons()
	}
	return tea.Batch(a.spinner.Tick, a.loadCmd())
}

func (a App) loadCmd() tea.Cmd {
	loader := a.loader
	return func() tea.Msg {
		return BookmarksLoadedMsg{Result: loader.Load(context.Background())}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.cursor = min(a.cursor, max(len(a.view.Items)-1, 0))
		return a, nil

	case spinner.TickMsg:
		if a.mode != ModeLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case BookmarksLoadedMsg:
		return a.handleLoaded(msg.Result)

	case FaviconResolvedMsg:
		a.icons.Apply(msg.Generation, msg.Index, msg.Resolved)
		return a, nil

	case themeSavedMsg:
		a.themeSaving = false
		if msg.err != nil {
			a.logger.Warn("failed to save theme", zap.String("theme", string(msg.theme)), zap.Error(msg.err))
			a.setMessage(MessageError, fmt.Sprintf("Theme not saved: %v", msg.err))
		}
		// Toggled again while saving
		if msg.theme != a.theme {
			return a.saveTheme()
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleLoaded(res source.Result) (tea.Model, tea.Cmd) {
	a.records = res.Records
	a.origin = res.Origin
	a.folders = buildFolderEntries(a.records)
	a.mode = ModeNormal

	if res.Fallback && res.Err != nil {
		a.notice = fmt.Sprintf("Error loading bookmarks: %v. Using sample data instead.", res.Err)
	}
	a.logger.Info("bookmarks loaded",
		zap.String("origin", res.Origin),
		zap.Int("count", len(res.Records)),
		zap.Bool("fallback", res.Fallback),
	)

	a.recompute()
	return a, a.resolveIcons()
}

// recompute derives the visible page from records and state and starts a new
// favicon generation.
func (a *App) recompute() {
	a.view = a.pipeline.Apply(a.records, a.state)
	a.icons.Reset(len(a.view.Items))
	a.cursor = min(a.cursor, max(len(a.view.Items)-1, 0))
}

// applyState switches to st as a result of user input.
func (a *App) applyState(st gallery.State) tea.Cmd {
	a.state = st
	a.notice = ""
	a.recompute()
	return a.resolveIcons()
}

// resolveIcons resolves every candidate on the visible page, one command per
// card so that fast icons appear without waiting for slow ones.
func (a App) resolveIcons() tea.Cmd {
	if a.resolver == nil || len(a.view.Items) == 0 {
		return nil
	}

	resolver := a.resolver
	generation := a.icons.Generation
	cmds := make([]tea.Cmd, 0, len(a.view.Items))
	for i, b := range a.view.Items {
		candidate := b.Favicon
		cmds = append(cmds, func() tea.Msg {
			return FaviconResolvedMsg{
				Generation: generation,
				Index:      i,
				Resolved:   resolver.OrFallback(context.Background(), candidate),
			}
		})
	}
	return tea.Batch(cmds...)
}

func (a *App) setMessage(msgType MessageType, text string) {
	a.messageType = msgType
	a.messageText = text
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear any flash message on key press
	a.messageText = ""

	switch a.mode {
	case ModeLoading:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	case ModeSearch:
		return a.handleSearchMode(msg)
	case ModeHelp:
		if key.Matches(msg, a.keys.Help, a.keys.Cancel, a.keys.Quit) {
			a.mode = ModeNormal
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, nil

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Input.SetValue(a.state.Search)
		a.search.Input.CursorEnd()
		return a, a.search.Input.Focus()

	case key.Matches(msg, a.keys.Focus):
		if a.focus == FocusGrid {
			a.focus = FocusSidebar
		} else {
			a.focus = FocusGrid
		}
		return a, nil

	case key.Matches(msg, a.keys.Sort):
		a.cursor = 0
		return a, a.applyState(a.state.WithSort(a.state.Sort.Next(), a.resetPage))

	case key.Matches(msg, a.keys.NextPage):
		next := a.state.NextPage(a.view.TotalPages)
		if next == a.state {
			return a, nil
		}
		a.cursor = 0
		return a, a.applyState(next)

	case key.Matches(msg, a.keys.PrevPage):
		prev := a.state.PrevPage()
		if prev == a.state {
			return a, nil
		}
		a.cursor = 0
		return a, a.applyState(prev)

	case key.Matches(msg, a.keys.Theme):
		a.theme = a.theme.Toggle()
		a.styles = StylesFor(a.theme)
		if a.themeSaving {
			return a, nil
		}
		return a.saveTheme()

	case key.Matches(msg, a.keys.YankURL):
		return a.yankSelected()
	}

	if a.focus == FocusSidebar {
		return a.handleSidebarKey(msg)
	}
	return a.handleGridKey(msg)
}

func (a App) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if a.sidebar.Cursor < len(a.folders)-1 {
			a.sidebar.Cursor++
		}
	case key.Matches(msg, a.keys.Up):
		if a.sidebar.Cursor > 0 {
			a.sidebar.Cursor--
		}
	case key.Matches(msg, a.keys.Right):
		a.focus = FocusGrid
	case key.Matches(msg, a.keys.Select):
		if a.sidebar.Cursor >= len(a.folders) {
			return a, nil
		}
		a.cursor = 0
		return a, a.applyState(a.state.SelectFolder(a.folders[a.sidebar.Cursor].Folder))
	}
	return a, nil
}

func (a App) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	grid := a.gridLayout()
	total := len(a.view.Items)

	switch {
	case key.Matches(msg, a.keys.Down):
		a.cursor = grid.Move(a.cursor, total, 1, 0)
	case key.Matches(msg, a.keys.Up):
		a.cursor = grid.Move(a.cursor, total, -1, 0)
	case key.Matches(msg, a.keys.Right):
		a.cursor = grid.Move(a.cursor, total, 0, 1)
	case key.Matches(msg, a.keys.Left):
		if grid.Columns == 0 || a.cursor%grid.Columns == 0 {
			a.focus = FocusSidebar
			return a, nil
		}
		a.cursor = grid.Move(a.cursor, total, 0, -1)
	case key.Matches(msg, a.keys.Select):
		return a.openSelected()
	}
	return a, nil
}

func (a App) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		a.mode = ModeNormal
		a.search.Input.Blur()
		return a, nil
	case tea.KeyCtrlC:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)

	term := a.search.Input.Value()
	if term == a.state.Search {
		return a, cmd
	}
	a.cursor = 0
	return a, tea.Batch(cmd, a.applyState(a.state.WithSearch(term, a.resetPage)))
}

func (a App) openSelected() (tea.Model, tea.Cmd) {
	b, ok := a.SelectedBookmark()
	if !ok {
		a.setMessage(MessageWarning, "No bookmark selected")
		return a, nil
	}
	if err := a.openURL(b.URL); err != nil {
		a.logger.Warn("failed to open url", zap.String("url", b.URL), zap.Error(err))
		a.setMessage(MessageError, fmt.Sprintf("Failed to open: %v", err))
		return a, nil
	}
	a.setMessage(MessageInfo, "Opened "+b.DisplayURL())
	return a, nil
}

func (a App) yankSelected() (tea.Model, tea.Cmd) {
	b, ok := a.SelectedBookmark()
	if !ok {
		a.setMessage(MessageWarning, "No bookmark selected")
		return a, nil
	}
	if err := a.copyText(b.URL); err != nil {
		a.logger.Warn("failed to copy url", zap.Error(err))
		a.setMessage(MessageError, "Failed to copy to clipboard")
		return a, nil
	}
	a.setMessage(MessageSuccess, "Copied URL to clipboard")
	return a, nil
}

// saveTheme persists the current theme. The caller makes sure no other save
// is running.
func (a App) saveTheme() (App, tea.Cmd) {
	if a.prefs == nil {
		return a, nil
	}
	a.themeSaving = true
	prefs, theme := a.prefs, a.theme
	return a, func() tea.Msg {
		return themeSavedMsg{theme: theme, err: prefs.Save(storage.Prefs{Theme: theme})}
	}
}

func (a App) gridLayout() layout.GridLayout {
	bodyHeight := layout.CalculateBodyHeight(a.height, a.layoutConfig.Grid)
	sidebarWidth := layout.CalculateSidebarWidth(a.width, a.layoutConfig.Sidebar)
	return layout.CalculateGrid(a.width, sidebarWidth, bodyHeight, len(a.view.Items), a.layoutConfig.Grid)
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
