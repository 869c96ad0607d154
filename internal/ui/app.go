package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookshelf/internal/book"
	"github.com/five82/bookshelf/internal/logtail"
	"github.com/five82/bookshelf/internal/prefs"
	"github.com/five82/bookshelf/internal/presenter"
	"github.com/five82/bookshelf/internal/state"
)

// mode is the active input mode.
type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
	modeConfirm
	modeActivity
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Presenter     *presenter.Presenter
	Notifications <-chan presenter.Notification
	ThemeName     string
	PrefsPath     string
	LogPath       string
	APIURL        string
	Tick          time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	p         *presenter.Presenter
	notes     <-chan presenter.Notification
	prefsPath string
	logPath   string
	apiURL    string
	tick      time.Duration

	// UI state
	theme    Theme
	keys     keyMap
	mode     mode
	showHelp bool
	width    int
	height   int
	ready    bool
	spinner  spinner.Model

	// Data state
	snapshot    state.State
	lastUpdated time.Time
	selectedRow int

	// Search input
	search     textinput.Model
	prevSearch string

	// Add/edit form
	form bookForm

	// Delete confirmation
	confirm book.Book

	// Footer notification
	notice   presenter.Notification
	noticeAt time.Time

	// Activity view
	activity      viewport.Model
	activityLines []logtail.Entry
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Placeholder = "title or author"
	search.Prompt = "/ "
	search.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		ctx:       ctx,
		p:         opts.Presenter,
		notes:     opts.Notifications,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		apiURL:    opts.APIURL,
		tick:      tick,
		theme:     GetTheme(opts.ThemeName),
		keys:      DefaultKeyMap(),
		spinner:   sp,
		search:    search,
		activity:  viewport.New(80, 20),
	}
	if m.p != nil {
		m.snapshot = m.p.Snapshot()
		m.search.SetValue(m.snapshot.Query.Search)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.tick),
		m.spinner.Tick,
	}
	if m.p != nil {
		cmds = append(cmds, loadCmd(m.ctx, m.p))
	}
	if m.notes != nil {
		cmds = append(cmds, waitForNotification(m.notes))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeActivity()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		return m.handleOpDone(msg)

	case notificationMsg:
		m.notice = presenter.Notification(msg)
		m.noticeAt = time.Now()
		return m, waitForNotification(m.notes)

	case activityMsg:
		m.activityLines = logtail.ParseLines(msg.lines)
		m.updateActivityViewport()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	switch m.mode {
	case modeForm:
		return m.renderForm()
	case modeConfirm:
		return m.renderConfirm()
	case modeActivity:
		return m.renderActivity()
	}
	return m.renderMain()
}

// handleKey routes keyboard input by mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modeActivity:
		return m.handleActivityKey(msg)
	}
	return m.handleListKey(msg)
}

// handleListKey processes keys in the book list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(m.visibleBooks())-1 {
			m.selectedRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(len(m.visibleBooks())-1, 0)
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.goToPage(m.snapshot.Page.Current - 1)
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.goToPage(m.snapshot.Page.Current + 1)
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.prevSearch = m.snapshot.Query.Search
		m.search.SetValue(m.prevSearch)
		m.search.CursorEnd()
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CycleGenre):
		m.cycleGenre()
		return m, nil

	case key.Matches(msg, m.keys.CycleStatus):
		m.cycleStatus()
		return m, nil

	case key.Matches(msg, m.keys.ClearFilter):
		m.clearFilters()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.form = newBookForm("", book.Form{Status: string(book.StatusAvailable)})
		m.mode = modeForm
		cmd := m.form.focusCmd()
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		b, ok := m.selectedBook()
		if !ok {
			return m, nil
		}
		m.form = newBookForm(b.ID, book.FormFrom(b))
		m.mode = modeForm
		cmd := m.form.focusCmd()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		b, ok := m.selectedBook()
		if !ok {
			return m, nil
		}
		m.confirm = b
		m.mode = modeConfirm
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.p == nil {
			return m, nil
		}
		return m, loadCmd(m.ctx, m.p)

	case key.Matches(msg, m.keys.Activity):
		m.mode = modeActivity
		m.resizeActivity()
		return m, readActivityCmd(m.logPath)
	}

	return m, nil
}

// handleConfirmKey answers the delete confirmation.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id := m.confirm.ID
		m.confirm = book.Book{}
		m.mode = modeList
		if m.p == nil {
			return m, nil
		}
		return m, removeCmd(m.ctx, m.p, id)
	case "n", "N", "esc", "q":
		m.confirm = book.Book{}
		m.mode = modeList
	}
	return m, nil
}

// handleTick refreshes the snapshot, expires the notice and keeps the
// activity view current.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.refreshSnapshot()
	if !m.noticeAt.IsZero() && time.Since(m.noticeAt) > NoticeTTL {
		m.notice = presenter.Notification{}
		m.noticeAt = time.Time{}
	}

	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.mode == modeActivity {
		cmds = append(cmds, readActivityCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

// handleOpDone applies the outcome of a presenter call.
func (m Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	m.refreshSnapshot()

	if msg.op != opSave {
		return m, nil
	}

	var verr *presenter.ValidationError
	switch {
	case msg.err == nil:
		m.form = bookForm{}
		m.mode = modeList
		if msg.id == "" {
			// New books are appended; show the last page.
			m.goToPage(m.snapshot.TotalPages())
			m.selectedRow = max(len(m.visibleBooks())-1, 0)
		}
	case errors.As(msg.err, &verr):
		m.form.setErrors(verr.All)
	default:
		m.form.submitting = false
	}
	return m, nil
}

// refreshSnapshot re-reads presenter state and keeps the selection on the page.
func (m *Model) refreshSnapshot() {
	if m.p == nil {
		return
	}
	m.snapshot = m.p.Snapshot()
	m.lastUpdated = time.Now()
	if n := len(m.snapshot.PageSlice()); m.selectedRow >= n {
		m.selectedRow = max(n-1, 0)
	}
}

func (m Model) visibleBooks() []book.Book {
	return m.snapshot.PageSlice()
}

func (m Model) selectedBook() (book.Book, bool) {
	books := m.visibleBooks()
	if m.selectedRow < 0 || m.selectedRow >= len(books) {
		return book.Book{}, false
	}
	return books[m.selectedRow], true
}

func (m *Model) goToPage(n int) {
	if m.p == nil {
		return
	}
	before := m.snapshot.Page.Current
	m.p.SetPage(n)
	m.refreshSnapshot()
	if m.snapshot.Page.Current != before {
		m.selectedRow = 0
	}
}

// Messages

type tickMsg time.Time

type notificationMsg presenter.Notification

type activityMsg struct {
	lines []string
}

type opKind int

const (
	opLoad opKind = iota
	opSave
	opRemove
)

type opDoneMsg struct {
	op  opKind
	id  string
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForNotification(ch <-chan presenter.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}

func loadCmd(ctx context.Context, p *presenter.Presenter) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: opLoad, err: p.Load(ctx)}
	}
}

func saveCmd(ctx context.Context, p *presenter.Presenter, id string, form book.Form) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == "" {
			err = p.Create(ctx, form)
		} else {
			err = p.Edit(ctx, id, form)
		}
		return opDoneMsg{op: opSave, id: id, err: err}
	}
}

func removeCmd(ctx context.Context, p *presenter.Presenter, id string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: opRemove, id: id, err: p.Remove(ctx, id)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
