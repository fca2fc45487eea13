// Package app hosts the Bubble Tea program for the catalog UI: the product
// table, the entry form modal with its autosaved draft, and the view, delete
// and help overlays.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/catalog/pkg/debounce"
	"tableflip.dev/catalog/pkg/draft"
	"tableflip.dev/catalog/pkg/events"
	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/listing"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/product"
	"tableflip.dev/catalog/pkg/submit"
	helpview "tableflip.dev/catalog/pkg/tui/components/help"
	"tableflip.dev/catalog/pkg/tui/components/productform"
	"tableflip.dev/catalog/pkg/tui/components/toast"
	"tableflip.dev/catalog/pkg/tui/theme"
)

// Client is the catalog server API used by the UI.
type Client interface {
	listing.Lister
	submit.Loader
	submit.Sender
	submit.Remover
}

// Options configures the UI.
type Options struct {
	Client   Client
	Drafts   draft.Store
	DraftKey string

	Debounce           time.Duration
	ToastDuration      time.Duration
	ClearDraftOnSubmit bool

	// ImageBase is the catalog server URL. Image paths in the view modal
	// are relative to it.
	ImageBase string

	Logger *slog.Logger
	Theme  *theme.Theme

	// DebounceOptions are passed to the draft's debouncer.
	DebounceOptions []debounce.Option
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeView
	modeConfirm
	modeHelp
)

func (m mode) String() string {
	switch m {
	case modeList:
		return "list"
	case modeForm:
		return "form"
	case modeView:
		return "view"
	case modeConfirm:
		return "confirm"
	case modeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// modalState is the submit.Modal for the entry form. Controllers open and
// close it from command goroutines; Update reads it after each result.
type modalState struct {
	mu   sync.Mutex
	open bool
}

func (s *modalState) Open()  { s.set(true) }
func (s *modalState) Close() { s.set(false) }

func (s *modalState) set(v bool) {
	s.mu.Lock()
	s.open = v
	s.mu.Unlock()
}

func (s *modalState) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// rowStore receives rendered rows from the list refresher.
type rowStore struct {
	mu   sync.Mutex
	rows []product.Row
	seq  int
}

func (s *rowStore) Render(rows []product.Row) {
	s.mu.Lock()
	s.rows = rows
	s.seq++
	s.mu.Unlock()
}

func (s *rowStore) snapshot() ([]product.Row, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]product.Row(nil), s.rows...), s.seq
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	opts   Options
	log    *slog.Logger
	theme  theme.Theme
	keys   keyMap
	closed bool

	form      *form.Form
	formView  *productform.Model
	draft     *draft.Controller
	ctrl      *submit.Controller
	viewer    *submit.Viewer
	deleter   *submit.Deleter
	refresher *listing.Refresher
	bus       *events.Bus
	detach    func()

	modal   *modalState
	rows    *rowStore
	rowSeq  int
	toasts  *toast.Model
	table   table.Model
	help    help.Model
	spinner spinner.Model
	overlay *helpview.Model

	mode       mode
	prev       mode
	viewing    *product.Product
	confirmID  string
	fromEdit   bool
	submitting bool
	busy       int

	width  int
	height int
}

// New wires the controllers together. ctx bounds every request the UI
// makes; cancel it to abort them.
func New(ctx context.Context, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}

	m := &Model{
		ctx:   ctx,
		opts:  opts,
		log:   logger.With("component", "tui"),
		theme: th,
		keys:  defaultKeys(),
		modal: &modalState{},
		rows:  &rowStore{},
		bus:   &events.Bus{},
		form:  form.ProductForm(),
	}

	m.toasts = toast.New(opts.ToastDuration, th.Toast)
	shared := submit.Options{
		Sink:       m.toasts,
		Bus:        m.bus,
		Modal:      m.modal,
		Logger:     logger,
		ClearDraft: opts.ClearDraftOnSubmit,
	}

	if opts.Drafts != nil {
		dopts := []draft.Option{
			draft.WithLogger(logger),
			draft.WithDebounceOptions(opts.DebounceOptions...),
		}
		if opts.DraftKey != "" {
			dopts = append(dopts, draft.WithKey(opts.DraftKey))
		}
		if opts.Debounce > 0 {
			dopts = append(dopts, draft.WithDelay(opts.Debounce))
		}
		m.draft = draft.New(m.form, opts.Drafts, dopts...)
		shared.Draft = m.draft
		if hasContent(m.draft.Restored()) {
			m.toasts.Notify(notify.New(notify.Info, notify.MsgRestored))
		}
	}

	m.ctrl = submit.New(m.form, opts.Client, shared)
	m.viewer = submit.NewViewer(opts.Client, nil, m.form, m.ctrl, shared)
	m.deleter = submit.NewDeleter(opts.Client, shared)
	m.refresher = listing.New(opts.Client, m.rows,
		listing.WithSink(m.toasts),
		listing.WithLogger(logger),
	)
	m.detach = m.refresher.Attach(ctx, m.bus)

	m.formView = productform.New(m.form, th.Form)
	m.formView.OnChange(m.onFormChange)

	m.table = table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = th.Table.Header
	styles.Cell = th.Table.Cell
	styles.Selected = th.Table.Selected
	m.table.SetStyles(styles)

	m.help = help.New()
	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = th.Footer.Busy
	return m
}

func hasContent(d draft.Draft) bool {
	for name, v := range d {
		if name != form.FieldAvailable && v != "" {
			return true
		}
	}
	return false
}

// onFormChange autosaves the creation form. Edits of existing products are
// not drafted.
func (m *Model) onFormChange() {
	if m.draft == nil {
		return
	}
	if _, editing := m.ctrl.Editing(); editing {
		return
	}
	m.draft.OnInput()
}

// Close flushes a pending draft save and detaches from the event bus. It is
// safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	if m.draft != nil {
		if _, editing := m.ctrl.Editing(); !editing {
			m.draft.Flush()
		}
	}
	if m.detach != nil {
		m.detach()
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.toasts.Schedule())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case toast.TickMsg:
		return m, m.toasts.Update(msg)

	case spinner.TickMsg:
		if m.busy == 0 && !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listedMsg:
		m.done()
		m.syncRows()

	case submittedMsg:
		m.submitting = false
		m.formView.SetDisabled(false)
		m.syncRows()
		if msg.res.OK {
			m.fromEdit = false
			m.formView.Sync()
		}
		if !m.modal.IsOpen() && m.mode == modeForm {
			m.mode = modeList
		}

	case viewedMsg:
		m.done()
		if msg.res.OK && msg.res.Product != nil {
			m.viewing = msg.res.Product
			m.mode = modeView
		}

	case editLoadedMsg:
		m.done()
		if msg.res.OK {
			m.fromEdit = true
			m.formView.Sync()
			m.formView.SetTitle("Editar produto")
			m.mode = modeForm
			cmds = append(cmds, m.formView.Focus())
		}

	case deletedMsg:
		m.done()
		m.syncRows()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	default:
		if m.mode == modeForm {
			_, cmd := m.formView.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.toasts.Schedule())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.mode {
	case modeForm:
		return m.formKey(msg)

	case modeView:
		switch {
		case key.Matches(msg, m.keys.Edit) && m.viewing != nil:
			id := m.viewing.ID
			m.viewing = nil
			m.mode = modeList
			return m.startEdit(id)
		case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.View):
			m.viewing = nil
			m.mode = modeList
		}
		return nil

	case modeConfirm:
		switch {
		case key.Matches(msg, m.keys.Yes):
			id := m.confirmID
			m.confirmID = ""
			m.mode = modeList
			return m.deleteCmd(id)
		case key.Matches(msg, m.keys.No):
			m.confirmID = ""
			m.mode = modeList
		}
		return nil

	case modeHelp:
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
			m.mode = m.prev
			return nil
		}
		if m.overlay != nil {
			var cmd tea.Cmd
			m.overlay, cmd = m.overlay.Update(msg)
			return cmd
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp()
		return nil
	case key.Matches(msg, m.keys.New):
		return m.openCreate()
	case key.Matches(msg, m.keys.Refresh):
		return m.refreshCmd()
	case key.Matches(msg, m.keys.View):
		if id := m.selectedID(); id != "" {
			return m.viewCmd(id)
		}
		return nil
	case key.Matches(msg, m.keys.Edit):
		if id := m.selectedID(); id != "" {
			return m.startEdit(id)
		}
		return nil
	case key.Matches(msg, m.keys.Delete):
		if id := m.selectedID(); id != "" {
			m.confirmID = id
			m.mode = modeConfirm
		}
		return nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *Model) formKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) {
		if m.submitting {
			return nil
		}
		m.ctrl.Cancel()
		if m.fromEdit {
			m.reloadDraft()
		}
		m.mode = modeList
		return nil
	}

	wantSubmit, cmd := m.formView.Update(msg)
	if !wantSubmit || m.submitting {
		return cmd
	}
	m.submitting = true
	m.formView.SetDisabled(true)
	return tea.Batch(cmd, m.submitCmd(), m.spinner.Tick)
}

// openCreate opens the form in creation mode. After an edit the form holds
// the edited product, so the saved draft is applied again.
func (m *Model) openCreate() tea.Cmd {
	if err := m.ctrl.Open(); err != nil {
		return nil
	}
	if m.fromEdit {
		m.reloadDraft()
	}
	m.formView.Sync()
	m.formView.SetTitle("Novo produto")
	m.mode = modeForm
	return m.formView.Focus()
}

func (m *Model) reloadDraft() {
	m.fromEdit = false
	if m.draft != nil {
		m.draft.Reload()
	}
	m.formView.Sync()
}

// startEdit saves the pending draft before the form is filled with the
// product being edited.
func (m *Model) startEdit(id string) tea.Cmd {
	if m.submitting {
		return nil
	}
	if m.draft != nil && !m.fromEdit {
		m.draft.Flush()
	}
	return m.editCmd(id)
}

func (m *Model) showHelp() {
	w, h := max(m.width-4, 40), max(m.height-4, 12)
	if m.overlay == nil {
		settings := helpview.Settings{Server: m.opts.ImageBase}
		if m.draft != nil {
			settings.DraftKey = m.draft.Key()
			settings.Debounce = m.opts.Debounce
			if settings.Debounce <= 0 {
				settings.Debounce = draft.DefaultDelay
			}
		}
		m.overlay = helpview.New(w, h, settings)
	} else {
		m.overlay.SetSize(w, h)
	}
	m.prev = m.mode
	m.mode = modeHelp
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

func (m *Model) selectedID() string {
	rows, _ := m.rows.snapshot()
	i := m.table.Cursor()
	if i < 0 || i >= len(rows) {
		return ""
	}
	return rows[i].ID
}

func (m *Model) syncRows() {
	rows, seq := m.rows.snapshot()
	if seq == m.rowSeq {
		return
	}
	m.rowSeq = seq
	m.table.SetRows(tableRows(rows))
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	m.table.SetColumns(columns(w))
	// Title, blank line, footer and the toast area.
	m.table.SetHeight(max(h-8, 3))
	m.formView.SetWidth(min(w-10, 60))
	if m.overlay != nil {
		m.overlay.SetSize(max(w-4, 40), max(h-4, 12))
	}
}

func (m *Model) start() tea.Cmd {
	m.busy++
	if m.busy == 1 && !m.submitting {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) done() {
	if m.busy > 0 {
		m.busy--
	}
}

// Mode reports the active screen, for tests and logging.
func (m *Model) Mode() string { return m.mode.String() }

var errNoClient = errors.New("no catalog client configured")
