package src

import (
	"context"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/editor"
	"github.com/Protocol-Lattice/cps-console/src/prefs"
	"github.com/Protocol-Lattice/cps-console/src/session"
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

// analysisMsg carries the outcome of one analysis cycle back to the loop.
type analysisMsg struct {
	out analysis.Outcome
}

type uploadMsg struct {
	upload *analysis.Upload
	err    error
}

type toastExpiredMsg struct {
	id int
}

// Options wires a console model to its collaborators.
type Options struct {
	Transport analysis.Transport
	Uploader  *analysis.Uploader
	Prefs     *prefs.Store
	Session   *session.Store
	Server    string
	Locale    string
	StartDir  string
	Logger    *slog.Logger
}

type model struct {
	ctx      context.Context
	log      *slog.Logger
	server   string
	prefs    *prefs.Store
	session  *session.Store
	uploader *analysis.Uploader
	orch     *analysis.Orchestrator
	ctrl     *viewController
	loc      ui.Localizer

	textarea textarea.Model
	editor   *editor.TextArea
	viewport viewport.Model
	spinner  spinner.Model
	picker   filepicker.Model
	help     help.Model
	keys     keyMap
	styles   ui.Styles

	filename     string
	panelFocused bool
	picking      bool
	selected     int
	startDir     string
	width        int
	height       int

	// copyText writes to the system clipboard; tests replace it.
	copyText func(string) error
}

func NewModel(ctx context.Context, opts Options) *model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	store := opts.Prefs
	if store == nil {
		store = prefs.NewStore(prefs.Defaults())
	}
	startDir := opts.StartDir
	if startDir == "" {
		startDir, _ = os.Getwd()
	}

	m := &model{
		ctx:      ctx,
		log:      logger,
		server:   opts.Server,
		prefs:    store,
		session:  opts.Session,
		uploader: opts.Uploader,
		loc:      ui.NewLocalizer(opts.Locale),
		keys:     defaultKeyMap(),
		styles:   ui.NewStyles(store.Snapshot().Theme),
		startDir: startDir,
		copyText: clipboard.WriteAll,
	}

	m.textarea = textarea.New()
	m.textarea.Placeholder = "// Compiscript source"
	m.textarea.Focus()
	m.editor = editor.NewTextArea(&m.textarea)

	snap := opts.Session.Load()
	m.filename = snap.Filename
	m.editor.SetText(snap.Source)

	reconciler := NewReconciler(m.editor, m.loc)
	m.ctrl = newViewController(m.loc, reconciler)
	m.orch = analysis.NewOrchestrator(opts.Transport, m.editor, store, m.ctrl, logger)

	m.viewport = viewport.New(0, 0)

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Line
	m.spinner.Style = m.styles.Running

	m.help = help.New()

	m.picker = filepicker.New()
	m.picker.AllowedTypes = []string{analysis.SourceExt}
	m.picker.CurrentDirectory = startDir
	m.picker.AutoHeight = false
	m.picker.Height = 12

	return m
}

func (m *model) Init() tea.Cmd { return textarea.Blink }

// saveSession persists the buffer; failures are logged, never fatal.
func (m *model) saveSession() {
	if err := m.session.Save(m.ctx, m.filename, m.editor.Text()); err != nil {
		m.log.Warn("session save failed", "error", err)
	}
}
