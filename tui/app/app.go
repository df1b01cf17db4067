// Package app is the root bubbletea model. It frames the active page with
// navigation, the error banner, a status bar and an optional log pane, and
// drives the router from key presses.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/llmcompare/logging"
	"github.com/grovetools/llmcompare/pkg/router"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/tui/components/help"
	"github.com/grovetools/llmcompare/tui/components/logviewer"
	"github.com/grovetools/llmcompare/tui/keymap"
)

// View is a routable page the frame can draw.
type View interface {
	router.Module
	// Update handles a message while the page is active.
	Update(msg tea.Msg) tea.Cmd
	// View renders the page into width x height cells.
	View(width, height int) string
	// Capturing reports whether a text input owns the keyboard, in which
	// case frame shortcuts other than ctrl+c are not applied.
	Capturing() bool
	// HelpKeys returns the page's bindings for the help overlay.
	HelpKeys() keymap.SectionedKeyMap
}

// NavigatedMsg reports the end of a navigation. Changed is false when the
// router had nothing to do, such as going back from the first entry.
type NavigatedMsg struct {
	Path    string
	Changed bool
}

// logPaneHeight is the number of rows the log pane takes when open.
const logPaneHeight = 8

// Model is the application frame.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	router *router.Router
	store  *state.Store
	views  map[string]View
	logger *logrus.Entry

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	logs    logviewer.Model

	changes     <-chan state.Change
	unsubscribe func()

	startPath   string
	showLogs    bool
	navigating  bool
	width       int
	height      int
	quitting    bool
}

// Option configures a Model.
type Option func(*Model)

// WithStartPath sets the route opened on start.
func WithStartPath(path string) Option {
	return func(m *Model) { m.startPath = path }
}

// WithKeyConfig applies keybinding overrides to the frame.
func WithKeyConfig(kc keymap.Config) Option {
	return func(m *Model) { m.keys = NewKeyMap(kc) }
}

// WithLogger overrides the frame logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(m *Model) { m.logger = logger }
}

// New creates the frame. Every view must already be registered with r.
// Cancelling ctx, or quitting, cancels work started from the TUI.
func New(ctx context.Context, r *router.Router, store *state.Store, views []View, opts ...Option) *Model {
	ctx, cancel := context.WithCancel(ctx)
	m := &Model{
		ctx:       ctx,
		cancel:    cancel,
		router:    r,
		store:     store,
		views:     make(map[string]View, len(views)),
		keys:      NewKeyMap(keymap.Config{}),
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		logs:      logviewer.New(0, 0),
		startPath: "/",
	}
	for _, v := range views {
		m.views[v.Name()] = v
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.NewLogger("tui")
	}
	m.help = help.New(m.keys)
	m.changes, m.unsubscribe = store.Subscribe(256)
	return m
}

// Init starts the first navigation and the store subscription.
func (m *Model) Init() tea.Cmd {
	m.navigating = true
	path := m.startPath
	start := func() tea.Msg {
		_ = m.router.Start(m.ctx, path)
		return NavigatedMsg{Path: path, Changed: true}
	}
	return tea.Batch(start, m.waitForChange(), m.spinner.Tick)
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return c
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.logs.SetSize(msg.Width, logPaneHeight)
		return m, nil

	case NavigatedMsg:
		m.navigating = false
		if msg.Changed {
			m.logger.WithField("path", m.router.Location()).Debug("Navigated")
		}
		return m, nil

	case state.Change:
		var cmd tea.Cmd
		if v, ok := m.activeView(); ok {
			cmd = v.Update(msg)
		}
		return m, tea.Batch(cmd, m.waitForChange())

	case logviewer.LogLineMsg:
		m.logs, _ = m.logs.Update(msg)
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if v, ok := m.activeView(); ok {
			cmds = append(cmds, v.Update(msg))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// Results of page commands go back to the page that is showing.
	if v, ok := m.activeView(); ok {
		return m, v.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.help.ShowAll {
		m.help, _ = m.help.Update(msg)
		return nil
	}

	v, hasView := m.activeView()
	if hasView && v.Capturing() {
		return v.Update(msg)
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()
	case key.Matches(msg, k.Help):
		var page keymap.SectionedKeyMap
		if hasView {
			page = v.HelpKeys()
		}
		m.help.SetKeys(combinedKeys{frame: m.keys, page: page})
		m.help.Toggle()
		return nil
	case key.Matches(msg, k.Back) && m.errorMessage() != "":
		m.DismissError()
		return nil
	case key.Matches(msg, k.Logs):
		m.showLogs = !m.showLogs
		return nil
	case key.Matches(msg, k.NextTab):
		return m.cycle(1)
	case key.Matches(msg, k.PrevTab):
		return m.cycle(-1)
	case key.Matches(msg, k.Jump):
		// Only digit keys carry a page number.
		if len(msg.Runes) != 1 {
			return nil
		}
		return m.jump(int(msg.Runes[0] - '1'))
	case key.Matches(msg, k.HistoryBack):
		return m.history(m.router.Back)
	case key.Matches(msg, k.HistoryForward):
		return m.history(m.router.Forward)
	}

	if hasView {
		return v.Update(msg)
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	m.unsubscribe()
	return tea.Quit
}

// Navigate returns a command that moves the router to path.
func (m *Model) Navigate(path string) tea.Cmd {
	m.navigating = true
	return func() tea.Msg {
		changed := m.router.Navigate(m.ctx, path)
		return NavigatedMsg{Path: path, Changed: changed}
	}
}

func (m *Model) history(step func(context.Context) bool) tea.Cmd {
	m.navigating = true
	return func() tea.Msg {
		changed := step(m.ctx)
		return NavigatedMsg{Path: m.router.Location(), Changed: changed}
	}
}

// cycle moves to the next or previous navigation entry, wrapping around.
func (m *Model) cycle(delta int) tea.Cmd {
	items := m.router.NavItems()
	if len(items) == 0 {
		return nil
	}
	current := 0
	for i, item := range items {
		if item.Active {
			current = i
			break
		}
	}
	next := (current + delta + len(items)) % len(items)
	return m.Navigate(items[next].Path)
}

func (m *Model) jump(index int) tea.Cmd {
	items := m.router.NavItems()
	if index < 0 || index >= len(items) {
		return nil
	}
	return m.Navigate(items[index].Path)
}

// activeView returns the page the router shows, if it has one.
func (m *Model) activeView() (View, bool) {
	mod, ok := m.router.VisibleModule()
	if !ok {
		return nil, false
	}
	v, ok := m.views[mod.Name()]
	return v, ok
}

func (m *Model) errorMessage() string {
	switch e := m.store.ReadModule(state.App)[state.KeyError].(type) {
	case nil:
		return ""
	case string:
		return e
	case error:
		return e.Error()
	default:
		return fmt.Sprint(e)
	}
}

// DismissError clears the banner.
func (m *Model) DismissError() {
	m.store.Write(state.App, state.Fields{state.KeyError: nil})
}

// Close releases the store subscription. It is safe to call more than once.
func (m *Model) Close() {
	m.cancel()
	m.unsubscribe()
}
