// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	session "github.com/jeranaias/rigchat/internal/chat"
	"github.com/jeranaias/rigchat/internal/config"
	"github.com/jeranaias/rigchat/internal/model"
	"github.com/jeranaias/rigchat/internal/ui/styles"
)

const (
	// ProbeInterval is how often the connection indicator is refreshed.
	ProbeInterval = 15 * time.Second

	probeTimeout = 5 * time.Second
)

// =============================================================================
// MESSAGES
// =============================================================================

// changedMsg reports that the session changed since the last redraw.
type changedMsg struct{}

// probeMsg carries a connection probe result.
type probeMsg struct {
	online bool
}

// probeTickMsg schedules the next probe.
type probeTickMsg struct{}

// =============================================================================
// OPTIONS
// =============================================================================

// Options wires the view to the rest of the application.
type Options struct {
	// Session is the conversation shown. Required.
	Session *session.Session

	// Settings supplies the effective settings (theme, save path, endpoint).
	Settings session.SettingsSource

	// Probe reports whether the inference server answers. Nil disables
	// the connection indicator.
	Probe func(ctx context.Context, s config.Settings) bool

	// SaveTheme persists a theme change. Nil keeps the change for this run.
	SaveTheme func(theme string) error
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	session   *session.Session
	settings  session.SettingsSource
	probe     func(ctx context.Context, s config.Settings) bool
	saveTheme func(theme string) error

	// changes is a one-slot signal. Listeners never block on it.
	changes     chan struct{}
	unsubscribe func()

	theme    *styles.Theme
	renderer *glamour.TermRenderer
	rendered map[string]string // assistant markdown by message ID

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     KeyMap

	width  int
	height int
	ready  bool

	messages []model.Message
	awaiting bool
	online   bool
	probed   bool
	notice   string
	quitting bool
}

// New creates the chat view and subscribes it to the session.
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 8192
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	m := &Model{
		session:   opts.Session,
		settings:  opts.Settings,
		probe:     opts.Probe,
		saveTheme: opts.SaveTheme,
		changes:   make(chan struct{}, 1),
		rendered:  make(map[string]string),
		viewport:  viewport.New(80, 20),
		input:     ti,
		spinner:   sp,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		width:     80,
		height:    24,
	}
	m.applyTheme(m.settings.Current().Theme)
	m.unsubscribe = m.session.Subscribe(func(session.Change) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	m.refresh()
	return m
}

// Close detaches the view from the session.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the input cursor, the change watcher and the first probe.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.waitForChange()}
	if m.probe != nil {
		cmds = append(cmds, m.probeCmd())
	}
	return tea.Batch(cmds...)
}

// waitForChange blocks until the session signals a change.
func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

func (m *Model) probeCmd() tea.Cmd {
	probe := m.probe
	settings := m.settings.Current()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		return probeMsg{online: probe(ctx, settings)}
	}
}

func probeTick() tea.Cmd {
	return tea.Tick(ProbeInterval, func(time.Time) tea.Msg {
		return probeTickMsg{}
	})
}

// =============================================================================
// STATE SYNC
// =============================================================================

// refresh copies the session snapshot into the view.
func (m *Model) refresh() {
	m.messages = m.session.Snapshot()
	m.awaiting = m.session.State() == session.Awaiting
	m.updateViewport()
}

// applyTheme switches palettes and rebuilds the markdown renderer.
func (m *Model) applyTheme(name string) {
	m.theme = styles.NewTheme(name)
	m.spinner.Style = m.theme.Spinner
	m.input.PromptStyle = m.theme.InputPrompt
	m.help.Styles.ShortKey = m.theme.ShortcutKey
	m.help.Styles.ShortDesc = m.theme.ShortcutDesc
	m.help.Styles.FullKey = m.theme.ShortcutKey
	m.help.Styles.FullDesc = m.theme.ShortcutDesc
	m.rebuildRenderer()
}

func (m *Model) rebuildRenderer() {
	clear(m.rendered)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.GlamourStyle()),
		glamour.WithWordWrap(m.contentWidth()),
	)
	if err != nil {
		// Plain text fallback.
		m.renderer = nil
		return
	}
	m.renderer = r
}

// contentWidth is the usable width for message bodies.
func (m *Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// Messages returns the messages currently displayed.
func (m *Model) Messages() []model.Message {
	return m.messages
}

// Notice returns the current status notice, if any.
func (m *Model) Notice() string {
	return m.notice
}

// Theme returns the active theme.
func (m *Model) Theme() *styles.Theme {
	return m.theme
}
