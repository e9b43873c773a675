// Package app is the Bubble Tea model for the power-bar display. The
// display is a read-only observer: it polls snapshots on a tick and never
// writes controller state. Quitting cancels the bridge context.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renoua/potato/internal/config"
	"github.com/renoua/potato/internal/pad"
	"github.com/renoua/potato/internal/sensor"
	"github.com/renoua/potato/internal/status"
	"github.com/renoua/potato/internal/ui"
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	pub      *status.Publisher
	session  *sensor.Session
	shutdown func()
}

// Model is the root Bubble Tea model.
type Model struct {
	width  int
	height int

	shared *shared

	// Cached snapshot
	snap       pad.State
	connState  sensor.ConnectionState
	sessionErr error
}

// New creates the display model. shutdown cancels the bridge context when
// the user quits.
func New(pub *status.Publisher, session *sensor.Session, shutdown func()) Model {
	return Model{
		shared: &shared{
			pub:      pub,
			session:  session,
			shutdown: shutdown,
		},
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c":
			m.shared.shutdown()
			return m, tea.Quit
		}
		return m, nil

	case TickMsg:
		m.snap = m.shared.pub.Snapshot()
		m.connState = m.shared.session.State()
		return m, tickCmd()

	case SessionDoneMsg:
		m.sessionErr = msg.Err
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Starting power bar..."
	}

	live := m.connState == sensor.Subscribed
	menuBar := ui.RenderMenuBar(m.width, m.connState.String(), live)

	bar := ui.RenderBar(m.width, m.snap)
	buttons := ui.RenderButtons(m.snap.Buttons)

	errText := ""
	if m.sessionErr != nil {
		errText = m.sessionErr.Error()
	}
	statusBar := ui.RenderStatusBar(m.width, status.Line(m.snap), errText)

	return menuBar + "\n\n" + bar + "\n" + buttons + "\n\n" + statusBar
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
