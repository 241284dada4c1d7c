// Package tui provides the interactive terminal view using Bubble Tea. It
// paints core state and forwards key events; all dispatch and session logic
// lives in the core packages.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joss/termbridge/internal/config"
	"github.com/joss/termbridge/internal/dispatch"
	"github.com/joss/termbridge/internal/history"
	"github.com/joss/termbridge/internal/session"
	"github.com/joss/termbridge/internal/simulate"
	tbstrings "github.com/joss/termbridge/internal/strings"
	"github.com/joss/termbridge/internal/termlog"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	connectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// Model is the terminal view model. The core state (session manager,
// history, output log) is shared by pointer; the model owns only widgets
// and transient flags.
type Model struct {
	sessions   *session.Manager
	store      *history.Store
	cursor     *history.Cursor
	sim        *simulate.Simulator
	dispatcher *dispatch.Dispatcher
	out        *termlog.Log

	spinner  spinner.Model
	input    textinput.Model
	viewport viewport.Model

	connecting bool
	busy       bool
	ready      bool
	quitting   bool
	width      int
	height     int
}

// Message types
type connectedMsg struct{ err error }
type dispatchDoneMsg struct{}

// New wires the full core and returns the model over it.
func New() Model {
	store := history.NewStore()
	cursor := history.NewCursor(store)
	out := termlog.New()
	sim := simulate.New()
	sessions := session.NewManager(store)
	dispatcher := dispatch.New(sessions, store, cursor, sim, out)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "type a command"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	out.System("Connecting to backend...")

	return Model{
		sessions:   sessions,
		store:      store,
		cursor:     cursor,
		sim:        sim,
		dispatcher: dispatcher,
		out:        out,
		spinner:    s,
		input:      ti,
		connecting: true,
	}
}

// Init starts the spinner and the initial connection attempt.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.connect())
}

func (m Model) connect() tea.Cmd {
	return func() tea.Msg {
		return connectedMsg{err: m.sessions.Initialize(context.Background())}
	}
}

func (m Model) submit(raw string) tea.Cmd {
	return func() tea.Msg {
		m.dispatcher.Dispatch(context.Background(), raw)
		return dispatchDoneMsg{}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			m.quitting = true
			return m, tea.Quit

		case "ctrl+r":
			if !m.connecting && !m.busy {
				m.connecting = true
				m.out.System("Reconnecting...")
				m.refreshViewport()
				return m, m.connect()
			}

		case "enter":
			raw := strings.TrimSpace(m.input.Value())
			if raw == "" || m.busy {
				return m, nil
			}
			if strings.EqualFold(raw, "exit") {
				m.quitting = true
				return m, tea.Quit
			}
			m.busy = true
			m.input.SetValue("")
			return m, m.submit(raw)

		case "up":
			if !m.busy {
				if cmd, ok := m.cursor.Older(); ok {
					m.input.SetValue(cmd)
					m.input.CursorEnd()
				}
				return m, nil
			}

		case "down":
			if !m.busy {
				if cmd, ok := m.cursor.Newer(); ok {
					m.input.SetValue(cmd)
					m.input.CursorEnd()
				} else {
					m.input.SetValue("")
				}
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 4
		footerHeight := 4
		m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-footerHeight)
		m.ready = true
		m.refreshViewport()

	case connectedMsg:
		m.connecting = false
		if msg.err != nil {
			m.out.System("Backend unreachable, running in offline mode. Type 'help' for available commands.")
		} else if sess, ok := m.sessions.Current(); ok {
			m.out.System(fmt.Sprintf("Connected to %s (session %s)", sess.BackendAddress, sess.ID))
		}
		m.refreshViewport()

	case dispatchDoneMsg:
		m.busy = false
		m.refreshViewport()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderEntries(m.out.Entries(), m.viewport.Width))
	m.viewport.GotoBottom()
}

// renderEntries styles the log per entry kind, wrapped to the viewport
// width so long backend output never forces horizontal truncation.
func renderEntries(entries []termlog.Entry, width int) string {
	var b strings.Builder
	for _, e := range entries {
		text := e.Text
		if width > 0 {
			text = tbstrings.WordWrap(text, width)
		}
		switch e.Kind {
		case termlog.KindSystem:
			b.WriteString(systemStyle.Render(text))
		case termlog.KindCommand:
			b.WriteString(commandStyle.Render(text))
		case termlog.KindError:
			b.WriteString(errorStyle.Render(text))
		default:
			b.WriteString(text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the terminal.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.ready {
		return fmt.Sprintf("\n  %s Starting...", m.spinner.View())
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("termbridge") + "\n")
	b.WriteString(m.statusLine() + "\n")

	b.WriteString(boxStyle.Width(m.width - 4).Render(m.viewport.View()) + "\n")

	prompt := tbstrings.Prompt(config.Get().User, m.sessions.Directory(m.sim.Cwd()))
	if m.busy {
		b.WriteString(fmt.Sprintf("\n  %s running...\n", m.spinner.View()))
	} else {
		b.WriteString("\n  " + commandStyle.Render(prompt) + " " + m.input.View() + "\n")
	}

	b.WriteString(helpStyle.Render("  enter: run │ ↑/↓: history │ ctrl+r: reconnect │ ctrl+c: quit"))

	return b.String()
}

func (m Model) statusLine() string {
	status := m.sessions.Status()

	icon := errorStyle.Render("○")
	text := status.String()
	switch {
	case m.connecting:
		icon = m.spinner.View()
		text = "connecting"
	case status == session.StatusConnected:
		icon = connectedStyle.Render("●")
	}

	line := fmt.Sprintf("%s %s", icon, text)
	if sess, ok := m.sessions.Current(); ok {
		line += " │ " + sess.BackendAddress + " │ " + tbstrings.Truncate(sess.ID, 12)
	}
	return infoStyle.Render("  " + line)
}

// Run starts the interactive terminal and blocks until quit.
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
