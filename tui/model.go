package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/Rvioleck/3D-Lab-Data-Factory/chat"
	"github.com/Rvioleck/3D-Lab-Data-Factory/markdown"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ tea.Model = Model{}

const sidebarWidth = 24

// Model is the Bubble Tea model for the chat TUI. The chat store is the
// single source of truth; the model only reads snapshots from it.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable conversation area. Exported for test access.
	Viewport viewport.Model

	store  *chat.Store
	theme  lab.Theme
	styles Styles

	sending bool
	cancel  context.CancelFunc
	err     error
	ready   bool
}

// New creates a TUI Model over the given chat store.
func New(store *chat.Store, theme lab.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:  ti,
		store:  store,
		theme:  theme,
		styles: NewStyles(theme),
	}
}

// Sending returns whether a send is in progress.
func (m Model) Sending() bool { return m.sending }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// SetSending is a test helper that puts the model in a sending state.
func SetSending(m Model) (Model, tea.Cmd) {
	m.sending = true
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m = m.refreshViewport()
		if m.sending {
			return m, tick()
		}
		return m, nil

	case SendDoneMsg:
		m.sending = false
		m.cancel = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		m = m.refreshViewport()
		cmds = append(cmds, m.Input.Focus())
		return m, tea.Batch(cmds...)
	}

	// Viewport always receives messages for scrolling.
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.sending {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebar(),
		" ",
		m.Viewport.View(),
	))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputHeight := 1
	statusHeight := 1
	gapHeight := 2
	vpHeight := msg.Height - inputHeight - statusHeight - gapHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := msg.Width - sidebarWidth - 1
	if vpWidth < 20 {
		vpWidth = 20
	}

	if !m.ready {
		m.Viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = vpWidth
		m.Viewport.Height = vpHeight
	}
	m = m.refreshViewport()

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.sending {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.sending {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)

	case tea.KeyCtrlN:
		if !m.sending {
			m.store.StartNewChat()
			m.err = nil
			m = m.refreshViewport()
		}
		return m, nil
	}

	// When idle, pass keys to both input (for typing) and viewport (for
	// scrolling). Only forward non-character keys to the viewport so text
	// characters like 'j'/'k' do not double as scroll keys.
	if !m.sending {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()
	m.err = nil
	m.sending = true

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	store := m.store

	send := func() tea.Msg {
		return SendDoneMsg{Err: store.Send(ctx, text)}
	}
	return m, tea.Batch(send, tick())
}

func (m Model) refreshViewport() Model {
	m.Viewport.SetContent(m.renderConversation())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) renderConversation() string {
	width := m.Viewport.Width
	var b strings.Builder

	for _, msg := range m.store.CurrentMessages() {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		if msg.Role == lab.RoleUser {
			prompt := m.styles.UserMsg.Render("> ")
			body := lipgloss.NewStyle().Width(width - 2).Render(msg.Content)
			b.WriteString(prompt + strings.TrimRight(body, "\n"))
		} else {
			b.WriteString(markdown.Render(msg.Content, width, m.theme))
		}
	}

	if m.store.Streaming() {
		if partial := m.store.StreamingContent(); partial != "" {
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(markdown.Render(partial, width, m.theme))
		}
	}

	return b.String()
}

func (m Model) sidebar() string {
	lines := []string{m.styles.Accent.Render("Sessions")}

	current := m.store.CurrentSessionID()
	for _, sess := range m.store.Sessions() {
		name := sess.Name
		if name == "" {
			name = sess.ID
		}
		name = Truncate(name, sidebarWidth-2)
		if sess.ID == current {
			lines = append(lines, m.styles.Accent.Render("▸ "+name))
		} else {
			lines = append(lines, m.styles.Muted.Render("  "+name))
		}
	}
	if m.store.NewChat() {
		lines = append(lines, m.styles.Success.Render("▸ new chat"))
	}

	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(m.Viewport.Height).
		Render(strings.Join(lines, "\n"))
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.sending {
		return m.styles.Muted.Render("Waiting for response...")
	}
	return m.styles.Muted.Render("Enter to send, Ctrl+N new chat, Ctrl+C to quit")
}
