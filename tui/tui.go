// Package tui provides a Bubble Tea terminal UI for the lab chat client.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea program. It blocks until the
// program exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// SendDoneMsg signals that a send has finished, successfully or not.
type SendDoneMsg struct {
	Err error
}

// TickMsg drives viewport refreshes while response content streams in.
type TickMsg time.Time

const streamRefreshInterval = 80 * time.Millisecond

func tick() tea.Cmd {
	return tea.Tick(streamRefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
