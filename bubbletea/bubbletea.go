// Package bubbletea provides the interactive Bubble Tea presenter for markdeck.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea program in the alternate screen. It
// blocks until the program exits and returns the final model. Bubble Tea
// owns raw mode and restores the terminal on every exit path. When ctx is
// cancelled (for example by a termination signal) the session is ended
// through InterruptMsg.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(m, opts...)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Send(InterruptMsg{})
		case <-done:
		}
	}()

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}

// InterruptMsg ends the session regardless of key bindings.
type InterruptMsg struct{}
