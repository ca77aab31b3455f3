package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"arcane/internal/engine"
)

// RunBoard opens the interactive board for the session user and blocks
// until it is closed.
func RunBoard(ctx context.Context, svc *engine.Service, sess engine.Session, out io.Writer) error {
	m := newBoardModel(ctx, svc, sess)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
