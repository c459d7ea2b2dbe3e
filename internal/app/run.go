package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avitaltamir/vibechat/internal/errors"
)

// Run takes over the terminal until the user quits. The returned error
// is the one that ended the program, such as a window too small to lay
// out.
func Run(ctx context.Context, opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return errors.E(errors.Op("app.Run"), errors.KindTerminal, "terminal program failed", err)
	}
	return m.Err()
}
