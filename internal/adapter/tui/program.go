package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/catalog/internal/core/port"
)

type Program struct {
	program *tea.Program
}

func NewProgram(
	ctx context.Context,
	loader port.CatalogLoader,
	session port.FilterSession,
	theme Theme,
) Program {
	m := NewModel(ctx, loader, session, NewStyles(theme))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	return Program{p}
}

// Run blocks until the user quits or ctx is done. stopFn is invoked on
// return so the application shuts down together with the UI.
func (p Program) Run(stopFn context.CancelFunc) error {
	const op = "Program.Run"
	log := slog.With("op", op)

	defer stopFn()

	log.Info("terminal ui is running")
	_, err := p.program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error("terminal ui failed", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("terminal ui is stopped")
	return nil
}

// Close stops the program and waits until the terminal is restored.
func (p Program) Close() {
	p.program.Quit()
	p.program.Wait()
}
