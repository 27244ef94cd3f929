// Package tui is the terminal portfolio browser: a card grid with search,
// a tag filter and a detail view, driven by app.Controller.
package tui

import (
	"context"
	"time"

	"folio-cli/internal/app"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	Source string
	Title  string
	Owner  string

	Loader app.Loader
	Logger *zap.Logger
	Now    func() time.Time
}

// Run blocks until the user quits. A load failure is shown in the browser,
// not returned.
func Run(ctx context.Context, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newModel(ctx, opts)
	_, err := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	).Run()
	return err
}
