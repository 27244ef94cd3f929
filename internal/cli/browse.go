package cli

import (
	"folio-cli/internal/store"
	"folio-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse projects in the terminal (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, app)
		},
	}
}

func runBrowse(cmd *cobra.Command, app *App) error {
	// Log lines would tear the alternate screen, so the browser only logs
	// with --debug.
	log := zap.NewNop()
	if app.Debug {
		log = app.logger()
	}
	err := tui.Run(cmd.Context(), tui.Options{
		Source: app.cfg.Source,
		Title:  app.cfg.Title,
		Owner:  app.cfg.Owner,
		Loader: store.Loader{},
		Logger: log,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
