package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"folio-cli/internal/config"
	"folio-cli/internal/format"
	"folio-cli/internal/logging"
	"folio-cli/internal/model"
	"folio-cli/internal/render"
	"folio-cli/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	Source     string
	Format     string
	PrettyJSON bool
	Debug      bool

	cfg config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "folio",
		Short:        "Browse, preview and publish a project portfolio",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse projects in the terminal
  folio

  # Preview the site locally; edits to the data file show up on reload
  folio serve --addr 127.0.0.1:3336

  # Export a static site
  folio publish --to ./public

  # Scriptable queries
  folio list --tag Go
  folio show alpha
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive browser.
			if len(args) == 0 {
				return runBrowse(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(app.ConfigPath)
		if err != nil {
			return writeErr(cmd, err)
		}
		if cmd.Flags().Changed("source") {
			cfg.Source = strings.TrimSpace(app.Source)
		}
		if cmd.Flags().Changed("format") {
			cfg.Format = strings.ToLower(strings.TrimSpace(app.Format))
		}
		app.cfg = cfg

		log, err := logging.New(app.Debug)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log = log
		return nil
	}

	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("FOLIO_CONFIG", ""), "Config file (default: ./"+config.DefaultFile+" when present)")
	cmd.PersistentFlags().StringVar(&app.Source, "source", "", "Project data: a JSON file path or http(s) URL (default: "+store.DefaultSource+")")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Debug logging on stderr")

	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func loadProjects(ctx context.Context, app *App) ([]model.Project, error) {
	projects, err := store.Loader{}.Load(ctx, app.cfg.Source)
	if err != nil {
		return nil, err
	}
	app.logger().Debug("projects loaded", zap.String("source", app.cfg.Source), zap.Int("count", len(projects)))
	return projects, nil
}

func (app *App) logger() *zap.Logger {
	if app.log == nil {
		return zap.NewNop()
	}
	return app.log
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.cfg.Format, app.PrettyJSON)
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	hintColor = color.New(color.FgYellow)
)

// writeErr reports err on stderr. Load failures get the same guidance the
// site shows in place of the grid.
func writeErr(cmd *cobra.Command, err error) error {
	w := cmd.ErrOrStderr()
	errColor.Fprintln(w, err.Error())
	var le *store.LoadError
	if errors.As(err, &le) {
		lines := strings.SplitN(render.LoadErrorText(le.Source), "\n", 2)
		if len(lines) == 2 {
			hintColor.Fprintln(w, lines[1])
		}
	}
	return err
}
