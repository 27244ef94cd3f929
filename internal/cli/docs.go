package cli

import (
	"fmt"
	"strings"

	"folio-cli/internal/docs"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Example: strings.TrimSpace(`
folio docs
folio docs data-format
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{
					"data":   docs.Topics(),
					"_hints": []string{"folio docs <topic>"},
				})
			}
			md, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("topic", args[0]))
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
}
