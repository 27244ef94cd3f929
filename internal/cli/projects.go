package cli

import (
	"fmt"
	"strings"

	"folio-cli/internal/filter"
	"folio-cli/internal/render"
	"folio-cli/internal/store"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var query string
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally filtered",
		Example: strings.TrimSpace(`
folio list
folio list --query cli --tag Go
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			matched := filter.Apply(projects, query, tag)
			return writeOut(cmd, app, map[string]any{
				"data": matched,
				"meta": map[string]any{
					"total":   len(projects),
					"matched": len(matched),
					"query":   query,
					"tag":     tag,
				},
			})
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Case-insensitive text search")
	cmd.Flags().StringVar(&tag, "tag", "", "Exact tag (case-sensitive)")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project's detail view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			p, ok := store.FindByID(projects, id)
			if !ok {
				return writeErr(cmd, errNotFound("project", id))
			}
			d := render.NewDetail(p)
			if markdown {
				_, err := fmt.Fprint(cmd.OutOrStdout(), render.Markdown(d))
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": d})
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print Markdown instead of structured output")
	return cmd
}

func newTagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the tag vocabulary in filter order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": filter.TagVocabulary(projects)})
		},
	}
}
