package cli

import (
	"errors"
	"strings"

	"folio-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var overwrite bool
	var markdown bool
	var root string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export the portfolio as a static site",
		Long: strings.TrimSpace(`
Write index.html, one page per tag and one page per project, plus
assets/data/projects.json and static/site.css. The pages work without a
server or JavaScript. Local images and files the data refers to are
copied from --root when present.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			projects, err := loadProjects(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteSite(projects, toDir, publish.WriteOptions{
				Title:     app.cfg.Title,
				Owner:     app.cfg.Owner,
				Overwrite: overwrite,
				Markdown:  markdown,
				MediaRoot: root,
				Logger:    app.logger(),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"_hints": []string{
					"open " + toDir + "/" + publish.IndexFile,
					"git status",
				},
			})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().BoolVar(&overwrite, "overwrite", true, "Overwrite existing files")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Also write a "+publish.MarkdownFile+" catalog")
	cmd.Flags().StringVar(&root, "root", ".", "Directory that project image and file paths are relative to (empty to skip copying)")
	return cmd
}
