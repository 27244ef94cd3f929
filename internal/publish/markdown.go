package publish

import (
	"bytes"
	"strings"

	"folio-cli/internal/model"
	"folio-cli/internal/render"
)

type RenderOptions struct {
	Title string
	Owner string
}

// RenderCatalogMarkdown renders every project, in file order, as one
// Markdown document.
func RenderCatalogMarkdown(projects []model.Project, opt RenderOptions) string {
	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Projects"
	}

	var buf bytes.Buffer
	buf.WriteString("# " + render.EscapeMarkdown(title) + "\n\n")
	if owner := strings.TrimSpace(opt.Owner); owner != "" {
		buf.WriteString("By " + render.EscapeMarkdown(owner) + "\n\n")
	}
	if len(projects) == 0 {
		buf.WriteString("No projects.\n")
		return buf.String()
	}
	for _, p := range projects {
		buf.WriteString(render.Markdown(render.NewDetail(p)))
	}
	return buf.String()
}
