package render

import "folio-cli/internal/model"

type FileLink struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Target string `json:"target"`
	Rel    string `json:"rel"`
}

// Detail is everything the modal shows for one project. Lists are never
// truncated.
type Detail struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Tags        []string   `json:"tags"`
	Description string     `json:"description"`
	Tech        []string   `json:"tech"`
	Files       []FileLink `json:"files"`
	Gallery     []string   `json:"gallery"`
	Repo        string     `json:"repo"`
	HasRepo     bool       `json:"hasRepo"`
}

func NewDetail(p model.Project) Detail {
	d := Detail{
		ID:          p.ID,
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Tags:        append([]string{}, p.Tags...),
		Description: p.Description,
		Tech:        append([]string{}, p.Tech...),
		Files:       make([]FileLink, 0, len(p.Files)),
		Gallery:     p.Gallery(),
		Repo:        "#",
	}
	if d.Gallery == nil {
		d.Gallery = []string{}
	}
	for _, f := range p.Files {
		// New browsing context with no opener back-reference.
		d.Files = append(d.Files, FileLink{
			Href:   f.Href,
			Label:  f.DisplayLabel(),
			Target: "_blank",
			Rel:    "noopener",
		})
	}
	if p.Repo != "" {
		d.Repo = p.Repo
		d.HasRepo = true
	}
	return d
}
