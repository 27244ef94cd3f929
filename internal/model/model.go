package model

type FileLink struct {
	Href  string `json:"href" yaml:"href"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Project is one portfolio entry as it appears in the data file.
// Every field except ID is optional.
type Project struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Tag is the legacy single category label. Tags supersedes it for the
	// vocabulary but both are honoured by the tag filter.
	Tag  string   `json:"tag,omitempty" yaml:"tag,omitempty"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Tech []string `json:"tech,omitempty" yaml:"tech,omitempty"`

	CoverImage string     `json:"coverImage,omitempty" yaml:"coverImage,omitempty"`
	Images     []string   `json:"images,omitempty" yaml:"images,omitempty"`
	Files      []FileLink `json:"files,omitempty" yaml:"files,omitempty"`
	Repo       string     `json:"repo,omitempty" yaml:"repo,omitempty"`
}

// Gallery returns the images shown in the detail view: Images when present,
// otherwise the cover image alone, otherwise nothing.
func (p Project) Gallery() []string {
	if len(p.Images) > 0 {
		return append([]string(nil), p.Images...)
	}
	if p.HasCover() {
		return []string{p.CoverImage}
	}
	return nil
}

// HasCover reports whether the card shows a thumbnail. Any non-empty value
// counts, whitespace included.
func (p Project) HasCover() bool { return p.CoverImage != "" }

func (p Project) HasTag(tag string) bool {
	if p.Tag == tag {
		return true
	}
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (f FileLink) DisplayLabel() string {
	if f.Label == "" {
		return "File"
	}
	return f.Label
}
