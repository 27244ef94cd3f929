// Package site renders the portfolio as HTML pages without JavaScript.
//
// A Page is an app.Surface: the controller fills it in, then Render writes
// it out. The web preview and the static exporter only differ in how links
// are built (see Links).
package site

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"folio-cli/internal/render"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

var pageTmpl = template.Must(template.New("base").Funcs(template.FuncMap{
	// Card markup is escaped field by field in render.NewCard.
	"cardHTML": func(s string) template.HTML { return template.HTML(s) },
	"trim":     strings.TrimSpace,
}).ParseFS(assetsFS, "templates/*.html"))

// Links decides where cards, the close controls and assets point.
type Links struct {
	Home      string                 // grid page
	Base      string                 // prefix for static assets
	Card      func(id string) string // detail link for a card
	Close     string                 // link that closes the detail view
	NavToggle string                 // empty hides the toggle
	FilterURL string                 // form action; empty disables the filter form
	// Tag links to a pre-rendered page per tag. Used when there is no
	// filter form to submit.
	Tag func(tag string) string
}

type Page struct {
	Title string
	Owner string
	Links Links

	Year       int
	NavOpen    bool
	NavLabel   string
	Query      string
	Tag        string
	TagOptions []string

	Cards     render.Cards
	LoadError template.HTML

	Detail       *render.Detail
	ScrollLocked bool
	CloseFocused bool
}

func (p *Page) SetYear(year int) { p.Year = year }

func (p *Page) SetNav(open bool, label string) {
	p.NavOpen = open
	p.NavLabel = label
}

func (p *Page) SetTagOptions(tags []string) { p.TagOptions = append([]string(nil), tags...) }

func (p *Page) SetFilter(query, tag string) {
	p.Query = query
	p.Tag = tag
}

func (p *Page) Grid() render.Target { return &p.Cards }

// ShowLoadError takes markup from render.LoadErrorHTML, which escapes the
// source itself.
func (p *Page) ShowLoadError(html string) {
	p.Cards = nil
	p.LoadError = template.HTML(html)
}

func (p *Page) ShowDetail(d render.Detail) { p.Detail = &d }

func (p *Page) HideDetail() {
	p.Detail = nil
	p.CloseFocused = false
}

func (p *Page) SetScrollLocked(locked bool) { p.ScrollLocked = locked }

func (p *Page) FocusClose() { p.CloseFocused = true }

func (p *Page) CardHref(id string) string {
	if p.Links.Card == nil {
		return "#"
	}
	return p.Links.Card(id)
}

func (p *Page) TagHref(tag string) string {
	if p.Links.Tag == nil {
		return "#"
	}
	return p.Links.Tag(tag)
}

func (p *Page) CloseHref() string {
	if p.Links.Close == "" {
		return "#"
	}
	return p.Links.Close
}

func Render(w io.Writer, p *Page) error {
	return pageTmpl.ExecuteTemplate(w, "page", p)
}

// Stylesheet returns the embedded site.css.
func Stylesheet() ([]byte, error) {
	return assetsFS.ReadFile("static/site.css")
}
