// Package render turns projects into displayable cards and detail views.
//
// Markup produced here is final: all project text is escaped with Escape
// before it is concatenated, so surfaces may insert Card.HTML verbatim.
package render

import (
	"strings"

	"folio-cli/internal/model"
)

// MaxCardTags is how many tags a card shows. The detail view shows all.
const MaxCardTags = 4

// Activation keys understood by Card.Activate.
const (
	KeyClick = "click"
	KeyEnter = "enter"
	KeySpace = " "
)

type Card struct {
	ID       string
	Title    string
	Label    string // accessible label
	Role     string
	TabIndex int

	Subtitle string
	Summary  string
	Badge    string
	Thumb    string
	Pills    []string

	// HTML is the escaped inner markup of the card.
	HTML string
}

// Activate reports which project to open for a pointer activation or key
// press on this card. Only click, Enter and Space activate.
func (c Card) Activate(key string) (string, bool) {
	switch strings.ToLower(key) {
	case KeyClick, KeyEnter, KeySpace, "space":
		return c.ID, true
	default:
		return "", false
	}
}

// Target receives rendered cards. Clear drops whatever the previous render
// produced.
type Target interface {
	Clear()
	Append(card Card)
}

// Cards is an in-memory Target.
type Cards []Card

func (c *Cards) Clear()           { *c = (*c)[:0] }
func (c *Cards) Append(card Card) { *c = append(*c, card) }

// Grid replaces the contents of target with one card per project, in order.
func Grid(target Target, projects []model.Project) {
	target.Clear()
	for _, p := range projects {
		target.Append(NewCard(p))
	}
}

func NewCard(p model.Project) Card {
	pills := p.Tags
	if len(pills) > MaxCardTags {
		pills = pills[:MaxCardTags]
	}
	c := Card{
		ID:       p.ID,
		Title:    p.Title,
		Label:    "Open project " + p.Title,
		Role:     "button",
		TabIndex: 0,
		Subtitle: p.Subtitle,
		Summary:  p.Summary,
		Badge:    p.Tag,
		Thumb:    p.CoverImage,
		Pills:    append([]string(nil), pills...),
	}
	c.HTML = cardMarkup(c)
	return c
}

func cardMarkup(c Card) string {
	var b strings.Builder
	b.WriteString(`<div class="project-top"><div><h3>`)
	b.WriteString(Escape(c.Title))
	b.WriteString(`</h3><div class="muted">`)
	b.WriteString(Escape(c.Subtitle))
	b.WriteString(`</div></div>`)
	if c.Badge != "" {
		b.WriteString(`<span class="badge">`)
		b.WriteString(Escape(c.Badge))
		b.WriteString(`</span>`)
	}
	b.WriteString(`</div><p>`)
	b.WriteString(Escape(c.Summary))
	b.WriteString(`</p>`)
	if c.Thumb != "" {
		b.WriteString(`<img class="project-thumb" src="`)
		b.WriteString(Escape(c.Thumb))
		b.WriteString(`" alt="" />`)
	}
	b.WriteString(`<div class="pill-row">`)
	for _, t := range c.Pills {
		b.WriteString(`<span class="pill">`)
		b.WriteString(Escape(t))
		b.WriteString(`</span>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// LoadErrorHTML is shown in place of the grid when the data source fails.
func LoadErrorHTML(source string) string {
	return `<div class="card load-error"><strong>Couldn&#39;t load projects</strong>` +
		`<div class="muted">Check that <code>` + Escape(source) + `</code> exists and is valid JSON.</div></div>`
}

// LoadErrorText is the plain-text form of LoadErrorHTML.
func LoadErrorText(source string) string {
	return "Couldn't load projects\nCheck that " + source + " exists and is valid JSON."
}
