package render

import (
	"strings"
	"testing"

	"folio-cli/internal/model"
)

func TestEscape(t *testing.T) {
	got := Escape(`<a href="x">Tom & Jerry's</a>`)
	want := "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&#39;s&lt;/a&gt;"
	if got != want {
		t.Fatalf("Escape:\n got: %s\nwant: %s", got, want)
	}
	if Escape("&amp;") != "&amp;amp;" {
		t.Fatalf("expected already-escaped text to be escaped again")
	}
}

func TestGrid_ClearsAndRendersInOrder(t *testing.T) {
	cards := Cards{{ID: "stale"}}
	projects := []model.Project{
		{ID: "a", Title: "Alpha"},
		{ID: "b", Title: "Beta"},
		{ID: "c"},
	}
	Grid(&cards, projects)

	if len(cards) != len(projects) {
		t.Fatalf("expected %d cards, got %d", len(projects), len(cards))
	}
	for i, p := range projects {
		if cards[i].ID != p.ID {
			t.Fatalf("card %d: expected id %q, got %q", i, p.ID, cards[i].ID)
		}
		if !strings.Contains(cards[i].Label, p.Title) {
			t.Fatalf("card %d: label %q does not contain title %q", i, cards[i].Label, p.Title)
		}
		if cards[i].Role != "button" || cards[i].TabIndex != 0 {
			t.Fatalf("card %d: expected focusable button, got role=%q tabindex=%d", i, cards[i].Role, cards[i].TabIndex)
		}
	}

	Grid(&cards, nil)
	if len(cards) != 0 {
		t.Fatalf("expected empty grid, got %d cards", len(cards))
	}
}

func TestNewCard_EscapesScriptTitle(t *testing.T) {
	c := NewCard(model.Project{
		ID:         "x",
		Title:      "<script>alert(1)</script>",
		Subtitle:   `"quoted"`,
		Summary:    "a & b",
		Tag:        "<b>",
		CoverImage: `cover.png" onerror="alert(1)`,
		Tags:       []string{"<i>"},
	})
	if strings.Contains(c.HTML, "<script>") {
		t.Fatalf("card markup contains a parsed script element:\n%s", c.HTML)
	}
	for _, want := range []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&quot;quoted&quot;",
		"a &amp; b",
		`<span class="badge">&lt;b&gt;</span>`,
		`src="cover.png&quot; onerror=&quot;alert(1)"`,
		`<span class="pill">&lt;i&gt;</span>`,
	} {
		if !strings.Contains(c.HTML, want) {
			t.Fatalf("expected card markup to contain %q:\n%s", want, c.HTML)
		}
	}
}

func TestNewCard_OptionalParts(t *testing.T) {
	c := NewCard(model.Project{ID: "bare"})
	if strings.Contains(c.HTML, "badge") {
		t.Fatalf("expected no badge without a legacy tag:\n%s", c.HTML)
	}
	if strings.Contains(c.HTML, "<img") {
		t.Fatalf("expected no thumbnail without a cover image:\n%s", c.HTML)
	}
}

func TestNewCard_TruncatesTags(t *testing.T) {
	c := NewCard(model.Project{ID: "t", Tags: []string{"1", "2", "3", "4", "5", "6"}})
	if len(c.Pills) != MaxCardTags {
		t.Fatalf("expected %d pills, got %v", MaxCardTags, c.Pills)
	}
	if strings.Contains(c.HTML, `<span class="pill">5</span>`) {
		t.Fatalf("expected fifth tag to be truncated from the card:\n%s", c.HTML)
	}
}

func TestCard_Activate(t *testing.T) {
	c := Card{ID: "a"}
	for _, key := range []string{KeyClick, KeyEnter, "Enter", KeySpace} {
		id, ok := c.Activate(key)
		if !ok || id != "a" {
			t.Fatalf("Activate(%q): expected (a, true), got (%q, %v)", key, id, ok)
		}
	}
	for _, key := range []string{"esc", "tab", "x", ""} {
		if _, ok := c.Activate(key); ok {
			t.Fatalf("Activate(%q): expected no activation", key)
		}
	}
}

func TestNewDetail(t *testing.T) {
	p := model.Project{
		ID:          "b",
		Title:       "Beta",
		Subtitle:    "Second",
		Description: "Long text",
		Tags:        []string{"1", "2", "3", "4", "5"},
		Tech:        []string{"Go", "SQL"},
		Files:       []model.FileLink{{Href: "spec.pdf", Label: "Spec"}, {Href: "raw.bin"}},
		CoverImage:  "cover.png",
		Images:      []string{"one.png", "two.png"},
		Repo:        "https://example.com/beta",
	}
	d := NewDetail(p)
	if d.Title != "Beta" || d.Subtitle != "Second" || d.Description != "Long text" {
		t.Fatalf("unexpected text fields: %+v", d)
	}
	if len(d.Tags) != 5 {
		t.Fatalf("expected untruncated tags, got %v", d.Tags)
	}
	if len(d.Tech) != 2 {
		t.Fatalf("expected tech list, got %v", d.Tech)
	}
	if len(d.Files) != 2 || d.Files[1].Label != "File" {
		t.Fatalf("expected file label fallback, got %+v", d.Files)
	}
	for _, f := range d.Files {
		if f.Target != "_blank" || f.Rel != "noopener" {
			t.Fatalf("expected new-context links without opener, got %+v", f)
		}
	}
	if len(d.Gallery) != 2 || d.Gallery[0] != "one.png" {
		t.Fatalf("expected images gallery, got %v", d.Gallery)
	}
	if !d.HasRepo || d.Repo != p.Repo {
		t.Fatalf("expected visible repo link, got %+v", d)
	}
}

func TestNewDetail_GalleryFallbackAndHiddenRepo(t *testing.T) {
	d := NewDetail(model.Project{ID: "c", CoverImage: "cover.png"})
	if len(d.Gallery) != 1 || d.Gallery[0] != "cover.png" {
		t.Fatalf("expected cover fallback gallery, got %v", d.Gallery)
	}
	if d.HasRepo || d.Repo != "#" {
		t.Fatalf("expected hidden repo control, got %+v", d)
	}

	blank := model.Project{ID: "e", CoverImage: " "}
	d = NewDetail(blank)
	card := NewCard(blank)
	if len(d.Gallery) != 1 || card.Thumb == "" {
		t.Fatalf("expected card thumbnail and gallery to agree on a blank cover, got gallery=%v thumb=%q", d.Gallery, card.Thumb)
	}

	d = NewDetail(model.Project{ID: "d"})
	if len(d.Gallery) != 0 || d.Gallery == nil {
		t.Fatalf("expected empty non-nil gallery, got %#v", d.Gallery)
	}
}

func TestLoadErrorHTML_EscapesSource(t *testing.T) {
	got := LoadErrorHTML("<bad>.json")
	if !strings.Contains(got, "&lt;bad&gt;.json") {
		t.Fatalf("expected escaped source, got %s", got)
	}
	if !strings.Contains(got, "valid JSON") {
		t.Fatalf("expected guidance text, got %s", got)
	}
}

func TestMarkdown_EscapesProjectText(t *testing.T) {
	d := NewDetail(model.Project{
		ID:          "a",
		Title:       "Alpha *beta*",
		Subtitle:    "Tool",
		Tags:        []string{"go"},
		Description: "Uses [links] and <b>tags</b>.",
		Files:       []model.FileLink{{Href: "doc.pdf", Label: "Doc"}},
		Repo:        "https://example.com/a",
	})
	md := Markdown(d)

	for _, want := range []string{
		`## Alpha \*beta\*`,
		"_Tool_",
		"- Tags: go",
		"- Repository: <https://example.com/a>",
		`Uses \[links\] and \<b\>tags\</b\>.`,
		"- [Doc](doc.pdf)",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
}

func TestMarkdown_EncodesLinkDestinations(t *testing.T) {
	md := Markdown(NewDetail(model.Project{
		ID:    "a",
		Title: "Alpha",
		Repo:  "https://example.com/a>b",
		Files: []model.FileLink{{Href: "docs/spec (v2).pdf", Label: "Doc"}},
	}))
	for _, want := range []string{
		"- Repository: <https://example.com/a%3Eb>",
		"- [Doc](docs/spec%20%28v2%29.pdf)",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
}

func TestMarkdown_OmitsEmptySections(t *testing.T) {
	md := Markdown(NewDetail(model.Project{ID: "a", Title: "Alpha"}))
	if md != "## Alpha\n\n" {
		t.Fatalf("unexpected markdown: %q", md)
	}
}
