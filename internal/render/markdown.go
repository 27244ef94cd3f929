package render

import (
	"bytes"
	"strings"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
)

// Link destinations are percent-encoded instead, since backslash escapes do
// not apply inside <...> autolinks.
var mdURLEscaper = strings.NewReplacer(
	" ", "%20",
	"<", "%3C",
	">", "%3E",
	"(", "%28",
	")", "%29",
)

// EscapeMarkdown makes plain project text safe to embed in Markdown.
func EscapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

// Markdown renders a detail view as a Markdown section. Project text is
// plain, so it is escaped rather than interpreted.
func Markdown(d Detail) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("## " + EscapeMarkdown(strings.TrimSpace(d.Title)))
	writeLn("")
	if s := strings.TrimSpace(d.Subtitle); s != "" {
		writeLn("_" + EscapeMarkdown(s) + "_")
		writeLn("")
	}
	if len(d.Tags) > 0 {
		writeLn("- Tags: " + EscapeMarkdown(strings.Join(d.Tags, ", ")))
	}
	if len(d.Tech) > 0 {
		writeLn("- Tech: " + EscapeMarkdown(strings.Join(d.Tech, ", ")))
	}
	if d.HasRepo {
		writeLn("- Repository: <" + mdURLEscaper.Replace(d.Repo) + ">")
	}
	if len(d.Tags) > 0 || len(d.Tech) > 0 || d.HasRepo {
		writeLn("")
	}

	if s := strings.TrimSpace(d.Description); s != "" {
		writeLn(EscapeMarkdown(s))
		writeLn("")
	}

	if len(d.Files) > 0 {
		writeLn("### Files")
		writeLn("")
		for _, f := range d.Files {
			writeLn("- [" + EscapeMarkdown(f.Label) + "](" + mdURLEscaper.Replace(f.Href) + ")")
		}
		writeLn("")
	}
	return buf.String()
}
