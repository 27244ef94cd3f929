package render

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces & < > " ' with their entities. Every piece of project
// text written into card markup goes through it.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}
