// Package filter derives the visible project subset from the search query
// and the selected tag, and builds the tag vocabulary for the tag control.
package filter

import (
	"sort"
	"strings"

	"folio-cli/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Criteria is the current filter input. All criteria are ANDed together;
// zero values match everything.
type Criteria struct {
	Query string // free text, matched case-insensitively as a substring
	Tag   string // exact tag, matched against Tags or the legacy Tag
}

// NormalizeQuery lowercases and trims a search query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func (c Criteria) IsEmpty() bool {
	return NormalizeQuery(c.Query) == "" && c.Tag == ""
}

// Matches reports whether p satisfies both the text and the tag predicate.
func (c Criteria) Matches(p model.Project) bool {
	return matchesQuery(p, NormalizeQuery(c.Query)) && matchesTag(p, c.Tag)
}

// Apply returns the projects matching query and tag, in their original
// relative order. It never mutates its input.
func Apply(projects []model.Project, query string, tag string) []model.Project {
	return Criteria{Query: query, Tag: tag}.Apply(projects)
}

func (c Criteria) Apply(projects []model.Project) []model.Project {
	out := make([]model.Project, 0, len(projects))
	if c.IsEmpty() {
		return append(out, projects...)
	}
	c.Query = NormalizeQuery(c.Query)
	for _, p := range projects {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// SearchText is the lowercased blob the query is matched against.
func SearchText(p model.Project) string {
	parts := []string{
		p.Title,
		p.Subtitle,
		p.Summary,
		p.Description,
		strings.Join(p.Tags, " "),
		strings.Join(p.Tech, " "),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func matchesQuery(p model.Project, normalized string) bool {
	if normalized == "" {
		return true
	}
	return strings.Contains(SearchText(p), normalized)
}

func matchesTag(p model.Project, tag string) bool {
	if tag == "" {
		return true
	}
	return p.HasTag(tag)
}

// TagVocabulary returns the de-duplicated union of all Tags values, sorted
// with a locale-aware collator. Byte order breaks collation ties.
func TagVocabulary(projects []model.Project) []string {
	seen := map[string]struct{}{}
	tags := make([]string, 0)
	for _, p := range projects {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}

	col := collate.New(language.Und)
	sort.SliceStable(tags, func(i, j int) bool {
		if r := col.CompareString(tags[i], tags[j]); r != 0 {
			return r < 0
		}
		return tags[i] < tags[j]
	})
	return tags
}
