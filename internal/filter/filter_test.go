package filter

import (
	"testing"

	"folio-cli/internal/model"

	"github.com/google/go-cmp/cmp"
)

func fixtureProjects() []model.Project {
	return []model.Project{
		{ID: "web", Title: "Storefront", Subtitle: "React SPA", Tags: []string{"Frontend", "Web"}, Tech: []string{"React", "TypeScript"}},
		{ID: "cli", Title: "Folio CLI", Summary: "Terminal browser", Tags: []string{"Go", "Tools"}, Tech: []string{"Go"}},
		{ID: "legacy", Title: "Old Site", Tag: "Web", Description: "Hand-written HTML"},
		{ID: "ml", Title: "Classifier", Description: "react-style hooks for models", Tags: []string{"ML"}},
		{ID: "bare"},
	}
}

func ids(projects []model.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestApply_EmptyInputsReturnAllInOrder(t *testing.T) {
	all := fixtureProjects()
	got := Apply(all, "", "")
	if diff := cmp.Diff(all, got); diff != "" {
		t.Fatalf("Apply(all, \"\", \"\") mismatch (-want +got):\n%s", diff)
	}

	got = Apply(all, "   ", "")
	if diff := cmp.Diff(ids(all), ids(got)); diff != "" {
		t.Fatalf("whitespace query should match all (-want +got):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		query string
		tag   string
		want  []string
	}{
		{name: "title substring", query: "folio", want: []string{"cli"}},
		{name: "subtitle", query: "spa", want: []string{"web"}},
		{name: "summary", query: "terminal", want: []string{"cli"}},
		{name: "description", query: "hand-written", want: []string{"legacy"}},
		{name: "tech", query: "typescript", want: []string{"web"}},
		{name: "tags", query: "tools", want: []string{"cli"}},
		{name: "across fields keeps order", query: "react", want: []string{"web", "ml"}},
		{name: "query is trimmed", query: "  react  ", want: []string{"web", "ml"}},
		{name: "no match", query: "cobol", want: []string{}},
		{name: "tag in tags", tag: "Go", want: []string{"cli"}},
		{name: "tag via legacy field", tag: "Web", want: []string{"web", "legacy"}},
		{name: "tag is case sensitive", tag: "web", want: []string{}},
		{name: "query and tag", query: "store", tag: "Web", want: []string{"web"}},
		{name: "query and tag disjoint", query: "classifier", tag: "Web", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(fixtureProjects(), tt.query, tt.tag))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Apply(%q, %q) mismatch (-want +got):\n%s", tt.query, tt.tag, diff)
			}
		})
	}
}

func TestApply_CaseInsensitive(t *testing.T) {
	all := fixtureProjects()
	upper := Apply(all, "REACT", "")
	lower := Apply(all, "react", "")
	if diff := cmp.Diff(lower, upper); diff != "" {
		t.Fatalf("case-insensitive mismatch (-lower +upper):\n%s", diff)
	}
}

func TestApply_ResultIsOrderedSubset(t *testing.T) {
	all := fixtureProjects()
	for _, q := range []string{"", "o", "web", "go", "x"} {
		for _, tag := range []string{"", "Web", "Go", "ML", "missing"} {
			got := Apply(all, q, tag)
			c := Criteria{Query: q, Tag: tag}
			next := 0
			for _, p := range got {
				if !c.Matches(p) {
					t.Fatalf("Apply(%q,%q) returned non-matching project %q", q, tag, p.ID)
				}
				found := false
				for next < len(all) {
					if all[next].ID == p.ID {
						found = true
						next++
						break
					}
					next++
				}
				if !found {
					t.Fatalf("Apply(%q,%q) result is not an ordered subset: %v", q, tag, ids(got))
				}
			}
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	all := fixtureProjects()
	before := ids(all)
	_ = Apply(all, "react", "Web")
	if diff := cmp.Diff(before, ids(all)); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestCriteria_IsEmpty(t *testing.T) {
	if !(Criteria{Query: "  "}).IsEmpty() {
		t.Fatalf("expected whitespace-only criteria to be empty")
	}
	if (Criteria{Tag: "Go"}).IsEmpty() {
		t.Fatalf("expected tag criteria to be non-empty")
	}
}

func TestTagVocabulary(t *testing.T) {
	tests := []struct {
		name     string
		projects []model.Project
		want     []string
	}{
		{
			name: "union sorted and deduplicated",
			projects: []model.Project{
				{ID: "1", Tags: []string{"Go", "Rust"}},
				{ID: "2", Tags: []string{"Rust", "C++"}},
			},
			want: []string{"C++", "Go", "Rust"},
		},
		{
			name: "locale aware ordering",
			projects: []model.Project{
				{ID: "1", Tags: []string{"banana", "Cherry"}},
				{ID: "2", Tags: []string{"apple"}},
			},
			want: []string{"apple", "banana", "Cherry"},
		},
		{
			name: "legacy tag is not vocabulary",
			projects: []model.Project{
				{ID: "1", Tag: "Legacy"},
				{ID: "2", Tags: []string{"New"}},
			},
			want: []string{"New"},
		},
		{
			name:     "no tags",
			projects: []model.Project{{ID: "1"}},
			want:     []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TagVocabulary(tt.projects)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("TagVocabulary mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_EmptyCriteriaReturnsCopy(t *testing.T) {
	projects := []model.Project{{ID: "a"}, {ID: "b"}}
	got := Criteria{Query: "  "}.Apply(projects)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("expected full set in order, got %+v", got)
	}
	got[0].ID = "changed"
	if projects[0].ID != "a" {
		t.Fatalf("Apply must not alias its input")
	}
}
