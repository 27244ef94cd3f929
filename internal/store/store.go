package store

import "folio-cli/internal/model"

// DefaultSource is the data file path used when no source is configured.
const DefaultSource = "assets/data/projects.json"

// Store holds the full project set and the currently filtered subset.
//
// A Store has a single owner; it is not safe for concurrent mutation.
type Store struct {
	projects []model.Project
	filtered []model.Project
}

func New(projects []model.Project) *Store {
	s := &Store{}
	s.Reset(projects)
	return s
}

// Reset replaces both the full set and the filtered subset.
func (s *Store) Reset(projects []model.Project) {
	s.projects = append([]model.Project(nil), projects...)
	s.filtered = s.projects
}

func (s *Store) Projects() []model.Project { return s.projects }

func (s *Store) Filtered() []model.Project { return s.filtered }

func (s *Store) SetFiltered(projects []model.Project) { s.filtered = projects }

func (s *Store) Len() int { return len(s.projects) }

// Find looks a project up in the full set, never the filtered subset.
func (s *Store) Find(id string) (model.Project, bool) {
	return FindByID(s.projects, id)
}

func FindByID(projects []model.Project, id string) (model.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}
