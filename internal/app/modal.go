package app

import (
	"folio-cli/internal/model"
	"folio-cli/internal/store"
)

type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
)

func (s ModalState) String() string {
	switch s {
	case ModalOpen:
		return "open"
	default:
		return "closed"
	}
}

// Modal tracks the single open detail view. The zero value is closed.
type Modal struct {
	state    ModalState
	activeID string
}

func (m Modal) State() ModalState { return m.state }

func (m Modal) IsOpen() bool { return m.state == ModalOpen }

// ActiveID is the id of the open project, or "" when closed.
func (m Modal) ActiveID() string { return m.activeID }

// Open moves to open(id) when id exists in projects. It looks in the full
// set so a detail view stays reachable whatever the current filter is.
// Unknown ids leave the modal untouched.
func (m *Modal) Open(id string, projects []model.Project) (model.Project, bool) {
	p, ok := store.FindByID(projects, id)
	if !ok {
		return model.Project{}, false
	}
	m.state = ModalOpen
	m.activeID = id
	return p, true
}

func (m *Modal) Close() {
	m.state = ModalClosed
	m.activeID = ""
}
