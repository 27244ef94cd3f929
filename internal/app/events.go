package app

// Event is a UI input delivered to Controller.Dispatch.
type Event interface{ isEvent() }

type SearchChanged struct{ Query string }

type TagChanged struct{ Tag string }

// CardActivated is a pointer or key activation on a grid card. Key is one
// of the render.Key* values or a raw key name.
type CardActivated struct {
	ID  string
	Key string
}

// OpenRequested opens a detail view without a card, e.g. from a URL.
type OpenRequested struct{ ID string }

type OverlayClicked struct{}

type CloseClicked struct{}

type DoneClicked struct{}

// KeyPressed is a document-level key press. Only Escape is handled.
type KeyPressed struct{ Key string }

type NavToggled struct{}

func (SearchChanged) isEvent()  {}
func (TagChanged) isEvent()     {}
func (CardActivated) isEvent()  {}
func (OpenRequested) isEvent()  {}
func (OverlayClicked) isEvent() {}
func (CloseClicked) isEvent()   {}
func (DoneClicked) isEvent()    {}
func (KeyPressed) isEvent()     {}
func (NavToggled) isEvent()     {}
