package tui

import "folio-cli/internal/render"

// screen is what the controller draws on. The model reads it back in View.
type screen struct {
	year     int
	navOpen  bool
	navLabel string
	tags     []string
	tag      string
	cards    render.Cards

	loadErrorHTML string

	detail       *render.Detail
	scrollLocked bool
	closeFocused bool
}

func (s *screen) SetYear(year int) { s.year = year }

func (s *screen) SetNav(open bool, label string) {
	s.navOpen = open
	s.navLabel = label
}

func (s *screen) SetTagOptions(tags []string) { s.tags = append([]string(nil), tags...) }

func (s *screen) SetFilter(_ string, tag string) { s.tag = tag }

func (s *screen) Grid() render.Target { return &s.cards }

func (s *screen) ShowLoadError(html string) {
	s.cards = nil
	s.loadErrorHTML = html
}

func (s *screen) ShowDetail(d render.Detail) { s.detail = &d }

func (s *screen) HideDetail() {
	s.detail = nil
	s.closeFocused = false
}

func (s *screen) SetScrollLocked(locked bool) { s.scrollLocked = locked }

func (s *screen) FocusClose() { s.closeFocused = true }

func (s *screen) failed() bool { return s.loadErrorHTML != "" }
