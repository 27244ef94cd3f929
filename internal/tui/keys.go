package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Open   key.Binding
	Search key.Binding
	Tag    key.Binding
	TagRev key.Binding
	Menu   key.Binding
	Quit   key.Binding

	// Detail view.
	Close     key.Binding
	Done      key.Binding
	Escape    key.Binding
	NextFocus key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Tag:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t/T", "tag")),
		TagRev: key.NewBinding(key.WithKeys("T")),
		Menu:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Close:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close")),
		Done:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		NextFocus: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		ScrollUp:  key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/k", "scroll up")),
		ScrollDn:  key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓/j", "scroll down")),
	}
}

func (k keyMap) gridHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Open, k.Search, k.Tag, k.Menu, k.Quit}
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.ScrollUp, k.ScrollDn, k.NextFocus, k.Open, k.Close, k.Done, k.Escape}
}
