package tui

import (
	"context"

	"folio-cli/internal/app"
	"folio-cli/internal/model"
	"folio-cli/internal/render"
	"folio-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

type loadedMsg struct {
	projects []model.Project
	err      error
}

type browserModel struct {
	ctx    context.Context
	source string
	title  string
	owner  string
	loader app.Loader
	log    *zap.Logger

	screen *screen
	ctrl   *app.Controller

	keys   keyMap
	help   help.Model
	styles cardStyles
	search textinput.Model
	detail viewport.Model

	width     int
	height    int
	loaded    bool
	cursor    int
	rowOffset int
	searching bool
	tagIdx    int // 0 is "all tags"
	shownID   string
}

func newModel(ctx context.Context, opts Options) browserModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Loader == nil {
		opts.Loader = store.Loader{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Source == "" {
		opts.Source = store.DefaultSource
	}
	if opts.Title == "" {
		opts.Title = "Projects"
	}

	s := &screen{}
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search projects"
	search.CharLimit = 256

	return browserModel{
		ctx:    ctx,
		source: opts.Source,
		title:  opts.Title,
		owner:  opts.Owner,
		loader: opts.Loader,
		log:    opts.Logger,
		screen: s,
		ctrl: app.New(s, app.Options{
			Loader: opts.Loader,
			Logger: opts.Logger,
			Now:    opts.Now,
		}),
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: newCardStyles(),
		search: search,
		detail: viewport.New(0, 0),
		width:  defaultWidth,
		height: defaultHeight,
	}
}

func (m browserModel) Init() tea.Cmd {
	ctx, loader, source := m.ctx, m.loader, m.source
	return func() tea.Msg {
		projects, err := loader.Load(ctx, source)
		return loadedMsg{projects: projects, err: err}
	}
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.syncDetail()
		m.ensureVisible()
		return m, nil

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.ctrl.Fail(m.source, msg.err)
			return m, nil
		}
		m.ctrl.Start(msg.projects)
		m.log.Debug("browser ready", zap.Int("projects", len(msg.projects)), zap.Int("tags", len(m.screen.tags)))
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch {
		case !m.loaded:
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		case m.screen.detail != nil:
			return m.updateDetail(msg)
		case m.searching:
			return m.updateSearch(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m browserModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := gridColumns(m.width)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		if m.screen.failed() {
			return m, nil
		}
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Menu):
		m.ctrl.Dispatch(app.NavToggled{})
	case key.Matches(msg, m.keys.Tag):
		m.cycleTag(1)
	case key.Matches(msg, m.keys.TagRev):
		m.cycleTag(-1)
	case key.Matches(msg, m.keys.Open):
		if c, ok := m.selectedCard(); ok {
			m.ctrl.Dispatch(app.CardActivated{ID: c.ID, Key: msg.String()})
			m.syncDetail()
		}
	case key.Matches(msg, m.keys.Up):
		m.move(-cols)
	case key.Matches(msg, m.keys.Down):
		m.move(cols)
	case key.Matches(msg, m.keys.Left):
		m.move(-1)
	case key.Matches(msg, m.keys.Right):
		m.move(1)
	default:
		m.ctrl.Dispatch(app.KeyPressed{Key: msg.String()})
	}
	return m, nil
}

func (m browserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != prev {
		m.ctrl.Dispatch(app.SearchChanged{Query: v})
		m.resetCursor()
	}
	return m, cmd
}

func (m browserModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.ctrl.Dispatch(app.KeyPressed{Key: msg.String()})
	case key.Matches(msg, m.keys.Close):
		m.ctrl.Dispatch(app.CloseClicked{})
	case key.Matches(msg, m.keys.Done):
		m.ctrl.Dispatch(app.DoneClicked{})
	case key.Matches(msg, m.keys.NextFocus):
		m.screen.closeFocused = !m.screen.closeFocused
	case key.Matches(msg, m.keys.ScrollUp):
		if msg.String() == "pgup" {
			m.detail.ViewUp()
		} else {
			m.detail.LineUp(1)
		}
		return m, nil
	case key.Matches(msg, m.keys.ScrollDn):
		if msg.String() == "pgdown" {
			m.detail.ViewDown()
		} else {
			m.detail.LineDown(1)
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if m.screen.closeFocused {
			m.ctrl.Dispatch(app.CloseClicked{})
		} else {
			m.ctrl.Dispatch(app.DoneClicked{})
		}
	default:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	m.syncDetail()
	return m, nil
}

func (m browserModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.screen.detail != nil {
		x, y, w, h := m.modalRect()
		inside := msg.X >= x && msg.X < x+w && msg.Y >= y && msg.Y < y+h
		if !inside {
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
				m.ctrl.Dispatch(app.OverlayClicked{})
				m.syncDetail()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if idx, ok := m.cardAt(msg.X, msg.Y); ok {
		m.cursor = idx
		m.ctrl.Dispatch(app.CardActivated{ID: m.screen.cards[idx].ID, Key: render.KeyClick})
		m.syncDetail()
	}
	return m, nil
}

func (m *browserModel) cycleTag(delta int) {
	n := len(m.screen.tags) + 1
	m.tagIdx = ((m.tagIdx+delta)%n + n) % n
	tag := ""
	if m.tagIdx > 0 {
		tag = m.screen.tags[m.tagIdx-1]
	}
	m.ctrl.Dispatch(app.TagChanged{Tag: tag})
	m.resetCursor()
}

func (m *browserModel) selectedCard() (render.Card, bool) {
	if m.cursor < 0 || m.cursor >= len(m.screen.cards) {
		return render.Card{}, false
	}
	return m.screen.cards[m.cursor], true
}

func (m *browserModel) move(delta int) {
	n := len(m.screen.cards)
	if n == 0 {
		return
	}
	c := m.cursor + delta
	if c < 0 {
		c = 0
	}
	if c > n-1 {
		c = n - 1
	}
	m.cursor = c
	m.ensureVisible()
}

func (m *browserModel) resetCursor() {
	m.cursor = 0
	m.rowOffset = 0
}

func (m *browserModel) ensureVisible() {
	row := m.cursor / gridColumns(m.width)
	vis := m.visibleRows()
	if row < m.rowOffset {
		m.rowOffset = row
	}
	if row >= m.rowOffset+vis {
		m.rowOffset = row - vis + 1
	}
}

// syncDetail sizes the viewport and refills it from the open detail.
func (m *browserModel) syncDetail() {
	d := m.screen.detail
	if d == nil {
		m.shownID = ""
		return
	}
	inner := m.modalWidth() - 4
	body := detailBody(*d, inner)
	m.detail.Width = inner
	m.detail.Height = min(lineCount(body), m.maxDetailHeight())
	m.detail.SetContent(body)
	if m.shownID != d.ID {
		m.detail.GotoTop()
		m.shownID = d.ID
	}
}

// cardAt maps a screen cell to the index of the card drawn there.
func (m browserModel) cardAt(x, y int) (int, bool) {
	top := lineCount(m.headerView())
	if y < top || x < 0 {
		return 0, false
	}
	rowInView := (y - top) / cardHeight
	if rowInView >= m.visibleRows() {
		return 0, false
	}
	cols := gridColumns(m.width)
	stride := cardWidth(m.width, cols) + cardGap
	col := x / stride
	if col >= cols || x%stride >= stride-cardGap {
		return 0, false
	}
	idx := (rowInView+m.rowOffset)*cols + col
	if idx >= len(m.screen.cards) {
		return 0, false
	}
	return idx, true
}
