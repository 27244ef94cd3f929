// Package app owns the portfolio application state and reacts to UI events.
//
// The Controller never touches a concrete UI. It drives a Surface, which the
// terminal browser, the HTML preview and the static exporter implement.
package app

import (
	"context"
	"strings"
	"time"

	"folio-cli/internal/filter"
	"folio-cli/internal/model"
	"folio-cli/internal/render"
	"folio-cli/internal/store"

	"go.uber.org/zap"
)

// Surface is the UI collaborator the Controller writes to.
type Surface interface {
	SetYear(year int)
	SetNav(open bool, label string)
	SetTagOptions(tags []string)
	SetFilter(query, tag string)
	Grid() render.Target
	ShowLoadError(html string)
	ShowDetail(d render.Detail)
	HideDetail()
	SetScrollLocked(locked bool)
	FocusClose()
}

type Loader interface {
	Load(ctx context.Context, source string) ([]model.Project, error)
}

type Options struct {
	Loader Loader
	Logger *zap.Logger
	Now    func() time.Time
}

type Controller struct {
	surface Surface
	loader  Loader
	log     *zap.Logger
	now     func() time.Time

	store    *store.Store
	criteria filter.Criteria
	modal    Modal
	navOpen  bool
	tags     []string
}

func New(surface Surface, opts Options) *Controller {
	c := &Controller{
		surface: surface,
		loader:  opts.Loader,
		log:     opts.Logger,
		now:     opts.Now,
		store:   store.New(nil),
	}
	if c.loader == nil {
		c.loader = store.Loader{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Init stamps the year, loads source and renders the full grid. A load
// failure is shown on the surface and returned; there is no retry.
func (c *Controller) Init(ctx context.Context, source string) error {
	projects, err := c.loader.Load(ctx, source)
	if err != nil {
		c.Fail(source, err)
		return err
	}
	c.log.Debug("projects loaded", zap.String("source", source), zap.Int("count", len(projects)))
	c.Start(projects)
	return nil
}

// Fail shows the load-error fallback in place of the grid.
func (c *Controller) Fail(source string, err error) {
	c.log.Warn("project load failed", zap.String("source", source), zap.Error(err))
	c.stamp()
	c.surface.ShowLoadError(render.LoadErrorHTML(source))
}

// Start is Init for callers that already hold the project set. Criteria set
// before the data arrived still apply.
func (c *Controller) Start(projects []model.Project) {
	c.stamp()
	c.store.Reset(projects)
	c.tags = filter.TagVocabulary(c.store.Projects())
	c.surface.SetTagOptions(c.tags)
	c.applyFilters()
}

func (c *Controller) stamp() {
	c.surface.SetYear(c.now().Year())
	c.surface.SetNav(c.navOpen, navLabel(c.navOpen))
}

func (c *Controller) Dispatch(ev Event) {
	switch ev := ev.(type) {
	case SearchChanged:
		c.criteria.Query = ev.Query
		c.applyFilters()
	case TagChanged:
		c.criteria.Tag = ev.Tag
		c.applyFilters()
	case CardActivated:
		if id, ok := (render.Card{ID: ev.ID}).Activate(ev.Key); ok {
			c.openDetail(id)
		}
	case OpenRequested:
		c.openDetail(ev.ID)
	case OverlayClicked, CloseClicked, DoneClicked:
		c.closeDetail()
	case KeyPressed:
		if isEscape(ev.Key) && c.modal.IsOpen() {
			c.closeDetail()
		}
	case NavToggled:
		c.navOpen = !c.navOpen
		c.surface.SetNav(c.navOpen, navLabel(c.navOpen))
	}
}

func (c *Controller) applyFilters() {
	c.store.SetFiltered(c.criteria.Apply(c.store.Projects()))
	c.surface.SetFilter(c.criteria.Query, c.criteria.Tag)
	render.Grid(c.surface.Grid(), c.store.Filtered())
}

func (c *Controller) openDetail(id string) {
	p, ok := c.modal.Open(id, c.store.Projects())
	if !ok {
		c.log.Debug("open detail: unknown project", zap.String("id", id))
		return
	}
	c.surface.ShowDetail(render.NewDetail(p))
	c.surface.SetScrollLocked(true)
	c.surface.FocusClose()
}

func (c *Controller) closeDetail() {
	if !c.modal.IsOpen() {
		return
	}
	c.surface.HideDetail()
	c.surface.SetScrollLocked(false)
	c.modal.Close()
}

func (c *Controller) Store() *store.Store { return c.store }

func (c *Controller) Modal() Modal { return c.modal }

func (c *Controller) Criteria() filter.Criteria { return c.criteria }

func (c *Controller) Tags() []string { return c.tags }

func (c *Controller) NavOpen() bool { return c.navOpen }

func navLabel(open bool) string {
	if open {
		return "Close menu"
	}
	return "Open menu"
}

func isEscape(key string) bool {
	switch strings.ToLower(key) {
	case "esc", "escape":
		return true
	}
	return false
}
