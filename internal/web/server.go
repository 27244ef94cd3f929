package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"folio-cli/internal/app"
	"folio-cli/internal/model"
	"folio-cli/internal/site"
	"folio-cli/internal/store"

	"go.uber.org/zap"
)

type ServerConfig struct {
	Addr   string
	Source string
	// Root is served under /assets/ so relative media paths in the data
	// file resolve the same way they do on the published site.
	Root  string
	Title string
	Owner string

	Loader store.Loader
	Logger *zap.Logger
}

// Server renders the portfolio server-side: filters and the detail view are
// driven by query parameters, so no JavaScript is needed.
type Server struct {
	cfg ServerConfig
	log *zap.Logger

	mu       sync.RWMutex
	projects []model.Project
	loadErr  error

	onReload func() // test hook, called after each watcher reload
}

func NewServer(ctx context.Context, cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.Source = strings.TrimSpace(cfg.Source)
	cfg.Root = strings.TrimSpace(cfg.Root)
	if cfg.Source == "" {
		return nil, errors.New("web: source is empty")
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = "Projects"
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{cfg: cfg, log: log}
	// A broken data file is reported on the page, not at startup.
	_ = s.Reload(ctx)
	return s, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

// Reload reads the source again and swaps the snapshot. On failure the
// previous projects are dropped so pages show the load error.
func (s *Server) Reload(ctx context.Context) error {
	projects, err := s.cfg.Loader.Load(ctx, s.cfg.Source)

	s.mu.Lock()
	s.projects = projects
	s.loadErr = err
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("project load failed", zap.String("source", s.cfg.Source), zap.Error(err))
		return err
	}
	s.log.Info("projects loaded", zap.String("source", s.cfg.Source), zap.Int("count", len(projects)))
	return nil
}

func (s *Server) snapshot() ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects, s.loadErr
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /static/site.css", s.handleSiteCSS)
	mux.HandleFunc("GET /assets/data/projects.json", s.handleData)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(s.cfg.Root, "assets")))))
	mux.HandleFunc("GET /projects/{projectId}", s.handleProject)
	mux.HandleFunc("GET /{$}", s.handleHome)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleSiteCSS(w http.ResponseWriter, r *http.Request) {
	b, err := site.Stylesheet()
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	projects, err := s.snapshot()
	w.Header().Set("Cache-Control", "no-store")
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	b, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("projectId")
	http.Redirect(w, r, pageURL(homeState{open: id}), http.StatusSeeOther)
}

type homeState struct {
	query string
	tag   string
	open  string
	nav   bool
}

func homeStateFromRequest(r *http.Request) homeState {
	q := r.URL.Query()
	return homeState{
		query: q.Get("q"),
		tag:   q.Get("tag"),
		open:  strings.TrimSpace(q.Get("open")),
		nav:   q.Get("nav") == "open",
	}
}

func pageURL(st homeState) string {
	v := url.Values{}
	if st.query != "" {
		v.Set("q", st.query)
	}
	if st.tag != "" {
		v.Set("tag", st.tag)
	}
	if st.open != "" {
		v.Set("open", st.open)
	}
	if st.nav {
		v.Set("nav", "open")
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	st := homeStateFromRequest(r)

	closed := st
	closed.open = ""
	navToggled := st
	navToggled.nav = !st.nav

	page := &site.Page{
		Title: s.cfg.Title,
		Owner: s.cfg.Owner,
		Links: site.Links{
			Home: "/",
			Base: "/",
			Card: func(id string) string {
				withOpen := st
				withOpen.open = id
				return pageURL(withOpen)
			},
			Close:     pageURL(closed),
			NavToggle: pageURL(navToggled),
			FilterURL: "/",
		},
	}
	c := app.New(page, app.Options{Logger: s.log})

	status := http.StatusOK
	projects, loadErr := s.snapshot()
	if loadErr != nil {
		c.Fail(s.cfg.Source, loadErr)
		status = http.StatusInternalServerError
	} else {
		c.Start(projects)
		if st.nav {
			c.Dispatch(app.NavToggled{})
		}
		if st.query != "" {
			c.Dispatch(app.SearchChanged{Query: st.query})
		}
		if st.tag != "" {
			c.Dispatch(app.TagChanged{Tag: st.tag})
		}
		if st.open != "" {
			c.Dispatch(app.OpenRequested{ID: st.open})
		}
	}

	var buf bytes.Buffer
	if err := site.Render(&buf, page); err != nil {
		s.log.Error("render page", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
