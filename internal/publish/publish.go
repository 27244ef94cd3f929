// Package publish exports the portfolio as a static site: one grid page,
// one page per tag and one page per project, plus the data file and
// stylesheet. The pages need no server and no JavaScript.
package publish

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"folio-cli/internal/app"
	"folio-cli/internal/filter"
	"folio-cli/internal/model"
	"folio-cli/internal/site"

	"go.uber.org/zap"
)

const (
	IndexFile    = "index.html"
	DataFile     = "assets/data/projects.json"
	CSSFile      = "static/site.css"
	MarkdownFile = "PROJECTS.md"
)

type WriteOptions struct {
	Title     string
	Owner     string
	Overwrite bool
	// Markdown also writes a PROJECTS.md catalog.
	Markdown bool
	// MediaRoot is where local media paths in the data are copied from.
	// Empty skips copying.
	MediaRoot string

	Now    func() time.Time
	Logger *zap.Logger
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteSite renders projects into toDir. Paths in the result are relative
// to toDir, in the order they were written.
func WriteSite(projects []model.Project, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}

	tags := filter.TagVocabulary(projects)
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	if err := checkNames("projects", ids, PageName); err != nil {
		return WriteResult{}, err
	}
	if err := checkNames("tags", tags, TagPageName); err != nil {
		return WriteResult{}, err
	}

	w := &siteWriter{dir: toDir, opt: opt}

	index, err := w.page(projects, "", "")
	if err != nil {
		return WriteResult{}, err
	}
	if err := w.write(IndexFile, index); err != nil {
		return WriteResult{}, err
	}

	for _, tag := range tags {
		b, err := w.page(projects, tag, "")
		if err != nil {
			return WriteResult{}, err
		}
		if err := w.write(TagPageName(tag), b); err != nil {
			return WriteResult{}, err
		}
	}

	for _, p := range projects {
		b, err := w.page(projects, "", p.ID)
		if err != nil {
			return WriteResult{}, err
		}
		if err := w.write(PageName(p.ID), b); err != nil {
			return WriteResult{}, err
		}
	}

	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return WriteResult{}, err
	}
	if err := w.write(DataFile, append(data, '\n')); err != nil {
		return WriteResult{}, err
	}

	css, err := site.Stylesheet()
	if err != nil {
		return WriteResult{}, err
	}
	if err := w.write(CSSFile, css); err != nil {
		return WriteResult{}, err
	}

	if strings.TrimSpace(opt.MediaRoot) != "" {
		if err := w.copyMedia(projects, opt.MediaRoot); err != nil {
			return WriteResult{}, err
		}
	}

	if opt.Markdown {
		md := RenderCatalogMarkdown(projects, RenderOptions{Title: opt.Title, Owner: opt.Owner})
		if err := w.write(MarkdownFile, []byte(md)); err != nil {
			return WriteResult{}, err
		}
	}

	opt.Logger.Info("site published", zap.String("dir", toDir), zap.Int("files", len(w.written)))
	return WriteResult{Written: w.written}, nil
}

type siteWriter struct {
	dir     string
	opt     WriteOptions
	written []string
}

// page renders the grid filtered by tag, with the detail for open shown
// when it is set.
func (w *siteWriter) page(projects []model.Project, tag string, open string) ([]byte, error) {
	p := &site.Page{
		Title: w.opt.Title,
		Owner: w.opt.Owner,
		Links: site.Links{
			Home:  IndexFile,
			Card:  PageName,
			Close: IndexFile,
			Tag:   TagPageName,
		},
	}
	c := app.New(p, app.Options{Now: w.opt.Now, Logger: w.opt.Logger})
	c.Start(projects)
	if tag != "" {
		c.Dispatch(app.TagChanged{Tag: tag})
	}
	if open != "" {
		c.Dispatch(app.OpenRequested{ID: open})
	}

	var buf bytes.Buffer
	if err := site.Render(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *siteWriter) write(rel string, b []byte) error {
	path := filepath.Join(w.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := writeFile(path, b, w.opt.Overwrite); err != nil {
		return err
	}
	w.written = append(w.written, rel)
	return nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}

// PageName is the file a project's detail page is written to. Pages sit
// next to index.html so relative media paths in the data keep resolving.
func PageName(id string) string {
	return "project-" + slug(id) + ".html"
}

// TagPageName is the file the grid filtered by tag is written to.
func TagPageName(tag string) string {
	return "tag-" + slug(tag) + ".html"
}

// slug keeps ASCII letters, digits, '-' and '_'. Anything else becomes '_'.
// When the result is not the lowercase original, a hash of the original is
// appended so inputs stay distinct on case-insensitive file systems.
func slug(s string) string {
	var b strings.Builder
	changed := s == ""
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
			changed = true
		default:
			b.WriteByte('_')
			changed = true
		}
	}
	if !changed {
		return b.String()
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return b.String() + "-" + strconv.FormatUint(uint64(h.Sum32()), 36)
}

func checkNames(kind string, keys []string, name func(string) string) error {
	seen := make(map[string]string, len(keys))
	for _, k := range keys {
		// Case-insensitive file systems would merge these.
		n := strings.ToLower(name(k))
		if prev, ok := seen[n]; ok {
			return fmt.Errorf("%s %q and %q map to the same page %s", kind, prev, k, name(k))
		}
		seen[n] = k
	}
	return nil
}
