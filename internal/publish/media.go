package publish

import (
	"errors"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"folio-cli/internal/model"

	"go.uber.org/zap"
)

// MediaPaths lists the local, relative media paths the projects refer to,
// in first-seen order. URLs, absolute paths and paths leaving the root are
// skipped.
func MediaPaths(projects []model.Project) []string {
	var out []string
	seen := map[string]bool{}
	add := func(ref string) {
		rel, ok := localPath(ref)
		if !ok || seen[rel] {
			return
		}
		seen[rel] = true
		out = append(out, rel)
	}
	for _, p := range projects {
		add(p.CoverImage)
		for _, img := range p.Images {
			add(img)
		}
		for _, f := range p.Files {
			add(f.Href)
		}
	}
	return out
}

func localPath(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "//") {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	p := u.Path
	if p == "" || strings.HasPrefix(p, "/") {
		return "", false
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", false
	}
	return p, true
}

// copyMedia copies every media path found under root into the site.
// Missing files are logged and skipped.
func (w *siteWriter) copyMedia(projects []model.Project, root string) error {
	for _, rel := range MediaPaths(projects) {
		src := filepath.Join(root, filepath.FromSlash(rel))
		dst := filepath.Join(w.dir, filepath.FromSlash(rel))
		if _, err := os.Stat(src); err != nil {
			w.opt.Logger.Warn("media file not found", zap.String("path", rel), zap.Error(err))
			continue
		}
		if samePath(src, dst) {
			continue
		}
		if !w.opt.Overwrite {
			if _, err := os.Stat(dst); err == nil {
				return errors.New("file exists (use --overwrite): " + dst)
			}
		}
		if err := CopyFile(src, dst); err != nil {
			return err
		}
		w.written = append(w.written, rel)
	}
	return nil
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}

func CopyFile(src string, dest string) error {
	src = filepath.Clean(src)
	dest = filepath.Clean(dest)
	if src == "" || dest == "" {
		return errors.New("copy file: missing src/dest")
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
