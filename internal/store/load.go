package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"folio-cli/internal/model"
)

// LoadError reports that the project data source could not be fetched or
// did not contain a valid project list.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load projects from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether err (or anything it wraps) is a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// Loader fetches project data from a file path or an http(s) URL.
type Loader struct {
	// Client is used for http(s) sources. Nil means http.DefaultClient.
	Client *http.Client
}

// Load reads source with a default Loader.
func Load(ctx context.Context, source string) ([]model.Project, error) {
	return Loader{}.Load(ctx, source)
}

// Load reads and validates the project list. Every call reads the source
// fresh; HTTP requests ask intermediaries to revalidate.
func (l Loader) Load(ctx context.Context, source string) ([]model.Project, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultSource
	}

	var (
		b   []byte
		err error
	)
	if IsURL(source) {
		b, err = l.fetch(ctx, source)
	} else {
		b, err = os.ReadFile(filepath.Clean(source))
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	projects, err := Decode(b)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return projects, nil
}

func (l Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

var utf8BOM = []byte("\xEF\xBB\xBF")

// Decode parses a JSON array of projects and checks that ids are present
// and unique. A leading UTF-8 byte order mark is ignored.
func Decode(b []byte) ([]model.Project, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(b, utf8BOM))
	if len(trimmed) == 0 {
		return nil, errors.New("empty payload")
	}
	if trimmed[0] != '[' {
		return nil, errors.New("payload is not a JSON array")
	}

	var projects []model.Project
	if err := json.Unmarshal(trimmed, &projects); err != nil {
		return nil, fmt.Errorf("invalid project data: %w", err)
	}

	seen := make(map[string]int, len(projects))
	for i, p := range projects {
		if p.ID == "" {
			return nil, fmt.Errorf("project at index %d has no id", i)
		}
		if prev, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("duplicate project id %q at index %d (first at %d)", p.ID, i, prev)
		}
		seen[p.ID] = i
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}

// IsURL reports whether source is fetched over HTTP rather than read from disk.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
