package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "folio.yaml"

// Config is layered: defaults, then the YAML file, then FOLIO_* env vars.
// Command-line flags are applied on top by the CLI.
type Config struct {
	Source string `yaml:"source" env:"FOLIO_SOURCE"`
	Addr   string `yaml:"addr" env:"FOLIO_ADDR"`
	Title  string `yaml:"title" env:"FOLIO_TITLE"`
	Owner  string `yaml:"owner" env:"FOLIO_OWNER"`
	Format string `yaml:"format" env:"FOLIO_FORMAT"`
}

func Default() Config {
	return Config{
		Source: "assets/data/projects.json",
		Addr:   "127.0.0.1:3336",
		Title:  "Projects",
		Format: "json",
	}
}

// Load builds a Config from path (or DefaultFile when path is empty) and the
// process environment. A missing DefaultFile is fine; a missing explicit
// path is an error.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load with an explicit environment. A nil environ means the
// process environment.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFile
	}
	if err := readFile(filepath.Clean(path), &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.normalized(), nil
}

func readFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c Config) normalized() Config {
	d := Default()
	c.Source = strings.TrimSpace(c.Source)
	c.Addr = strings.TrimSpace(c.Addr)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Source == "" {
		c.Source = d.Source
	}
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = d.Title
	}
	return c
}
