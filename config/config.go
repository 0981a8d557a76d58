// Package config loads .mlfmt.yaml configuration files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// FileName is the configuration file searched for by Find.
const FileName = ".mlfmt.yaml"

var ErrConfig = errors.New("config error")

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds file settings. Zero values mean unset.
type Config struct {
	Indent   *int      `yaml:"indent,omitempty"`
	Color    ColorMode `yaml:"color,omitempty"`
	MaxDepth int       `yaml:"maxDepth,omitempty"`
}

func Parse(d []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.UnmarshalWithOptions(d, c, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Load(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Indent != nil && *c.Indent < 0 {
		return fmt.Errorf("%w: negative indent %d", ErrConfig, *c.Indent)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: negative maxDepth %d", ErrConfig, c.MaxDepth)
	}
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrConfig, c.Color)
	}
	return nil
}

// Find returns the path of the nearest FileName in dir or one of its
// parents, or "" if there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		p := filepath.Join(dir, FileName)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// FindAndLoad loads the configuration found from dir, or returns an
// empty configuration.
func FindAndLoad(dir string) (*Config, string, error) {
	p, err := Find(dir)
	if err != nil {
		return nil, "", err
	}
	if p == "" {
		return &Config{}, "", nil
	}
	c, err := Load(p)
	if err != nil {
		return nil, "", err
	}
	return c, p, nil
}
