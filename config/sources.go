package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"immo-scraper/schema"
)

// Source registry validation errors.
var (
	ErrNoSources        = errors.New("at least one source is required")
	ErrMissingName      = errors.New("name is required")
	ErrMissingStartURL  = errors.New("start_url is required")
	ErrUnknownSchema    = errors.New("schema does not match a registered schema")
	ErrInvalidMaxPages  = errors.New("max_pages must be at least 1")
	ErrNoEnabledSources = errors.New("at least one source must be enabled")
)

// Sources is the crawl source registry loaded from sources.yaml.
type Sources struct {
	Sources []Source `yaml:"sources"`
}

// Source describes one site to crawl and which schema its records follow.
type Source struct {
	Name     string `yaml:"name"`
	Schema   string `yaml:"schema"`
	StartURL string `yaml:"start_url"`
	MaxPages int    `yaml:"max_pages"`
	Enabled  bool   `yaml:"enabled"`
}

// LoadSources reads and validates the source registry.
func LoadSources(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("sources validation failed: %w", err)
	}

	return &s, nil
}

// Enabled returns the sources that should actually be crawled.
func (s *Sources) Enabled() []Source {
	var out []Source
	for _, src := range s.Sources {
		if src.Enabled {
			out = append(out, src)
		}
	}
	return out
}

// Validate checks the registry against the schema package.
func (s *Sources) Validate() error {
	if len(s.Sources) == 0 {
		return ErrNoSources
	}

	enabled := 0
	for i, src := range s.Sources {
		if src.Name == "" {
			return fmt.Errorf("%w: source[%d]", ErrMissingName, i)
		}
		if src.StartURL == "" {
			return fmt.Errorf("%w: source[%d]", ErrMissingStartURL, i)
		}
		if _, ok := schema.ByName(src.Schema); !ok {
			return fmt.Errorf("%w: source[%d] schema %q", ErrUnknownSchema, i, src.Schema)
		}
		if src.MaxPages < 1 {
			return fmt.Errorf("%w: source[%d]", ErrInvalidMaxPages, i)
		}
		if src.Enabled {
			enabled++
		}
	}

	if enabled == 0 {
		return ErrNoEnabledSources
	}
	return nil
}
