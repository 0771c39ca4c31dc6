package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/linkgraph/internal/parse"
)

// ErrInvalidConfig is returned when a config file holds out-of-range values.
var ErrInvalidConfig = errors.New("invalid config")

// Store backends.
const (
	BackendMemory = "memory"
	BackendKuzu   = "kuzu"
)

// ProjectConfig holds project-level settings loaded from linkgraph.yml,
// linkgraph.yaml or linkgraph.toml.
type ProjectConfig struct {
	// Dictionary is the language used when a request names none.
	Dictionary string `yaml:"dictionary,omitempty" toml:"dictionary"`
	// Corpus lists the replay corpus files, one per language.
	Corpus []string `yaml:"corpus,omitempty" toml:"corpus"`

	Linkages        int  `yaml:"linkages,omitempty" toml:"linkages"`
	LinkageCeiling  int  `yaml:"linkageCeiling,omitempty" toml:"linkage_ceiling"`
	MaxParseSeconds int  `yaml:"maxParseSeconds,omitempty" toml:"max_parse_seconds"`
	Minimal         bool `yaml:"minimal,omitempty" toml:"minimal"`

	Store StoreConfig `yaml:"store,omitempty" toml:"store"`

	LogLevel    string `yaml:"logLevel,omitempty" toml:"log_level"`
	Concurrency int    `yaml:"concurrency,omitempty" toml:"concurrency"`

	// Dir is the directory the config was loaded from. Relative paths
	// resolve against it.
	Dir string `yaml:"-" toml:"-"`
}

// StoreConfig selects the graph backend.
type StoreConfig struct {
	Backend string `yaml:"backend,omitempty" toml:"backend"`
	// Path is the Kuzu database directory; empty means in-memory.
	Path string `yaml:"path,omitempty" toml:"path"`
	// ExpandConnectors writes connectors in their decoded form.
	ExpandConnectors bool `yaml:"expandConnectors,omitempty" toml:"expand_connectors"`
}

// Load attempts to read linkgraph.yml, linkgraph.yaml or linkgraph.toml
// from the given directory, in that order. Returns a zero-value config (not
// an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"linkgraph.yml", "linkgraph.yaml", "linkgraph.toml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var cfg ProjectConfig
		if filepath.Ext(name) == ".toml" {
			err = toml.Unmarshal(data, &cfg)
		} else {
			err = yaml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg.Dir = dir
		return &cfg, nil
	}
	return &ProjectConfig{Dir: dir}, nil
}

// Validate rejects negative limits and unknown store backends.
func (c *ProjectConfig) Validate() error {
	switch {
	case c.Linkages < 0:
		return fmt.Errorf("%w: linkages %d", ErrInvalidConfig, c.Linkages)
	case c.LinkageCeiling < 0:
		return fmt.Errorf("%w: linkage ceiling %d", ErrInvalidConfig, c.LinkageCeiling)
	case c.MaxParseSeconds < 0:
		return fmt.Errorf("%w: max parse seconds %d", ErrInvalidConfig, c.MaxParseSeconds)
	case c.Concurrency < 0:
		return fmt.Errorf("%w: concurrency %d", ErrInvalidConfig, c.Concurrency)
	}
	switch c.Store.Backend {
	case "", BackendMemory, BackendKuzu:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	return nil
}

// Settings returns the parse policy settings. Unset fields stay zero so the
// policy keeps its defaults for them.
func (c *ProjectConfig) Settings() parse.Settings {
	return parse.Settings{
		DefaultLinkages: c.Linkages,
		LinkageCeiling:  c.LinkageCeiling,
		MaxParseTime:    time.Duration(c.MaxParseSeconds) * time.Second,
		Language:        c.Dictionary,
	}
}

// CorpusPaths returns the corpus files resolved against Dir.
func (c *ProjectConfig) CorpusPaths() []string {
	out := make([]string, len(c.Corpus))
	for i, p := range c.Corpus {
		out[i] = c.resolve(p)
	}
	return out
}

// StorePath returns the Kuzu database path resolved against Dir, or "" for
// an in-memory database.
func (c *ProjectConfig) StorePath() string {
	if c.Store.Path == "" {
		return ""
	}
	return c.resolve(c.Store.Path)
}

func (c *ProjectConfig) resolve(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}
