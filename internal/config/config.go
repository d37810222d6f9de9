// Package config provides configuration management for vocabgraph.
//
// Config file locations (priority order):
//  1. $VOCABGRAPH_CONFIG
//  2. ./vocabgraph.yaml
//  3. $XDG_CONFIG_HOME/vocabgraph/config.yaml
//  4. ~/.config/vocabgraph/config.yaml
//  5. /etc/vocabgraph/config.yaml
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full pipeline configuration
type Config struct {
	Version int           `yaml:"version"`
	Paths   PathsConfig   `yaml:"paths"`
	Match   MatchConfig   `yaml:"match"`
	Graph   GraphConfig   `yaml:"graph"`
	History HistoryConfig `yaml:"history"`
}

// PathsConfig holds the two input documents and the two output artifacts
type PathsConfig struct {
	Glossary string `yaml:"glossary"`
	Report   string `yaml:"report"`
	Stats    string `yaml:"stats"`
	Image    string `yaml:"image"`
}

// MatchConfig holds the matching policy. Matching is exact whole-phrase by
// default; Variants is the only way to widen it.
type MatchConfig struct {
	// Aliases lets parenthetical clarifications match too, e.g.
	// "RAG (Retrieval-Augmented Generation)" also counts occurrences of
	// "retrieval augmented generation".
	Aliases *bool `yaml:"aliases,omitempty"`

	// Variants maps a term name to extra phrases that count for it.
	Variants map[string][]string `yaml:"variants,omitempty"`
}

// GraphConfig holds relationship graph derivation settings
type GraphConfig struct {
	CenterLabel  string `yaml:"center_label"`
	CoOccurrence *bool  `yaml:"co_occurrence,omitempty"`
	IncludeZero  *bool  `yaml:"include_zero,omitempty"`

	// TopHighlight is a pointer so an explicit zero turns highlighting
	// off instead of falling back to the default.
	TopHighlight *int   `yaml:"top_highlight,omitempty"`
	Title        string `yaml:"title,omitempty"`
}

// HistoryConfig holds the optional sqlite run archive
type HistoryConfig struct {
	// Path to the sqlite database; empty disables the archive
	Path string `yaml:"path,omitempty"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{
		Version: 1,
		Paths: PathsConfig{
			Glossary: "vocabulary.md",
			Report:   "research.md",
			Stats:    "usage_stats.json",
			Image:    "vocab_graph.png",
		},
		Graph: GraphConfig{
			CenterLabel: "Generative AI Applications",
		},
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Paths.Glossary == "" {
		c.Paths.Glossary = "vocabulary.md"
	}
	if c.Paths.Report == "" {
		c.Paths.Report = "research.md"
	}
	if c.Paths.Stats == "" {
		c.Paths.Stats = "usage_stats.json"
	}
	if c.Paths.Image == "" {
		c.Paths.Image = "vocab_graph.png"
	}
}

// AliasesEnabled reports the parenthetical alias policy (default on)
func (c *Config) AliasesEnabled() bool {
	return c.Match.Aliases == nil || *c.Match.Aliases
}

// CoOccurrenceEnabled reports the co-occurrence edge policy (default on)
func (c *Config) CoOccurrenceEnabled() bool {
	return c.Graph.CoOccurrence == nil || *c.Graph.CoOccurrence
}

// IncludeZeroEnabled reports the zero-count node policy (default on)
func (c *Config) IncludeZeroEnabled() bool {
	return c.Graph.IncludeZero == nil || *c.Graph.IncludeZero
}

// TopHighlightCount reports how many leading terms get the top role.
// Defaults to 3 when unset; an explicit zero disables highlighting.
func (c *Config) TopHighlightCount() int {
	if c.Graph.TopHighlight == nil {
		return 3
	}
	return *c.Graph.TopHighlight
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Glossary: %s, Report: %s\n", c.Paths.Glossary, c.Paths.Report)
	summary += fmt.Sprintf("Stats: %s, Image: %s\n", c.Paths.Stats, c.Paths.Image)
	summary += fmt.Sprintf("Aliases: %t, Co-occurrence: %t, Zero nodes: %t",
		c.AliasesEnabled(), c.CoOccurrenceEnabled(), c.IncludeZeroEnabled())
	if c.History.Path != "" {
		summary += fmt.Sprintf("\nHistory: %s", c.History.Path)
	}
	return summary
}
