package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestDefaultConfig(t *testing.T) {
	t.Run("has the conventional paths", func(t *testing.T) {
		cfg := DefaultConfig()

		if cfg.Paths.Glossary != "vocabulary.md" {
			t.Errorf("unexpected glossary path %q", cfg.Paths.Glossary)
		}
		if cfg.Paths.Report != "research.md" {
			t.Errorf("unexpected report path %q", cfg.Paths.Report)
		}
		if cfg.Paths.Stats != "usage_stats.json" {
			t.Errorf("unexpected stats path %q", cfg.Paths.Stats)
		}
		if cfg.Paths.Image != "vocab_graph.png" {
			t.Errorf("unexpected image path %q", cfg.Paths.Image)
		}
	})

	t.Run("policies default on", func(t *testing.T) {
		cfg := DefaultConfig()

		if !cfg.AliasesEnabled() {
			t.Error("expected aliases on by default")
		}
		if !cfg.CoOccurrenceEnabled() {
			t.Error("expected co-occurrence on by default")
		}
		if !cfg.IncludeZeroEnabled() {
			t.Error("expected zero-count nodes on by default")
		}
	})

	t.Run("history disabled by default", func(t *testing.T) {
		if DefaultConfig().History.Path != "" {
			t.Error("expected empty history path")
		}
	})
}

func TestLoadFromPath(t *testing.T) {
	t.Run("loads explicit values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocabgraph.yaml")
		content := `version: 1
paths:
  glossary: docs/terms.md
  report: docs/report.md
match:
  aliases: false
  variants:
    Latency: [latencies]
graph:
  center_label: Core Topics
  co_occurrence: false
  include_zero: false
history:
  path: runs.db
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, loaded, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loaded != path {
			t.Errorf("expected loaded path %q, got %q", path, loaded)
		}
		if cfg.Paths.Glossary != "docs/terms.md" {
			t.Errorf("unexpected glossary %q", cfg.Paths.Glossary)
		}
		if cfg.AliasesEnabled() {
			t.Error("expected aliases disabled")
		}
		if cfg.CoOccurrenceEnabled() {
			t.Error("expected co-occurrence disabled")
		}
		if cfg.IncludeZeroEnabled() {
			t.Error("expected zero nodes disabled")
		}
		if cfg.Graph.CenterLabel != "Core Topics" {
			t.Errorf("unexpected center label %q", cfg.Graph.CenterLabel)
		}
		if cfg.History.Path != "runs.db" {
			t.Errorf("unexpected history path %q", cfg.History.Path)
		}
		if got := cfg.Match.Variants["Latency"]; len(got) != 1 || got[0] != "latencies" {
			t.Errorf("unexpected variants %v", cfg.Match.Variants)
		}
	})

	t.Run("missing fields fall back to defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocabgraph.yaml")
		if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, _, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Paths.Stats != "usage_stats.json" {
			t.Errorf("expected default stats path, got %q", cfg.Paths.Stats)
		}
		if cfg.TopHighlightCount() != 3 {
			t.Errorf("expected default top highlight, got %d", cfg.TopHighlightCount())
		}
	})

	t.Run("explicit zero disables top highlighting", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocabgraph.yaml")
		content := "version: 1\ngraph:\n  top_highlight: 0\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, _, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := cfg.TopHighlightCount(); got != 0 {
			t.Errorf("expected highlighting off, got %d", got)
		}
	})

	t.Run("unreadable path errors", func(t *testing.T) {
		if _, _, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected error for missing config")
		}
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocabgraph.yaml")
		if err := os.WriteFile(path, []byte("paths: ["), 0644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := LoadFromPath(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestFindConfigPath(t *testing.T) {
	t.Run("explicit env var wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(EnvConfigPath, path)

		if got := FindConfigPath(); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("env var pointing at missing file is skipped", func(t *testing.T) {
		t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		chdir(t, t.TempDir())

		if got := FindConfigPath(); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})

	t.Run("xdg location", func(t *testing.T) {
		xdg := t.TempDir()
		dir := filepath.Join(xdg, ConfigDirName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", xdg)
		chdir(t, t.TempDir())

		if got := FindConfigPath(); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})
}

func TestWatchPath(t *testing.T) {
	t.Run("found path wins", func(t *testing.T) {
		if got := WatchPath("/etc/vocabgraph/config.yaml"); got != "/etc/vocabgraph/config.yaml" {
			t.Errorf("unexpected watch path %q", got)
		}
	})

	t.Run("falls back to the local default", func(t *testing.T) {
		if got := WatchPath(""); got != ConfigFileName {
			t.Errorf("expected %q, got %q", ConfigFileName, got)
		}
	})
}

func TestConfigSave(t *testing.T) {
	t.Run("round trips through save and load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")
		cfg := DefaultConfig()
		cfg.Paths.Glossary = "custom.md"

		if err := cfg.Save(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		loaded, _, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loaded.Paths.Glossary != "custom.md" {
			t.Errorf("expected round-tripped glossary, got %q", loaded.Paths.Glossary)
		}
	})
}
