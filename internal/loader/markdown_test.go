package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleGlossary = `# Generative AI Vocabulary

Intro paragraph.

## 1. Generative AI

Models that produce new content.

## 2. RAG (Retrieval-Augmented Generation)

Grounding generation in retrieved documents.

## 3. Latency

Time from request to first token.
`

func TestParseGlossary(t *testing.T) {
	t.Run("extracts terms in document order", func(t *testing.T) {
		catalog := ParseGlossary([]byte(sampleGlossary), DefaultOptions())

		want := []string{"Generative AI", "RAG (Retrieval-Augmented Generation)", "Latency"}
		if catalog.Len() != len(want) {
			t.Fatalf("expected %d terms, got %d: %v", len(want), catalog.Len(), catalog.Names())
		}
		for i, name := range catalog.Names() {
			if name != want[i] {
				t.Errorf("position %d: expected %q, got %q", i, want[i], name)
			}
		}
	})

	t.Run("strips ordinal from name", func(t *testing.T) {
		catalog := ParseGlossary([]byte("## 7. Token\n"), DefaultOptions())
		if catalog.Len() != 1 || catalog.Entries[0].Name != "Token" {
			t.Errorf("expected 'Token', got %v", catalog.Names())
		}
	})

	t.Run("strips paren-style ordinal", func(t *testing.T) {
		catalog := ParseGlossary([]byte("## 2) Token\n"), DefaultOptions())
		if catalog.Len() != 1 || catalog.Entries[0].Name != "Token" {
			t.Errorf("expected 'Token', got %v", catalog.Names())
		}
	})

	t.Run("derives normalized match keys", func(t *testing.T) {
		catalog := ParseGlossary([]byte(sampleGlossary), DefaultOptions())

		entry, ok := catalog.Get("RAG (Retrieval-Augmented Generation)")
		if !ok {
			t.Fatal("expected RAG entry")
		}
		if entry.MatchKey != "rag" {
			t.Errorf("expected match key 'rag', got %q", entry.MatchKey)
		}
	})

	t.Run("parenthetical becomes alias when enabled", func(t *testing.T) {
		catalog := ParseGlossary([]byte(sampleGlossary), DefaultOptions())

		entry, _ := catalog.Get("RAG (Retrieval-Augmented Generation)")
		if len(entry.Aliases) != 1 || entry.Aliases[0] != "retrieval augmented generation" {
			t.Errorf("unexpected aliases %v", entry.Aliases)
		}
	})

	t.Run("parenthetical alias disabled", func(t *testing.T) {
		catalog := ParseGlossary([]byte(sampleGlossary), Options{})

		entry, _ := catalog.Get("RAG (Retrieval-Augmented Generation)")
		if len(entry.Aliases) != 0 {
			t.Errorf("expected no aliases, got %v", entry.Aliases)
		}
	})

	t.Run("configured variants become aliases", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Variants = map[string][]string{"Latency": {"latencies"}}
		catalog := ParseGlossary([]byte(sampleGlossary), opts)

		entry, _ := catalog.Get("Latency")
		if len(entry.Aliases) != 1 || entry.Aliases[0] != "latencies" {
			t.Errorf("unexpected aliases %v", entry.Aliases)
		}
	})

	t.Run("heading with inline markup", func(t *testing.T) {
		catalog := ParseGlossary([]byte("## 1. **Context Window**\n"), DefaultOptions())
		if catalog.Len() != 1 || catalog.Entries[0].Name != "Context Window" {
			t.Errorf("expected 'Context Window', got %v", catalog.Names())
		}
	})

	t.Run("ignores other heading levels", func(t *testing.T) {
		src := "# Title\n\n### Subsection\n\n## 1. Token\n"
		catalog := ParseGlossary([]byte(src), DefaultOptions())
		if catalog.Len() != 1 {
			t.Errorf("expected 1 term, got %v", catalog.Names())
		}
	})

	t.Run("malformed document yields empty catalog", func(t *testing.T) {
		catalog := ParseGlossary([]byte("just prose, no headings"), DefaultOptions())
		if catalog.Len() != 0 {
			t.Errorf("expected empty catalog, got %v", catalog.Names())
		}
	})

	t.Run("duplicate headings keep first occurrence", func(t *testing.T) {
		src := "## 1. Token\n\n## 2. Token\n"
		catalog := ParseGlossary([]byte(src), DefaultOptions())
		if catalog.Len() != 1 {
			t.Errorf("expected 1 term, got %v", catalog.Names())
		}
	})
}

func TestLoadGlossary(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocabulary.md")
		if err := os.WriteFile(path, []byte(sampleGlossary), 0644); err != nil {
			t.Fatal(err)
		}

		catalog, err := LoadGlossary(path, DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if catalog.Len() != 3 {
			t.Errorf("expected 3 terms, got %d", catalog.Len())
		}
	})

	t.Run("missing file is ErrInputNotFound", func(t *testing.T) {
		_, err := LoadGlossary(filepath.Join(t.TempDir(), "absent.md"), DefaultOptions())
		if !errors.Is(err, ErrInputNotFound) {
			t.Errorf("expected ErrInputNotFound, got %v", err)
		}
	})
}

func TestLoadReport(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "research.md")
		if err := os.WriteFile(path, []byte("some prose"), 0644); err != nil {
			t.Fatal(err)
		}

		prose, err := LoadReport(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prose != "some prose" {
			t.Errorf("unexpected content %q", prose)
		}
	})

	t.Run("missing file is ErrInputNotFound", func(t *testing.T) {
		_, err := LoadReport(filepath.Join(t.TempDir(), "absent.md"))
		if !errors.Is(err, ErrInputNotFound) {
			t.Errorf("expected ErrInputNotFound, got %v", err)
		}
	})
}
