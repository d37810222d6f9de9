// Package loader reads the two input documents and converts the markdown
// glossary into a domain.Catalog.
package loader

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"vocabgraph/internal/domain"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrInputNotFound indicates a required input document is missing or
// unreadable. Fatal before any output is written.
var ErrInputNotFound = errors.New("input not found")

// Options control how glossary headings become catalog entries
type Options struct {
	// Aliases registers parenthetical clarifications as additional match
	// phrases, e.g. "RAG (Retrieval-Augmented Generation)" also matches
	// "retrieval augmented generation".
	Aliases bool

	// Variants maps a term's canonical name (or its match key) to extra
	// match phrases. This is the only way to widen matching beyond exact
	// whole-phrase hits.
	Variants map[string][]string
}

// DefaultOptions enables parenthetical aliases and no variants
func DefaultOptions() Options {
	return Options{Aliases: true}
}

// glossary terms are level-2 headings, optionally numbered: "## 3. Latency"
const termHeadingLevel = 2

var ordinalPrefix = regexp.MustCompile(`^\s*\d+\s*[.)]\s*`)

// LoadGlossary reads and parses the glossary document at path
func LoadGlossary(path string, opts Options) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: glossary %s: %v", ErrInputNotFound, path, err)
	}
	return ParseGlossary(data, opts), nil
}

// ParseGlossary extracts the ordered term catalog from glossary markdown.
// A document with no term headings yields an empty catalog, not an error;
// downstream stages handle zero terms.
func ParseGlossary(src []byte, opts Options) *domain.Catalog {
	catalog := domain.NewCatalog()

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != termHeadingLevel {
			return ast.WalkContinue, nil
		}

		name := ordinalPrefix.ReplaceAllString(headingText(heading, src), "")
		name = strings.TrimSpace(name)
		if name == "" {
			return ast.WalkSkipChildren, nil
		}

		entry := domain.NewTermEntry(name)
		applyAliases(&entry, opts)
		catalog.Add(entry)

		return ast.WalkSkipChildren, nil
	})

	return catalog
}

// LoadReport reads the prose document at path
func LoadReport(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: report %s: %v", ErrInputNotFound, path, err)
	}
	return string(data), nil
}

func applyAliases(entry *domain.TermEntry, opts Options) {
	if opts.Aliases {
		if p := domain.Parenthetical(entry.Name); p != "" {
			if key := domain.NormalizeKey(p); key != "" && key != entry.MatchKey {
				entry.Aliases = append(entry.Aliases, key)
			}
		}
	}

	variants := opts.Variants[entry.Name]
	if len(variants) == 0 {
		variants = opts.Variants[entry.MatchKey]
	}
	for _, v := range variants {
		if key := domain.NormalizeKey(v); key != "" && key != entry.MatchKey {
			entry.Aliases = append(entry.Aliases, key)
		}
	}
}

// headingText collects the plain text of a heading, descending through
// inline markup like emphasis or code spans
func headingText(heading *ast.Heading, src []byte) string {
	var b strings.Builder
	ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
