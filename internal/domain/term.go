package domain

import (
	"strings"
	"unicode"
)

// TermEntry represents one canonical vocabulary term
type TermEntry struct {
	// Name is the canonical display form, as written in the glossary
	// (minus any leading ordinal token).
	Name string `json:"name"`

	// MatchKey is the normalized form used for matching: lowercased,
	// punctuation collapsed, parenthetical clarifications removed.
	MatchKey string `json:"match_key"`

	// Aliases are additional normalized phrases that also count as an
	// occurrence of this term (parenthetical expansions, configured
	// variants).
	Aliases []string `json:"aliases,omitempty"`
}

// NewTermEntry creates a term entry, deriving the match key from the name
func NewTermEntry(name string) TermEntry {
	return TermEntry{
		Name:     name,
		MatchKey: NormalizeKey(StripParenthetical(name)),
	}
}

// Keys returns the match key followed by all aliases, skipping empties
func (t TermEntry) Keys() []string {
	keys := make([]string, 0, 1+len(t.Aliases))
	if t.MatchKey != "" {
		keys = append(keys, t.MatchKey)
	}
	for _, a := range t.Aliases {
		if a != "" {
			keys = append(keys, a)
		}
	}
	return keys
}

// Catalog is the ordered set of vocabulary terms from the glossary.
// Order is glossary document order.
type Catalog struct {
	Entries []TermEntry `json:"entries"`
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{Entries: make([]TermEntry, 0)}
}

// Add appends an entry unless an entry with the same name already exists.
// Returns true if the entry was added.
func (c *Catalog) Add(entry TermEntry) bool {
	for _, e := range c.Entries {
		if e.Name == entry.Name {
			return false
		}
	}
	c.Entries = append(c.Entries, entry)
	return true
}

// Len returns the number of terms in the catalog
func (c *Catalog) Len() int {
	return len(c.Entries)
}

// Names returns the term names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
	}
	return names
}

// Get returns the entry with the given name
func (c *Catalog) Get(name string) (TermEntry, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return TermEntry{}, false
}

// NormalizeKey lowercases a phrase and collapses every run of
// non-alphanumeric runes to a single space. "Context-Window!" and
// "context window" normalize identically.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

// StripParenthetical removes a trailing "(...)" clarification from a term,
// e.g. "RAG (Retrieval-Augmented Generation)" -> "RAG"
func StripParenthetical(s string) string {
	open := strings.Index(s, "(")
	if open < 0 {
		return s
	}
	close := strings.LastIndex(s, ")")
	if close < open {
		return s
	}
	return strings.TrimSpace(s[:open] + s[close+1:])
}

// Parenthetical returns the content of the first "(...)" clarification,
// or "" if the term has none
func Parenthetical(s string) string {
	open := strings.Index(s, "(")
	if open < 0 {
		return ""
	}
	close := strings.LastIndex(s, ")")
	if close < open {
		return ""
	}
	return strings.TrimSpace(s[open+1 : close])
}
