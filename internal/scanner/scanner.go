// Package scanner counts vocabulary term occurrences in prose.
//
// Matching is literal: the prose is normalized exactly like term match keys
// (lowercase, punctuation collapsed to spaces) and split into tokens, then
// each key is matched as a contiguous token sequence. Token-level matching
// gives whole-word and whole-phrase semantics without regexes: "generated"
// never matches "generate", and "context window" requires both tokens
// adjacent and in order. Wider matching happens only through explicit
// aliases on the catalog entry.
package scanner

import (
	"strings"

	"vocabgraph/internal/domain"
)

// Count produces the frequency record for a catalog over a prose document.
// The record covers every catalog term, in catalog order; zero counts are
// retained. Counting is a pure function of its inputs.
func Count(catalog *domain.Catalog, prose string) *domain.FrequencyRecord {
	rec := domain.NewFrequencyRecord(catalog)
	tokens := Tokenize(prose)

	for _, entry := range catalog.Entries {
		total := 0
		for _, key := range entry.Keys() {
			total += countPhrase(tokens, strings.Fields(key))
		}
		rec.Set(entry.Name, total)
	}

	return rec
}

// Tokenize normalizes prose and splits it into match tokens
func Tokenize(prose string) []string {
	return strings.Fields(domain.NormalizeKey(prose))
}

// countPhrase counts non-overlapping occurrences of phrase in tokens
func countPhrase(tokens, phrase []string) int {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return 0
	}

	count := 0
	for i := 0; i+len(phrase) <= len(tokens); {
		if matchAt(tokens, phrase, i) {
			count++
			i += len(phrase)
			continue
		}
		i++
	}
	return count
}

func matchAt(tokens, phrase []string, at int) bool {
	for j, p := range phrase {
		if tokens[at+j] != p {
			return false
		}
	}
	return true
}

// Sentences splits prose into sentences for co-occurrence derivation.
// A sentence boundary is any run of '.', '!', or '?'. Blank results are
// dropped.
func Sentences(prose string) []string {
	parts := strings.FieldsFunc(prose, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
