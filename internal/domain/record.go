package domain

import "sort"

// TermCount is one entry of a frequency record
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// FrequencyRecord is the ordered term -> count mapping produced by a single
// scan. It covers every catalog term exactly once, in catalog order; zero
// counts are retained so the persisted schema stays complete across runs.
type FrequencyRecord struct {
	Counts []TermCount `json:"counts"`
}

// NewFrequencyRecord creates a record covering every catalog term at zero
func NewFrequencyRecord(catalog *Catalog) *FrequencyRecord {
	rec := &FrequencyRecord{Counts: make([]TermCount, 0, catalog.Len())}
	for _, e := range catalog.Entries {
		rec.Counts = append(rec.Counts, TermCount{Term: e.Name})
	}
	return rec
}

// Set assigns the count for a term already present in the record.
// Unknown terms are ignored; the record's key set is fixed at creation.
func (r *FrequencyRecord) Set(term string, count int) {
	for i := range r.Counts {
		if r.Counts[i].Term == term {
			r.Counts[i].Count = count
			return
		}
	}
}

// Get returns the count for a term
func (r *FrequencyRecord) Get(term string) (int, bool) {
	for _, tc := range r.Counts {
		if tc.Term == term {
			return tc.Count, true
		}
	}
	return 0, false
}

// Len returns the number of terms in the record
func (r *FrequencyRecord) Len() int {
	return len(r.Counts)
}

// Terms returns the term names in record (catalog) order
func (r *FrequencyRecord) Terms() []string {
	terms := make([]string, len(r.Counts))
	for i, tc := range r.Counts {
		terms[i] = tc.Term
	}
	return terms
}

// Total returns the sum of all counts
func (r *FrequencyRecord) Total() int {
	total := 0
	for _, tc := range r.Counts {
		total += tc.Count
	}
	return total
}

// TopTerms returns the names of the k most frequent terms with a nonzero
// count, ties broken alphabetically for stability
func (r *FrequencyRecord) TopTerms(k int) []string {
	nonzero := make([]TermCount, 0, len(r.Counts))
	for _, tc := range r.Counts {
		if tc.Count > 0 {
			nonzero = append(nonzero, tc)
		}
	}
	sort.Slice(nonzero, func(i, j int) bool {
		if nonzero[i].Count != nonzero[j].Count {
			return nonzero[i].Count > nonzero[j].Count
		}
		return nonzero[i].Term < nonzero[j].Term
	})
	if k < 0 {
		k = 0
	}
	if k > len(nonzero) {
		k = len(nonzero)
	}
	top := make([]string, k)
	for i := 0; i < k; i++ {
		top[i] = nonzero[i].Term
	}
	return top
}
