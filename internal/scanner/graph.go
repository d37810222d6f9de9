package scanner

import (
	"vocabgraph/internal/domain"
)

// GraphOptions control how the relationship graph is derived from a
// frequency record
type GraphOptions struct {
	// CenterLabel is the hub node every term connects to. Empty disables
	// the hub node entirely.
	CenterLabel string

	// CoOccurrence derives term-term edges from sentence-level adjacency
	// in the source prose.
	CoOccurrence bool

	// IncludeZero keeps zero-count terms in the graph at minimum weight
	// so the full vocabulary stays visible.
	IncludeZero bool

	// TopHighlight marks the N most frequent terms with the top role.
	TopHighlight int
}

// DefaultGraphOptions enables every derivation and keeps zero-count terms
// visible
func DefaultGraphOptions() GraphOptions {
	return GraphOptions{
		CenterLabel:  "Generative AI Applications",
		CoOccurrence: true,
		IncludeZero:  true,
		TopHighlight: 3,
	}
}

// DeriveGraph builds the relationship graph for a record. Node order is
// center first, then catalog order; edge derivation is deterministic, so
// identical inputs produce an identical graph.
//
// Hub edges connect the center node to every included term, weighted by the
// term's count. Co-occurrence edges connect two terms that appear in the
// same sentence of the prose, weighted by the number of shared sentences.
func DeriveGraph(catalog *domain.Catalog, rec *domain.FrequencyRecord, prose string, opts GraphOptions) *domain.Graph {
	graph := domain.NewGraph()

	top := make(map[string]bool)
	for _, term := range rec.TopTerms(opts.TopHighlight) {
		top[term] = true
	}

	if opts.CenterLabel != "" {
		graph.AddNode(domain.GraphNode{Term: opts.CenterLabel, Role: domain.NodeRoleCenter})
	}

	included := make([]domain.TermEntry, 0, catalog.Len())
	for _, entry := range catalog.Entries {
		count, _ := rec.Get(entry.Name)
		if count == 0 && !opts.IncludeZero {
			continue
		}

		role := domain.NodeRoleNormal
		if top[entry.Name] {
			role = domain.NodeRoleTop
		}
		graph.AddNode(domain.GraphNode{Term: entry.Name, Weight: count, Role: role})
		included = append(included, entry)

		if opts.CenterLabel != "" {
			graph.AddEdge(domain.NewGraphEdge(opts.CenterLabel, entry.Name, domain.EdgeKindHub, count))
		}
	}

	if opts.CoOccurrence {
		addCoOccurrenceEdges(graph, included, prose)
	}

	return graph
}

// addCoOccurrenceEdges links term pairs that share a sentence. Pair order
// follows catalog order, so edge insertion is deterministic.
func addCoOccurrenceEdges(graph *domain.Graph, entries []domain.TermEntry, prose string) {
	sentences := Sentences(prose)
	hits := make([][]bool, len(entries))
	for i := range hits {
		hits[i] = make([]bool, len(sentences))
	}

	for s, sentence := range sentences {
		tokens := Tokenize(sentence)
		for i, entry := range entries {
			for _, key := range entry.Keys() {
				if countPhrase(tokens, splitKey(key)) > 0 {
					hits[i][s] = true
					break
				}
			}
		}
	}

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			shared := 0
			for s := range sentences {
				if hits[i][s] && hits[j][s] {
					shared++
				}
			}
			if shared > 0 {
				graph.AddEdge(domain.NewGraphEdge(entries[i].Name, entries[j].Name, domain.EdgeKindCooccur, shared))
			}
		}
	}
}

func splitKey(key string) []string {
	return Tokenize(key)
}
