// Package domain defines the core domain types for the vocabgraph term
// frequency pipeline.
//
// This package contains the fundamental entities and value objects shared by
// the loader, scanner, layout, and render stages.
//
// # Core Types
//
// TermEntry represents one canonical vocabulary term with its normalized
// match key and optional aliases. Catalog is the ordered collection of
// entries loaded from the glossary document; order is the document order and
// is preserved through every downstream artifact.
//
// FrequencyRecord is the ordered term -> count mapping produced by a single
// scan. Every catalog term has exactly one entry, including zero counts, so
// the persisted record has a stable, complete schema across runs.
//
// Graph, GraphNode, and GraphEdge are the derived view consumed by the
// layout and render stages. NodePosition holds the laid-out coordinates for
// one node.
//
// # Design Principles
//
// - Immutable value objects where possible
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
package domain
