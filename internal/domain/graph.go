package domain

import (
	"crypto/sha256"
	"fmt"
)

// NodeRole classifies a graph node for styling
type NodeRole string

const (
	NodeRoleCenter NodeRole = "center" // hub node, not a vocabulary term
	NodeRoleTop    NodeRole = "top"    // among the most frequent terms
	NodeRoleNormal NodeRole = "normal"
)

// EdgeKind represents how an edge was derived
type EdgeKind string

const (
	EdgeKindHub     EdgeKind = "hub"     // center node to term
	EdgeKindCooccur EdgeKind = "cooccur" // terms sharing a sentence
)

// GraphNode represents a term in the relationship graph
type GraphNode struct {
	Term   string   `json:"term"`
	Weight int      `json:"weight"`
	Role   NodeRole `json:"role"`
}

// GraphEdge represents a relation between two graph nodes
type GraphEdge struct {
	ID     string   `json:"id"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Kind   EdgeKind `json:"kind"`
	Weight int      `json:"weight"`
}

// NewGraphEdge creates an edge with a deterministic ID
func NewGraphEdge(from, to string, kind EdgeKind, weight int) GraphEdge {
	e := GraphEdge{From: from, To: to, Kind: kind, Weight: weight}
	e.ID = e.GenerateID()
	return e
}

// GenerateID creates a deterministic ID for the edge based on endpoints
func (e *GraphEdge) GenerateID() string {
	from, to := e.From, e.To
	if from > to {
		from, to = to, from
	}
	key := fmt.Sprintf("%s-%s-%s", from, to, e.Kind)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash[:8])
}

// Graph is the derived relationship view built from a frequency record.
// Node order follows catalog order (center node first) so every consumer
// sees a stable ordering.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// NewGraph creates an empty graph with initialized collections
func NewGraph() *Graph {
	return &Graph{
		Nodes: make([]GraphNode, 0),
		Edges: make([]GraphEdge, 0),
	}
}

// AddNode appends a node to the graph
func (g *Graph) AddNode(node GraphNode) {
	g.Nodes = append(g.Nodes, node)
}

// AddEdge appends an edge unless an edge with the same ID already exists
func (g *Graph) AddEdge(edge GraphEdge) {
	for _, e := range g.Edges {
		if e.ID == edge.ID {
			return
		}
	}
	g.Edges = append(g.Edges, edge)
}

// Node returns the node for a term
func (g *Graph) Node(term string) (GraphNode, bool) {
	for _, n := range g.Nodes {
		if n.Term == term {
			return n, true
		}
	}
	return GraphNode{}, false
}

// MaxWeight returns the largest node weight in the graph
func (g *Graph) MaxWeight() int {
	max := 0
	for _, n := range g.Nodes {
		if n.Weight > max {
			max = n.Weight
		}
	}
	return max
}
