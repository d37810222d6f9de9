package domain

// NodePosition represents the laid-out coordinates of one graph node.
// Coordinates are in layout space, roughly [-1, 1] on both axes.
type NodePosition struct {
	Term string  `json:"term"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// NewNodePosition creates a new node position
func NewNodePosition(term string, x, y float64) NodePosition {
	return NodePosition{Term: term, X: x, Y: y}
}
