// Package layout computes node positions for the relationship graph.
//
// The layout is force-directed but fully deterministic: initial positions
// are seeded from node order (center at the origin, terms on a circle in
// catalog order) and the simulation runs a fixed number of iterations with
// constant parameters. There is no random source anywhere, so identical
// graphs always produce identical positions. The rendered image is committed
// on every run, which makes layout stability a hard requirement rather than
// a nicety.
package layout

import (
	"math"

	"vocabgraph/internal/domain"
)

// Config holds the spring simulation parameters
type Config struct {
	Iterations int     // simulation steps
	Radius     float64 // initial ring radius for term nodes
	Spring     float64 // ideal edge length
	Repulse    float64 // repulsion strength between all node pairs
	Cooling    float64 // per-iteration temperature decay
}

// DefaultConfig returns parameters tuned for a few dozen nodes
func DefaultConfig() Config {
	return Config{
		Iterations: 120,
		Radius:     0.8,
		Spring:     0.55,
		Repulse:    0.012,
		Cooling:    0.96,
	}
}

// Spring computes positions for every node in the graph. Coordinates are
// normalized so the layout fits in [-1, 1] on both axes. The center node,
// if present, is pinned at the origin.
func Spring(graph *domain.Graph, cfg Config) map[string]domain.NodePosition {
	n := len(graph.Nodes)
	positions := make(map[string]domain.NodePosition, n)
	if n == 0 {
		return positions
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	pinned := make([]bool, n)

	seed(graph, cfg, xs, ys, pinned)
	simulate(graph, cfg, xs, ys, pinned)
	normalize(xs, ys)

	for i, node := range graph.Nodes {
		positions[node.Term] = domain.NewNodePosition(node.Term, xs[i], ys[i])
	}
	return positions
}

// seed places the center at the origin and the remaining nodes on a circle
// in node (catalog) order, starting at twelve o'clock
func seed(graph *domain.Graph, cfg Config, xs, ys []float64, pinned []bool) {
	ring := 0
	ringSize := 0
	for _, node := range graph.Nodes {
		if node.Role != domain.NodeRoleCenter {
			ringSize++
		}
	}

	for i, node := range graph.Nodes {
		if node.Role == domain.NodeRoleCenter {
			xs[i], ys[i] = 0, 0
			pinned[i] = true
			continue
		}
		angle := 2*math.Pi*float64(ring)/float64(ringSize) - math.Pi/2
		xs[i] = cfg.Radius * math.Cos(angle)
		ys[i] = cfg.Radius * math.Sin(angle)
		ring++
	}
}

func simulate(graph *domain.Graph, cfg Config, xs, ys []float64, pinned []bool) {
	n := len(xs)
	index := make(map[string]int, n)
	for i, node := range graph.Nodes {
		index[node.Term] = i
	}

	dx := make([]float64, n)
	dy := make([]float64, n)
	temperature := cfg.Radius / 4

	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}

		// pairwise repulsion
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				vx, vy, dist := delta(xs, ys, i, j)
				force := cfg.Repulse / (dist * dist)
				dx[i] += vx / dist * force
				dy[i] += vy / dist * force
				dx[j] -= vx / dist * force
				dy[j] -= vy / dist * force
			}
		}

		// attraction along edges
		for _, edge := range graph.Edges {
			i, ok := index[edge.From]
			if !ok {
				continue
			}
			j, ok := index[edge.To]
			if !ok {
				continue
			}
			vx, vy, dist := delta(xs, ys, i, j)
			force := (dist - cfg.Spring) * 0.05
			dx[i] -= vx / dist * force
			dy[i] -= vy / dist * force
			dx[j] += vx / dist * force
			dy[j] += vy / dist * force
		}

		for i := 0; i < n; i++ {
			if pinned[i] {
				continue
			}
			mag := math.Hypot(dx[i], dy[i])
			if mag == 0 {
				continue
			}
			step := math.Min(mag, temperature)
			xs[i] += dx[i] / mag * step
			ys[i] += dy[i] / mag * step
		}

		temperature *= cfg.Cooling
	}
}

// delta returns the displacement vector from j to i with a floor on the
// distance so coincident nodes separate deterministically
func delta(xs, ys []float64, i, j int) (vx, vy, dist float64) {
	vx = xs[i] - xs[j]
	vy = ys[i] - ys[j]
	dist = math.Hypot(vx, vy)
	if dist < 1e-6 {
		// nudge along x, direction fixed by index order
		vx = 1e-6 * float64(i-j)
		vy = 0
		dist = math.Abs(vx)
	}
	return vx, vy, dist
}

// normalize rescales positions so the farthest node sits at unit distance
func normalize(xs, ys []float64) {
	max := 0.0
	for i := range xs {
		if a := math.Abs(xs[i]); a > max {
			max = a
		}
		if a := math.Abs(ys[i]); a > max {
			max = a
		}
	}
	if max == 0 {
		return
	}
	for i := range xs {
		xs[i] /= max
		ys[i] /= max
	}
}
