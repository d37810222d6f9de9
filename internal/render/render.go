// Package render draws the relationship graph to a PNG image.
//
// The visual style: dark background with a faint grid, scattered light
// particles, segmented edges that brighten toward their target, and
// rectangular node cards with layered glow. Rendering is deterministic: the
// only pseudo-random element (the particle field) uses a fixed seed, so the
// image committed to version control stays byte-stable across runs.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"math/rand"

	"vocabgraph/internal/domain"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Options control canvas geometry and styling
type Options struct {
	Width  int
	Height int
	Title  string

	// Margin is the fraction of the canvas kept clear around the layout
	Margin float64
}

// DefaultOptions returns the standard canvas geometry
func DefaultOptions() Options {
	return Options{
		Width:  1600,
		Height: 1200,
		Title:  "Vocabulary Relationship Graph",
		Margin: 0.12,
	}
}

const (
	backgroundColor = "#030510"
	gridColor       = "#0a1028"
	particleColor   = "#3fd0ff"
	centerFace      = "#ffe89c"
	centerGlow      = "#fff7c7"
	topFace         = "#ffd1d9"
	topGlow         = "#ffe4ea"
	normalFace      = "#d6ecff"
	normalGlow      = "#e6f4ff"
	countColor      = "#4a6b86"

	particleSeed  = 42
	particleCount = 140
	edgeSegments  = 40
	gridLines     = 30
)

// Render draws the graph with the given positions and writes a PNG.
// A graph with no term nodes degrades to the placeholder image.
func Render(graph *domain.Graph, positions map[string]domain.NodePosition, opts Options, w io.Writer) error {
	if termNodeCount(graph) == 0 {
		return Placeholder("no vocabulary terms matched the report", opts, w)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	drawBackground(dc, opts)
	drawParticles(dc, opts)

	for _, edge := range graph.Edges {
		from, okFrom := positions[edge.From]
		to, okTo := positions[edge.To]
		if !okFrom || !okTo {
			continue
		}
		drawEdge(dc, opts, from, to)
	}

	maxWeight := graph.MaxWeight()
	for _, node := range graph.Nodes {
		pos, ok := positions[node.Term]
		if !ok {
			continue
		}
		drawNode(dc, opts, node, pos, maxWeight)
	}

	drawTitle(dc, opts)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Placeholder writes a minimal image carrying a message. Used when the
// graph is empty or rendering cannot complete; the frequency record is the
// critical artifact and a placeholder must never abort the run.
func Placeholder(message string, opts Options, w io.Writer) error {
	dc := gg.NewContext(opts.Width, opts.Height)
	drawBackground(dc, opts)

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(message, float64(opts.Width)/2, float64(opts.Height)/2, 0.5, 0.5)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode placeholder PNG: %w", err)
	}
	return nil
}

func termNodeCount(graph *domain.Graph) int {
	n := 0
	for _, node := range graph.Nodes {
		if node.Role != domain.NodeRoleCenter {
			n++
		}
	}
	return n
}

// project maps layout coordinates in [-1, 1] to canvas pixels
func project(opts Options, pos domain.NodePosition) (float64, float64) {
	mx := float64(opts.Width) * opts.Margin
	my := float64(opts.Height) * opts.Margin
	x := mx + (pos.X+1)/2*(float64(opts.Width)-2*mx)
	y := my + (pos.Y+1)/2*(float64(opts.Height)-2*my)
	return x, y
}

func drawBackground(dc *gg.Context, opts Options) {
	dc.SetHexColor(backgroundColor)
	dc.Clear()

	dc.SetLineWidth(0.6)
	for i := 0; i <= gridLines; i++ {
		dc.SetHexColor(gridColor)
		x := float64(i) / gridLines * float64(opts.Width)
		dc.DrawLine(x, 0, x, float64(opts.Height))
		dc.Stroke()
		y := float64(i) / gridLines * float64(opts.Height)
		dc.DrawLine(0, y, float64(opts.Width), y)
		dc.Stroke()
	}
}

func drawParticles(dc *gg.Context, opts Options) {
	rng := rand.New(rand.NewSource(particleSeed))
	pr, pg, pb := hexRGB(particleColor)
	dc.SetRGBA255(pr, pg, pb, 46)
	for i := 0; i < particleCount; i++ {
		x := rng.Float64() * float64(opts.Width)
		y := rng.Float64() * float64(opts.Height)
		dc.DrawCircle(x, y, 1.8)
		dc.Fill()
	}
}

// drawEdge draws a segmented line whose opacity ramps up toward the target
func drawEdge(dc *gg.Context, opts Options, from, to domain.NodePosition) {
	x1, y1 := project(opts, from)
	x2, y2 := project(opts, to)

	dc.SetLineWidth(1.6)
	for i := 0; i < edgeSegments; i++ {
		t0 := float64(i) / edgeSegments
		t1 := float64(i+1) / edgeSegments
		alpha := 0.15 + math.Pow(t0, 1.5)*0.5

		dc.SetRGBA(0.2, 0.8, 1.0, alpha)
		dc.DrawLine(x1+(x2-x1)*t0, y1+(y2-y1)*t0, x1+(x2-x1)*t1, y1+(y2-y1)*t1)
		dc.Stroke()
	}
}

func drawNode(dc *gg.Context, opts Options, node domain.GraphNode, pos domain.NodePosition, maxWeight int) {
	x, y := project(opts, pos)
	w, h := cardSize(node, maxWeight)
	face, glow := nodeColors(node.Role)

	// layered glow behind the card
	gr, gg2, gb := hexRGB(glow)
	dc.SetRGBA255(gr, gg2, gb, 46)
	dc.DrawRectangle(x-w/2-10, y-h/2-10, w+20, h+20)
	dc.Fill()
	dc.SetRGBA255(gr, gg2, gb, 90)
	dc.DrawRectangle(x-w/2-5, y-h/2-5, w+10, h+10)
	dc.Fill()

	dc.SetHexColor(face)
	dc.DrawRectangle(x-w/2, y-h/2, w, h)
	dc.FillPreserve()
	dc.SetColor(color.White)
	dc.SetLineWidth(1.8)
	dc.Stroke()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetHexColor("#000000")
	dc.DrawStringAnchored(node.Term, x, y, 0.5, 0.5)

	if node.Role != domain.NodeRoleCenter {
		dc.SetHexColor(countColor)
		dc.DrawStringAnchored(fmt.Sprintf("%d", node.Weight), x, y+h/2+12, 0.5, 0.5)
	}
}

// cardSize scales card width monotonically with weight. Zero-weight nodes
// keep a fixed minimum so the full vocabulary stays visible.
func cardSize(node domain.GraphNode, maxWeight int) (float64, float64) {
	if node.Role == domain.NodeRoleCenter {
		return 240, 46
	}

	base := 110.0
	if maxWeight > 0 {
		base += 90 * float64(node.Weight) / float64(maxWeight)
	}
	// never narrower than the label
	if min := float64(len(node.Term))*7 + 24; base < min {
		base = min
	}
	return base, 34
}

func nodeColors(role domain.NodeRole) (face, glow string) {
	switch role {
	case domain.NodeRoleCenter:
		return centerFace, centerGlow
	case domain.NodeRoleTop:
		return topFace, topGlow
	default:
		return normalFace, normalGlow
	}
}

func drawTitle(dc *gg.Context, opts Options) {
	if opts.Title == "" {
		return
	}
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(opts.Title, float64(opts.Width)/2, 24, 0.5, 0.5)
}

func hexRGB(hex string) (int, int, int) {
	var r, g, b int
	fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
