package debugsvg

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/support"
	"github.com/chazu/slasupport/pkg/voronoi"
)

// Options sizes the canvas and scales island coordinates (in geom.Coord
// units) down to pixels.
type Options struct {
	Width, Height int
	Scale         float64
}

// DefaultOptions picks a canvas comfortably larger than a typical
// micrometer-scale island at a 1:100 scale (1 SVG pixel per 100 microns).
func DefaultOptions() Options {
	return Options{Width: 1000, Height: 1000, Scale: 0.01}
}

var kindStyle = map[support.PointKind]string{
	support.KindThinPart:         "fill:blue",
	support.KindThinPartChange:   "fill:blue",
	support.KindThinPartLoop:     "fill:navy",
	support.KindThickPartOutline: "fill:green",
	support.KindThickPartInner:   "fill:darkgreen",
	support.KindOneBBCenterPoint: "fill:purple",
	support.KindOneCenterPoint:   "fill:purple",
	support.KindTwoPoints:        "fill:orange",
	support.KindTwoPointsBackup:  "fill:red",
	support.KindSlope:            "fill:magenta",
}

// projector converts island coordinates to SVG pixel coordinates,
// flipping Y (SVG grows downward, islands grow upward) and placing the
// minimum corner of the island's own bounding box at the canvas's
// bottom-left corner.
type projector struct {
	opts   Options
	origin geom.Point
}

func newProjector(island geom.ExPolygon, opts Options) projector {
	bb := island.BoundingBox()
	return projector{opts: opts, origin: bb.Min}
}

func (p projector) point(pt geom.Point) (int, int) {
	x, y := pt.F64()
	ox, oy := p.origin.F64()
	px := int((x - ox) * p.opts.Scale)
	py := p.opts.Height - int((y-oy)*p.opts.Scale)
	return px, py
}

// Dump writes one SVG document to w showing island's outline, g's
// skeleton edges (if g is non-nil), and points colored by kind.
func Dump(w io.Writer, island geom.ExPolygon, g *voronoi.Graph, points []*support.IslandPoint, opts Options) {
	proj := newProjector(island, opts)
	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	defer canvas.End()

	drawRing(canvas, proj, island.Contour, "stroke:black;fill:none;stroke-width:1")
	for _, hole := range island.Holes {
		drawRing(canvas, proj, hole, "stroke:gray;fill:none;stroke-width:1")
	}

	if g != nil {
		for _, e := range g.Edges {
			ax, ay := proj.point(g.Nodes[e.From].Position)
			bx, by := proj.point(g.Nodes[e.To].Position)
			canvas.Line(ax, ay, bx, by, "stroke:lightblue;stroke-width:1")
		}
	}

	for _, p := range points {
		cx, cy := proj.point(p.Position())
		style := kindStyle[p.Kind()]
		if style == "" {
			style = "fill:black"
		}
		canvas.Circle(cx, cy, 4, style)
	}
}

func drawRing(canvas *svg.SVG, proj projector, ring geom.Polygon, style string) {
	n := ring.Len()
	if n == 0 {
		return
	}
	xs := make([]int, n+1)
	ys := make([]int, n+1)
	for i := 0; i < n; i++ {
		x, y := proj.point(ring.At(i))
		xs[i], ys[i] = x, y
	}
	xs[n], ys[n] = xs[0], ys[0]
	canvas.Polyline(xs, ys, style)
}
