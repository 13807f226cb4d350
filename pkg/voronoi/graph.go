package voronoi

import "github.com/chazu/slasupport/pkg/geom"

// NodeIndex addresses a node in a Graph's arena.
type NodeIndex int

// EdgeIndex addresses a directed edge in a Graph's arena.
type EdgeIndex int

// CurveKind distinguishes the shape of an edge's width function.
type CurveKind int

const (
	// CurveLinear covers segment-segment and point-point generating
	// pairs: width is treated as varying linearly along the edge.
	CurveLinear CurveKind = iota
	// CurveParabolic covers point-segment generating pairs: width
	// follows width(u) = (u^2+h^2)/h in the local frame of the
	// segment's supporting line, where h is the point's distance to
	// that line and u is signed distance along it from the point's
	// foot.
	CurveParabolic
)

// Node is a Voronoi vertex with position and its outgoing edges.
type Node struct {
	Position  geom.Point
	Neighbors []EdgeIndex
}

// Edge is a directed, arena-indexed Voronoi graph edge. Two Edges sharing
// a geometric segment are always stored as
// a twin pair with reversed endpoints.
type Edge struct {
	From, To NodeIndex
	Twin     EdgeIndex
	Length   float64
	MinWidth float64
	MaxWidth float64

	// LeftSourceIndex and RightSourceIndex are the island line-list
	// indices of the two cells straddling this edge, recovered from the
	// originating half-edge. -1 means that side's generating feature is a
	// bare vertex, not a retained line.
	LeftSourceIndex, RightSourceIndex int

	Curve CurveKind

	// widthStart/widthEnd are the raw (unsorted) widths at ratio 0 and
	// ratio 1, used by analytic inversion regardless of curve kind.
	widthStart, widthEnd float64

	// Parabolic-only parameters, precomputed at construction.
	focus      geom.Point
	directrix  geom.Line
	h          float64 // distance from focus to directrix
	uStart     float64
	uEnd       float64
}

// Graph is the arena-based Voronoi graph for a single island: nodes and
// edges live in a single arena vector and are referred to by index, with
// each edge's twin stored as an index too.
type Graph struct {
	Nodes []Node
	Edges []Edge

	// ContourEntries holds the indices of nodes with exactly one
	// neighbor whose MinWidth is zero — the canonical traversal start
	// points.
	ContourEntries []NodeIndex
}

// addNode appends a node and returns its index.
func (g *Graph) addNode(pos geom.Point) NodeIndex {
	g.Nodes = append(g.Nodes, Node{Position: pos})
	return NodeIndex(len(g.Nodes) - 1)
}

// addEdgePair appends a twinned pair of edges between from and to and
// wires each node's Neighbors list. Returns the forward edge's index.
func (g *Graph) addEdgePair(from, to NodeIndex, fwd, bwd Edge) EdgeIndex {
	fwd.From, fwd.To = from, to
	bwd.From, bwd.To = to, from

	fi := EdgeIndex(len(g.Edges))
	g.Edges = append(g.Edges, fwd)
	bi := EdgeIndex(len(g.Edges))
	g.Edges = append(g.Edges, bwd)

	g.Edges[fi].Twin = bi
	g.Edges[bi].Twin = fi

	g.Nodes[from].Neighbors = append(g.Nodes[from].Neighbors, fi)
	g.Nodes[to].Neighbors = append(g.Nodes[to].Neighbors, bi)
	return fi
}

// Twin returns the reverse-oriented counterpart of edge e.
func (g *Graph) Twin(e EdgeIndex) EdgeIndex {
	return g.Edges[e].Twin
}

// NodeAt returns the node at the source end of edge e.
func (g *Graph) NodeAt(e EdgeIndex) NodeIndex {
	return g.Edges[e].From
}

// TargetOf returns the node at the destination end of edge e.
func (g *Graph) TargetOf(e EdgeIndex) NodeIndex {
	return g.Edges[e].To
}

// PointAt returns the Cartesian position at ratio t (0 at From, 1 at To)
// along edge e, interpolating the straight chord between its endpoint
// nodes. This is distinct from WidthAt's notion of t for parabolic edges,
// which parametrizes the true curve (see WidthAt's doc comment).
func (g *Graph) PointAt(e EdgeIndex, t float64) geom.Point {
	a := g.Nodes[g.Edges[e].From].Position
	b := g.Nodes[g.Edges[e].To].Position
	return a.Lerp(b, t)
}
