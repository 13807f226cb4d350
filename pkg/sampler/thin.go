package sampler

import (
	"sort"

	"github.com/chazu/slasupport/pkg/partition"
	"github.com/chazu/slasupport/pkg/support"
	"github.com/chazu/slasupport/pkg/voronoi"
)

// thinNode is a point where a thin part's internal walk can branch: a
// real Voronoi graph node (several segments can share one), or a
// fractional point along one edge where the part ends at a Change.
type thinNode struct {
	real      bool
	node      voronoi.NodeIndex
	edge      voronoi.EdgeIndex
	ratio     float64
}

func realNode(n voronoi.NodeIndex) thinNode { return thinNode{real: true, node: n} }

func changeNode(e voronoi.EdgeIndex, ratio float64) thinNode {
	return thinNode{real: false, edge: e, ratio: roundRatio(ratio)}
}

func roundRatio(r float64) float64 {
	const scale = 1e9
	return float64(int64(r*scale+0.5)) / scale
}

// thinSeg is one walkable hop between two thinNodes, carrying the
// geometry needed to interpolate intermediate Positions along it.
type thinSeg struct {
	to                   thinNode
	edge                 voronoi.EdgeIndex
	ratioStart, ratioEnd float64 // in the direction from -> to
	length               float64
}

func segEndpointNode(g *voronoi.Graph, e voronoi.EdgeIndex, ratio float64) thinNode {
	switch ratio {
	case 0:
		return realNode(g.Edges[e].From)
	case 1:
		return realNode(g.Edges[e].To)
	default:
		return changeNode(e, ratio)
	}
}

func buildThinGraph(g *voronoi.Graph, p *partition.Part) map[thinNode][]thinSeg {
	adj := make(map[thinNode][]thinSeg)
	for _, seg := range p.Segments() {
		from := segEndpointNode(g, seg.Edge, seg.RatioStart)
		to := segEndpointNode(g, seg.Edge, seg.RatioEnd)
		adj[from] = append(adj[from], thinSeg{to: to, edge: seg.Edge, ratioStart: seg.RatioStart, ratioEnd: seg.RatioEnd, length: seg.Length})
		adj[to] = append(adj[to], thinSeg{to: from, edge: seg.Edge, ratioStart: seg.RatioEnd, ratioEnd: seg.RatioStart, length: seg.Length})
	}
	return adj
}

func positionAlong(s thinSeg, frac float64) voronoi.Position {
	t := s.ratioStart + (s.ratioEnd-s.ratioStart)*frac
	return voronoi.Position{Edge: s.edge, Ratio: clamp01(t)}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

type hopKey struct {
	a, b thinNode
}

func canonicalHop(a, b thinNode) hopKey {
	if lessNode(a, b) {
		return hopKey{a, b}
	}
	return hopKey{b, a}
}

func lessNode(a, b thinNode) bool {
	if a.real != b.real {
		return a.real
	}
	if a.real {
		return a.node < b.node
	}
	if a.edge != b.edge {
		return a.edge < b.edge
	}
	return a.ratio < b.ratio
}

// SampleThin walks the thin part's internal sub-graph placing a point
// every thinMaxDistance, pushing side branches onto a stack with the
// running distance-until-next-sample counter copied, and emitting a
// closing point at any end or loop-back whose counter implies an
// undersampled gap.
func SampleThin(g *voronoi.Graph, p *partition.Part, thinMaxDistance float64) []*support.IslandPoint {
	adj := buildThinGraph(g, p)
	if len(adj) == 0 {
		return nil
	}
	start, startPos := thinWalkStart(g, p, adj)

	type frame struct {
		node     thinNode
		from     thinNode
		haveFrom bool
		counter  float64
		pos      voronoi.Position
	}

	var out []*support.IslandPoint
	visited := make(map[hopKey]bool)
	visitCount := make(map[thinNode]int)
	stack := []frame{{node: start, counter: thinMaxDistance / 2, pos: startPos}}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visitCount[fr.node]++

		neighbors := append([]thinSeg{}, adj[fr.node]...)
		sort.Slice(neighbors, func(i, j int) bool { return lessNode(neighbors[i].to, neighbors[j].to) })

		var branches []thinSeg
		for _, nb := range neighbors {
			if fr.haveFrom && nb.to == fr.from {
				continue
			}
			hk := canonicalHop(fr.node, nb.to)
			if visited[hk] {
				continue
			}
			visited[hk] = true
			branches = append(branches, nb)
		}

		if len(branches) == 0 {
			// A dead end or loop closure: emit one last point if the
			// counter implies the final stretch was undersampled.
			if fr.counter < thinMaxDistance/2 && fr.haveFrom {
				out = append(out, support.NewSkeletonPoint(endKind(fr.node, visitCount[fr.node]), g, fr.pos))
			}
			continue
		}

		for _, nb := range branches {
			endPos := positionAlong(nb, 1)
			remaining := walkHop(g, nb, fr.counter, thinMaxDistance, &out)
			stack = append(stack, frame{node: nb.to, from: fr.node, haveFrom: true, counter: remaining, pos: endPos})
		}
	}

	return out
}

// endKind reports the tag for a walk terminus. thin_part_loop is for a
// genuine loop closure: a real graph node the walk has already passed
// through once before. Every other terminus — an ordinary dead-end
// skeleton leaf, or a change marking the part's boundary — is tagged
// thin_part.
func endKind(n thinNode, visits int) support.PointKind {
	if n.real && visits > 1 {
		return support.KindThinPartLoop
	}
	return support.KindThinPart
}

// walkHop places every sample that falls within the hop, returning the
// counter value left over once its far end is reached.
func walkHop(g *voronoi.Graph, s thinSeg, counter, spacing float64, out *[]*support.IslandPoint) float64 {
	if s.length <= 0 {
		return counter
	}
	traveled := 0.0
	for counter <= s.length-traveled {
		traveled += counter
		pos := positionAlong(s, traveled/s.length)
		*out = append(*out, support.NewSkeletonPoint(support.KindThinPartChange, g, pos))
		counter = spacing
	}
	return counter - (s.length - traveled)
}

// thinWalkStart picks the change adjacent to the Position at the part's
// center — the change whose graph distance to the center is smallest —
// so the walk's phase is anchored the same way regardless of which
// change happened to be recorded first. A standalone closed loop with no
// Changes starts at an arbitrary real node instead, and a part whose
// center can't be derived (fewer than two changes) falls back to its
// first recorded change.
func thinWalkStart(g *voronoi.Graph, p *partition.Part, adj map[thinNode][]thinSeg) (thinNode, voronoi.Position) {
	if len(p.Changes) == 0 {
		var best thinNode
		for n, segs := range adj {
			if n.real && len(segs) > 0 {
				return n, voronoi.Position{Edge: segs[0].edge, Ratio: segs[0].ratioStart}
			}
			best = n
		}
		return best, voronoi.Position{Edge: best.edge, Ratio: best.ratio}
	}

	nearest := p.Changes[0]
	if thin, ok := partition.FinalizeThin(p); ok {
		center := g.Point(thin.Center)
		best := center.DistanceTo(g.Point(nearest.Position))
		for _, ch := range p.Changes[1:] {
			if d := center.DistanceTo(g.Point(ch.Position)); d < best {
				best, nearest = d, ch
			}
		}
	}
	return segEndpointNode(g, nearest.Position.Edge, nearest.Position.Ratio), nearest.Position
}
