package partition

import (
	"math"

	"github.com/samber/lo"

	"github.com/chazu/slasupport/pkg/voronoi"
)

// Resolve runs three post-processing passes over a freshly classified
// Set, so only thin and thick parts remain:
//  1. every Middle part is absorbed into the neighbor with the largest
//     SumLengths, taking that neighbor's Type;
//  2. adjacent parts left sharing a Type are coalesced into one;
//  3. parts shorter than minPartLength are repeatedly merged into
//     whichever neighbor is closest by internal distance, until none are
//     left (or no further merge is possible).
func Resolve(s *Set, minPartLength float64) {
	mergeMiddles(s)
	coalesceSameType(s)
	mergeShortParts(s, minPartLength)
}

// neighborsOf returns, for part i, the distinct adjacent part indices
// together with the number of part i's Changes that point at each.
func neighborsOf(s *Set, i int) map[int]int {
	counts := make(map[int]int)
	for _, ch := range s.Parts[i].Changes {
		if ch.AdjacentPart != i {
			counts[ch.AdjacentPart]++
		}
	}
	return counts
}

// mergeMiddles absorbs every Middle part into the adjacent part with the
// largest SumLengths.
func mergeMiddles(s *Set) {
	for {
		idx := lo.IndexOf(lo.Map(s.Parts, func(p *Part, _ int) Type { return p.Type }), Middle)
		if idx == -1 {
			return
		}
		neighbors := lo.Keys(neighborsOf(s, idx))
		if len(neighbors) == 0 {
			// isolated middle part with no neighbors recorded; drop it
			// rather than loop forever.
			removePart(s, idx)
			continue
		}
		best := lo.MaxBy(neighbors, func(a, b int) bool { return s.Parts[a].SumLengths > s.Parts[b].SumLengths })
		mergeInto(s, idx, best)
	}
}

// coalesceSameType repeatedly merges any two adjacent parts that ended
// up with the same Type, which mergeMiddles can produce.
func coalesceSameType(s *Set) {
	for {
		merged := false
		for i, p := range s.Parts {
			for n := range neighborsOf(s, i) {
				if n != i && s.Parts[n].Type == p.Type {
					mergeInto(s, i, n)
					merged = true
					break
				}
			}
			if merged {
				break
			}
		}
		if !merged {
			return
		}
	}
}

// mergeShortParts repeatedly finds the part with the smallest internal
// diameter below minPartLength and merges it into its nearest neighbor
// by that same internal-distance metric, until no part qualifies.
func mergeShortParts(s *Set, minPartLength float64) {
	for {
		idx, diameter := -1, math.Inf(1)
		for i := range s.Parts {
			d := internalDiameter(s.Parts[i])
			if d < minPartLength && d < diameter {
				idx, diameter = i, d
			}
		}
		if idx == -1 {
			return
		}
		neighbors := lo.Keys(neighborsOf(s, idx))
		if len(neighbors) == 0 {
			removePart(s, idx)
			continue
		}
		best := lo.MinBy(neighbors, func(a, b int) bool {
			return internalDistanceBetweenParts(s.Parts[idx], s.Parts[a]) < internalDistanceBetweenParts(s.Parts[idx], s.Parts[b])
		})
		mergeInto(s, idx, best)
	}
}

// mergeInto absorbs part src into part dst: dst keeps its own Type,
// gains src's length and segments, and every Change pointing at src from
// elsewhere is retargeted to dst. src is then removed.
func mergeInto(s *Set, src, dst int) {
	if src == dst {
		return
	}
	d := s.Parts[dst]
	sp := s.Parts[src]
	d.SumLengths += sp.SumLengths
	d.segments = append(d.segments, sp.segments...)
	for _, ch := range sp.Changes {
		if ch.AdjacentPart != dst {
			d.Changes = append(d.Changes, ch)
		}
	}
	removePart(s, src)
}

// removePart deletes part i and fixes up every remaining Change index.
func removePart(s *Set, i int) {
	s.Parts = append(s.Parts[:i], s.Parts[i+1:]...)
	for _, p := range s.Parts {
		kept := p.Changes[:0]
		for _, ch := range p.Changes {
			switch {
			case ch.AdjacentPart == i:
				continue // dangling edge into the removed part, drop it
			case ch.AdjacentPart > i:
				ch.AdjacentPart--
			}
			kept = append(kept, ch)
		}
		p.Changes = kept
	}
}

// internalDiameter approximates the longest distance spanned by a part,
// walking only that part's own Segments. It is the larger of two
// quantities: the longest shortest-path between any two of the part's
// Changes, and the longest shortest-path from any interior node (a real
// graph point that is not itself a Change, e.g. a dead-end skeleton
// whisker that never crossed the hysteresis threshold) to its nearest
// Change. A part with fewer than two Changes (e.g. a whole closed loop
// with no neighbor) is treated as having infinite diameter so it is
// never mistaken for short.
func internalDiameter(p *Part) float64 {
	if len(p.Changes) < 2 {
		return math.Inf(1)
	}
	if len(p.Changes) == 2 {
		return twoChangeDistance(p)
	}
	g := buildInternalGraph(p)
	best := 0.0
	nearestChange := make(map[internalNode]float64)
	for i := range p.Changes {
		dist := dijkstraFrom(g, terminalNode(i))
		for j := range p.Changes {
			if j != i && dist[terminalNode(j)] > best {
				best = dist[terminalNode(j)]
			}
		}
		for n, d := range dist {
			if n.terminal >= 0 {
				continue
			}
			if cur, ok := nearestChange[n]; !ok || d < cur {
				nearestChange[n] = d
			}
		}
	}
	for _, d := range nearestChange {
		if d > best {
			best = d
		}
	}
	return best
}

// internalDistanceBetweenParts reports 0 when a and b each hold a Change
// on the same edge index, or the smaller of the two parts' SumLengths as
// a fallback distance otherwise.
func internalDistanceBetweenParts(a, b *Part) float64 {
	for _, ca := range a.Changes {
		for _, cb := range b.Changes {
			if ca.Position.Edge == cb.Position.Edge {
				return 0
			}
		}
	}
	return math.Min(a.SumLengths, b.SumLengths)
}

// twoChangeDistance handles the special case of a part with exactly two
// Changes on the same single edge: its internal length between them is
// the residual interval of that edge not covered by either change's own
// side.
func twoChangeDistance(p *Part) float64 {
	if len(p.segments) == 0 {
		return 0
	}
	a, b := p.Changes[0], p.Changes[1]
	if a.Position.Edge == b.Position.Edge {
		r1, r2 := a.Position.Ratio, b.Position.Ratio
		if r1 > r2 {
			r1, r2 = r2, r1
		}
		var fullLength float64
		for _, seg := range p.segments {
			if seg.Edge == a.Position.Edge {
				fullLength += seg.Length / (seg.RatioEnd - seg.RatioStart)
			}
		}
		return fullLength * (r2 - r1)
	}
	return p.SumLengths
}

// internalNode identifies a point reached while walking a part's own
// Segments: either a real graph endpoint / threshold-crossing point,
// keyed by its edge and ratio (rounded so the two segments meeting at
// the same Change resolve to the same key), or a virtual terminal node
// for one of the part's Changes.
type internalNode struct {
	edge     voronoi.EdgeIndex
	ratio    float64
	terminal int // -1 for a real point; otherwise 1+index into p.Changes
}

func nodeKey(e voronoi.EdgeIndex, ratio float64) internalNode {
	return internalNode{edge: e, ratio: math.Round(ratio*1e9) / 1e9, terminal: -1}
}

func terminalNode(changeIdx int) internalNode {
	return internalNode{terminal: changeIdx + 1}
}

type internalGraph struct {
	adj map[internalNode]map[internalNode]float64
}

func buildInternalGraph(p *Part) *internalGraph {
	g := &internalGraph{adj: make(map[internalNode]map[internalNode]float64)}
	add := func(a, b internalNode, w float64) {
		if g.adj[a] == nil {
			g.adj[a] = make(map[internalNode]float64)
		}
		if g.adj[b] == nil {
			g.adj[b] = make(map[internalNode]float64)
		}
		if cur, ok := g.adj[a][b]; !ok || w < cur {
			g.adj[a][b] = w
			g.adj[b][a] = w
		}
	}
	for _, seg := range p.segments {
		from := nodeKey(seg.Edge, seg.RatioStart)
		to := nodeKey(seg.Edge, seg.RatioEnd)
		add(from, to, seg.Length)
	}
	for i, ch := range p.Changes {
		edgeNode := nodeKey(ch.Position.Edge, ch.Position.Ratio)
		add(terminalNode(i), edgeNode, 0)
	}
	return g
}

func dijkstraFrom(g *internalGraph, src internalNode) map[internalNode]float64 {
	dist, _ := dijkstraPathFrom(g, src)
	return dist
}

// dijkstraPathFrom is dijkstraFrom plus a predecessor map, so callers
// that need the actual shortest path (not just its length) can walk it
// back from any reached node to src.
func dijkstraPathFrom(g *internalGraph, src internalNode) (map[internalNode]float64, map[internalNode]internalNode) {
	dist := map[internalNode]float64{src: 0}
	prev := make(map[internalNode]internalNode)
	visited := make(map[internalNode]bool)
	for {
		var u internalNode
		best := math.Inf(1)
		found := false
		for n, d := range dist {
			if !visited[n] && d < best {
				u, best, found = n, d, true
			}
		}
		if !found {
			break
		}
		visited[u] = true
		for v, w := range g.adj[u] {
			if nd := dist[u] + w; !visited[v] {
				if cur, ok := dist[v]; !ok || nd < cur {
					dist[v] = nd
					prev[v] = u
				}
			}
		}
	}
	return dist, prev
}

// longestInternalPath finds the pair of Changes farthest apart along
// p's internal sub-graph and returns the full node sequence between
// them plus that distance. It returns a nil path when p has fewer than
// two Changes.
func longestInternalPath(p *Part) ([]internalNode, float64) {
	if len(p.Changes) < 2 {
		return nil, 0
	}
	g := buildInternalGraph(p)
	var bestPath []internalNode
	bestLen := 0.0
	for i := range p.Changes {
		dist, prev := dijkstraPathFrom(g, terminalNode(i))
		for j := range p.Changes {
			if j == i {
				continue
			}
			if d, ok := dist[terminalNode(j)]; ok && d > bestLen {
				bestLen = d
				bestPath = reconstructPath(prev, terminalNode(i), terminalNode(j))
			}
		}
	}
	return bestPath, bestLen
}

func reconstructPath(prev map[internalNode]internalNode, src, dst internalNode) []internalNode {
	if src == dst {
		return []internalNode{src}
	}
	var rev []internalNode
	for cur := dst; ; {
		rev = append(rev, cur)
		if cur == src {
			break
		}
		p, ok := prev[cur]
		if !ok {
			return nil
		}
		cur = p
	}
	path := make([]internalNode, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

// positionAtInternalDistance walks path and returns the graph Position
// reached after travelling target along it. When the two nodes
// straddling that distance share a real edge the result interpolates
// between them; otherwise it snaps to whichever of the two is a real
// point (a Change terminal carries no Position of its own).
func positionAtInternalDistance(path []internalNode, g *internalGraph, target float64) voronoi.Position {
	if len(path) == 0 {
		return voronoi.Position{}
	}
	cum := 0.0
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		w := g.adj[a][b]
		if cum+w >= target || i == len(path)-2 {
			if a.terminal < 0 && b.terminal < 0 && a.edge == b.edge && w > 0 {
				t := (target - cum) / w
				return voronoi.Position{Edge: a.edge, Ratio: clampRatio(a.ratio + (b.ratio-a.ratio)*t)}
			}
			if b.terminal < 0 {
				return voronoi.Position{Edge: b.edge, Ratio: b.ratio}
			}
			if a.terminal < 0 {
				return voronoi.Position{Edge: a.edge, Ratio: a.ratio}
			}
		}
		cum += w
	}
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].terminal < 0 {
			return voronoi.Position{Edge: path[i].edge, Ratio: path[i].ratio}
		}
	}
	return voronoi.Position{}
}

func clampRatio(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
