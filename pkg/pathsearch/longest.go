package pathsearch

import "github.com/chazu/slasupport/pkg/voronoi"

// Path is a walk through a voronoi.Graph: an ordered list of edges,
// its total length, and — for the longest-path search — the combined
// length of every branch that was visited but not included in the walk.
type Path struct {
	Edges              []voronoi.EdgeIndex
	Length             float64
	SideBranchesLength float64
}

// Start returns the node the path begins at, or ok=false for an empty path.
func (p Path) Start(g *voronoi.Graph) (voronoi.NodeIndex, bool) {
	if len(p.Edges) == 0 {
		return 0, false
	}
	return g.NodeAt(p.Edges[0]), true
}

// Longest performs a deterministic DFS from start, exploring every
// non-backtracking neighbor at each node and keeping the longest walk
// found. Ties are broken by neighbor order (stable, because candidates
// are scanned in Graph.Nodes[n].Neighbors order and the first maximal
// candidate wins). The traversal never revisits an edge, which keeps it
// linear in graph size even when the graph contains cycles (Voronoi
// skeletons of multiply-connected islands can).
func Longest(g *voronoi.Graph, start voronoi.NodeIndex) Path {
	visited := make(map[voronoi.EdgeIndex]bool)
	edges, length, side := longestFrom(g, start, -1, visited)
	return Path{Edges: edges, Length: length, SideBranchesLength: side}
}

func longestFrom(g *voronoi.Graph, node voronoi.NodeIndex, incoming voronoi.EdgeIndex, visited map[voronoi.EdgeIndex]bool) ([]voronoi.EdgeIndex, float64, float64) {
	type candidate struct {
		edge       voronoi.EdgeIndex
		childEdges []voronoi.EdgeIndex
		total      float64
		childSide  float64
	}

	var candidates []candidate
	for _, ne := range g.Nodes[node].Neighbors {
		if incoming >= 0 && ne == g.Twin(incoming) {
			continue
		}
		if visited[ne] {
			continue
		}
		visited[ne] = true
		visited[g.Twin(ne)] = true

		childEdges, childLen, childSide := longestFrom(g, g.TargetOf(ne), ne, visited)
		candidates = append(candidates, candidate{
			edge:       ne,
			childEdges: childEdges,
			total:      g.Edges[ne].Length + childLen,
			childSide:  childSide,
		})
	}

	if len(candidates) == 0 {
		return nil, 0, 0
	}

	bestIdx := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].total > candidates[bestIdx].total {
			bestIdx = i
		}
	}

	var side float64
	for i, c := range candidates {
		if i == bestIdx {
			side += c.childSide
			continue
		}
		side += c.total + c.childSide
	}

	best := candidates[bestIdx]
	path := append([]voronoi.EdgeIndex{best.edge}, best.childEdges...)
	return path, best.total, side
}

// CreateMiddlePathPoint returns the Position at distance length/2 from
// the front of the path.
func CreateMiddlePathPoint(g *voronoi.Graph, p Path) (voronoi.Position, bool) {
	return PositionAtDistance(g, p, p.Length/2)
}

// PositionAtDistance walks the path from its front and returns the
// Position reached after travelling dist along it. dist is clamped to
// [0, p.Length].
func PositionAtDistance(g *voronoi.Graph, p Path, dist float64) (voronoi.Position, bool) {
	if len(p.Edges) == 0 {
		return voronoi.Position{}, false
	}
	if dist < 0 {
		dist = 0
	}
	if dist > p.Length {
		dist = p.Length
	}
	remaining := dist
	for _, e := range p.Edges {
		edgeLen := g.Edges[e].Length
		if remaining <= edgeLen || edgeLen == 0 {
			ratio := 0.0
			if edgeLen > 0 {
				ratio = remaining / edgeLen
			}
			return voronoi.Position{Edge: e, Ratio: ratio}, true
		}
		remaining -= edgeLen
	}
	last := p.Edges[len(p.Edges)-1]
	return voronoi.Position{Edge: last, Ratio: 1}, true
}

// MaxWidthAlong returns the largest MaxWidth among every edge on the
// path (used by the elongated-thin-island rule).
func MaxWidthAlong(g *voronoi.Graph, p Path) float64 {
	var max float64
	for _, e := range p.Edges {
		if w := g.Edges[e].MaxWidth; w > max {
			max = w
		}
	}
	return max
}
