package partition

import (
	"sort"

	"github.com/chazu/slasupport/pkg/voronoi"
)

// Thresholds are the hysteresis bounds; ThickMinWidth must be strictly
// less than ThinMaxWidth.
type Thresholds struct {
	ThickMinWidth float64
	ThinMaxWidth  float64
}

func (t Thresholds) categoryAt(width float64) Type {
	if width <= t.ThickMinWidth {
		return Thin
	}
	if width >= t.ThinMaxWidth {
		return Thick
	}
	return Middle
}

// classifier runs a depth-first classification walk over one island's
// Voronoi graph, splitting it into thin/middle/thick Parts by width.
type classifier struct {
	g          *voronoi.Graph
	thresholds Thresholds
	visited    map[voronoi.EdgeIndex]bool // canonical (min(e,twin)) edges already walked
	owner      map[voronoi.EdgeIndex]int  // canonical edge -> part index that walked it
	parts      []*Part
	merges     [][2]int
}

// Classify partitions the graph reachable from start into thin/middle/
// thick Parts. start should be a contour-entry node, so the walk begins
// in a Thin part (min_width is 0 at the contour).
func Classify(g *voronoi.Graph, start voronoi.NodeIndex, thresholds Thresholds) *Set {
	c := &classifier{
		g:          g,
		thresholds: thresholds,
		visited:    make(map[voronoi.EdgeIndex]bool),
		owner:      make(map[voronoi.EdgeIndex]int),
	}
	root := c.newPart(Thin)
	c.walk(start, -1, root)
	c.applyLoopMerges()
	return &Set{Parts: c.parts}
}

func (c *classifier) newPart(t Type) int {
	c.parts = append(c.parts, &Part{Type: t})
	return len(c.parts) - 1
}

func (c *classifier) canonical(e voronoi.EdgeIndex) voronoi.EdgeIndex {
	twin := c.g.Twin(e)
	if e < twin {
		return e
	}
	return twin
}

func (c *classifier) walk(node voronoi.NodeIndex, incoming voronoi.EdgeIndex, currentPart int) {
	neighbors := append([]voronoi.EdgeIndex{}, c.g.Nodes[node].Neighbors...)
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })

	for _, ne := range neighbors {
		if incoming >= 0 && ne == c.g.Twin(incoming) {
			continue
		}
		canon := c.canonical(ne)
		if c.visited[canon] {
			if owner, ok := c.owner[canon]; ok && owner != currentPart {
				c.merges = append(c.merges, [2]int{currentPart, owner})
			}
			continue
		}
		c.visited[canon] = true
		c.owner[canon] = currentPart

		endPart := c.classifyEdge(ne, currentPart)
		c.walk(c.g.TargetOf(ne), ne, endPart)
	}
}

// classifyEdge walks the width function along edge e, splitting it at
// every analytic threshold crossing into Segments owned by successive
// Parts, and returns the index of the Part active at ratio=1 (the part
// the walk should continue in past the far node).
func (c *classifier) classifyEdge(e voronoi.EdgeIndex, currentPart int) int {
	boundaries := []float64{0}
	boundaries = append(boundaries, c.g.WidthCrossings(e, c.thresholds.ThickMinWidth)...)
	boundaries = append(boundaries, c.g.WidthCrossings(e, c.thresholds.ThinMaxWidth)...)
	boundaries = append(boundaries, 1)
	sort.Float64s(boundaries)
	boundaries = dedupeSorted(boundaries, 1e-9)

	active := currentPart
	for i := 0; i < len(boundaries)-1; i++ {
		segStart, segEnd := boundaries[i], boundaries[i+1]
		if segEnd-segStart < 1e-12 {
			continue
		}
		mid := (segStart + segEnd) / 2
		cat := c.thresholds.categoryAt(c.g.WidthAt(e, mid))

		if c.parts[active].Type != cat {
			next := c.newPart(cat)
			c.parts[active].Changes = append(c.parts[active].Changes, Change{
				Position:     voronoi.Position{Edge: e, Ratio: segStart},
				AdjacentPart: next,
			})
			c.parts[next].Changes = append(c.parts[next].Changes, Change{
				Position:     voronoi.Position{Edge: c.g.Twin(e), Ratio: 1 - segStart},
				AdjacentPart: active,
			})
			active = next
		}

		length := c.g.Edges[e].Length * (segEnd - segStart)
		c.parts[active].SumLengths += length
		c.parts[active].segments = append(c.parts[active].segments, Segment{
			Edge: e, RatioStart: segStart, RatioEnd: segEnd, Length: length,
		})
	}
	return active
}

// applyLoopMerges unions parts that the walk discovered were really the
// same region, reached a second time by closing a loop: when the walk
// revisits an edge from its twin, the two parts it currently straddles
// get merged.
func (c *classifier) applyLoopMerges() {
	parent := make([]int, len(c.parts))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for _, m := range c.merges {
		union(m[0], m[1])
	}

	merged := make(map[int]*Part)
	for i, p := range c.parts {
		root := find(i)
		if existing, ok := merged[root]; ok {
			existing.SumLengths += p.SumLengths
			existing.Changes = append(existing.Changes, p.Changes...)
			existing.segments = append(existing.segments, p.segments...)
		} else {
			merged[root] = p
		}
	}

	remap := make(map[int]int)
	var out []*Part
	for i := range c.parts {
		root := find(i)
		if _, done := remap[root]; !done {
			remap[root] = len(out)
			out = append(out, merged[root])
		}
	}
	for _, p := range out {
		for i := range p.Changes {
			p.Changes[i].AdjacentPart = remap[find(p.Changes[i].AdjacentPart)]
		}
	}
	c.parts = out
}

func dedupeSorted(xs []float64, tol float64) []float64 {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x-out[len(out)-1] > tol {
			out = append(out, x)
		}
	}
	return out
}
