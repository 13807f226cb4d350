package layer

import (
	"sort"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/dhconnelly/rtreego"
)

// rtree node/child fan-out, chosen the way rtreego's own examples size a
// small in-memory index.
const (
	treeMinChildren = 25
	treeMaxChildren = 50
	pointEpsilon    = 1e-6
)

// spatialPoint adapts one LayerSupportPoints index into rtreego.Spatial
// via a degenerate, epsilon-sided bounding box around its 2D position.
type spatialPoint struct {
	index int
	at    geom.Point
}

func (s spatialPoint) Bounds() rtreego.Rect {
	x, y := s.at.F64()
	rect, _ := rtreego.NewRect(rtreego.Point{x - pointEpsilon/2, y - pointEpsilon/2}, []float64{pointEpsilon, pointEpsilon})
	return rect
}

// NearPoints is a 2D spatial index over indices into a shared
// LayerSupportPoint backing vector. The rtree answers bounding-box
// queries; the membership map gives cheap, exact enumeration/removal-
// by-index, which rtreego's own API does not expose directly.
type NearPoints struct {
	backing *[]*LayerSupportPoint // shared with every part's index; grows over the build
	members map[int]bool
	tree    *rtreego.Rtree
}

// NewNearPoints builds an empty index over the given, still-growing
// backing vector (held by pointer so indices inserted before a later
// append stay valid: see point(index)).
func NewNearPoints(backing *[]*LayerSupportPoint) *NearPoints {
	return &NearPoints{
		backing: backing,
		members: make(map[int]bool),
		tree:    rtreego.NewTree(2, treeMinChildren, treeMaxChildren),
	}
}

func (n *NearPoints) point(index int) *LayerSupportPoint {
	return (*n.backing)[index]
}

// Insert adds index, a no-op if it is already a member.
func (n *NearPoints) Insert(index int) {
	if n.members[index] {
		return
	}
	n.members[index] = true
	n.tree.Insert(spatialPoint{index: index, at: n.point(index).PositionOnLayer})
}

// Remove drops index, a no-op if it is not a member.
func (n *NearPoints) Remove(index int) {
	if !n.members[index] {
		return
	}
	delete(n.members, index)
	n.tree.Delete(spatialPoint{index: index, at: n.point(index).PositionOnLayer})
}

// Clone returns a structurally independent copy sharing the same backing
// vector, used when a parent part feeds multiple children and each
// needs its own index rather than sharing one.
func (n *NearPoints) Clone() *NearPoints {
	clone := NewNearPoints(n.backing)
	for idx := range n.members {
		clone.Insert(idx)
	}
	return clone
}

// Merge folds other's members into n, deduplicating by index.
func (n *NearPoints) Merge(other *NearPoints) {
	for idx := range other.members {
		n.Insert(idx)
	}
}

// RadiusQuery returns every member index within radius of center whose
// point satisfies keep (nil keeps everything in range).
func (n *NearPoints) RadiusQuery(center geom.Point, radius float64, keep func(*LayerSupportPoint) bool) []int {
	cx, cy := center.F64()
	bb, err := rtreego.NewRect(rtreego.Point{cx - radius, cy - radius}, []float64{2 * radius, 2 * radius})
	if err != nil {
		return nil
	}
	var out []int
	for _, obj := range n.tree.SearchIntersect(bb) {
		sp := obj.(spatialPoint)
		sup := n.point(sp.index)
		if sup.PositionOnLayer.DistanceTo(center) > radius {
			continue
		}
		if keep != nil && !keep(sup) {
			continue
		}
		out = append(out, sp.index)
	}
	sort.Ints(out)
	return out
}

// RemoveOutside deletes every member whose point does not lie inside
// poly. Callers pass the current part's outline already expanded by
// removing_delta, so a point just outside the strict boundary still
// survives.
func (n *NearPoints) RemoveOutside(poly geom.ExPolygon) {
	for idx := range n.members {
		if !poly.Contains(n.point(idx).PositionOnLayer) {
			n.Remove(idx)
		}
	}
}

// Indices returns every member index, sorted for determinism.
func (n *NearPoints) Indices() []int {
	out := make([]int, 0, len(n.members))
	for idx := range n.members {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Len reports the number of members.
func (n *NearPoints) Len() int { return len(n.members) }
