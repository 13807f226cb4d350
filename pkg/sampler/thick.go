package sampler

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/partition"
	"github.com/chazu/slasupport/pkg/support"
	"github.com/chazu/slasupport/pkg/voronoi"
)

// flatLines is the island's outline (contour then holes) as one flat,
// globally indexed line list, matching the flattened line list the
// Voronoi graph's source indices point into.
type flatLines struct {
	lines   []geom.Line
	next    []int // global index of the following line in the same sub-polygon
	polygon []int // 0 = contour, i+1 = Holes[i]
}

func flattenIsland(island geom.ExPolygon) flatLines {
	var fl flatLines
	add := func(poly geom.Polygon, polyIdx int) {
		n := poly.Len()
		start := len(fl.lines)
		for i := 0; i < n; i++ {
			fl.lines = append(fl.lines, poly.Line(i))
			fl.polygon = append(fl.polygon, polyIdx)
		}
		for i := 0; i < n; i++ {
			fl.next = append(fl.next, start+(i+1)%n)
		}
	}
	add(island.Contour, 0)
	for i, h := range island.Holes {
		add(h, i+1)
	}
	return fl
}

// Field is the reconstructed border polygon of a thick part: the island
// outline with every thin exit replaced by a chord, plus an inset copy
// used for border sampling.
type Field struct {
	Border      geom.ExPolygon
	IsOutline   [][]bool // per ring (contour first, then holes), per line
	Inset       geom.ExPolygon
	InsetByBorder map[int]int // border (ring,line) flattened index -> inset flattened index
}

type wideTinyChange struct {
	newB, nextNewA geom.Point
	nextLineIndex  int
	t              float64 // position along the "begins on" line, for ordering
}

// participatingLines collects every source-line index touched by either
// side of any edge belonging to the part.
func participatingLines(g *voronoi.Graph, p *partition.Part) []int {
	seen := map[int]bool{}
	for _, seg := range p.Segments() {
		e := &g.Edges[seg.Edge]
		if e.LeftSourceIndex >= 0 {
			seen[e.LeftSourceIndex] = true
		}
		if e.RightSourceIndex >= 0 {
			seen[e.RightSourceIndex] = true
		}
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// BuildField reconstructs a thick part's border polygon: for each Change
// on the part's boundary, project the Voronoi point onto its
// two generating source lines to get the chord that replaces the thin
// exit, then walk the flattened line list from the smallest
// participating index, jumping across chords as they're encountered.
func BuildField(island geom.ExPolygon, g *voronoi.Graph, p *partition.Part, ops geom.BooleanOps, minimalDistanceFromOutline float64) *Field {
	fl := flattenIsland(island)
	lines := participatingLines(g, p)
	if len(lines) == 0 {
		return nil
	}

	changesByLine := map[int][]wideTinyChange{}
	for _, ch := range p.Changes {
		e := &g.Edges[ch.Position.Edge]
		if e.LeftSourceIndex < 0 || e.RightSourceIndex < 0 {
			continue
		}
		voronoiPt := g.Point(ch.Position)
		l1, l2 := e.LeftSourceIndex, e.RightSourceIndex
		p1 := fl.lines[l1].ClosestPointOnSegment(voronoiPt)
		p2 := fl.lines[l2].ClosestPointOnSegment(voronoiPt)
		_, t1 := fl.lines[l1].Foot(voronoiPt)
		_, t2 := fl.lines[l2].Foot(voronoiPt)
		changesByLine[l1] = append(changesByLine[l1], wideTinyChange{newB: p1, nextNewA: p2, nextLineIndex: l2, t: t1})
		changesByLine[l2] = append(changesByLine[l2], wideTinyChange{newB: p2, nextNewA: p1, nextLineIndex: l1, t: t2})
	}
	for li := range changesByLine {
		sort.Slice(changesByLine[li], func(i, j int) bool { return changesByLine[li][i].t < changesByLine[li][j].t })
	}

	visited := make([]bool, len(fl.lines))
	outerPts, outerFlags := walkField(fl, lines[0], changesByLine, visited)
	if len(outerPts) < 3 {
		return nil
	}
	outer := geom.NewPolygon(outerPts)

	var holes []geom.Polygon
	var holeFlags [][]bool
	for _, li := range lines {
		if visited[li] {
			continue
		}
		pts, flags := walkField(fl, li, changesByLine, visited)
		if len(pts) >= 3 {
			holes = append(holes, geom.NewPolygon(pts))
			holeFlags = append(holeFlags, flags)
		}
	}

	// A hole can end up larger than the outer contour when the part
	// encloses the island's outside; swap them if so.
	if len(holes) > 0 {
		biggest := 0
		for i := 1; i < len(holes); i++ {
			if holes[i].Area() > holes[biggest].Area() {
				biggest = i
			}
		}
		if holes[biggest].Area() > outer.Area() {
			outer, holes[biggest] = holes[biggest], outer
			outerFlags, holeFlags[biggest] = holeFlags[biggest], outerFlags
		}
	}

	border := geom.NewExPolygon(outer, holes)
	isOutline := append([][]bool{outerFlags}, holeFlags...)

	insetResults := ops.Offset(border, -minimalDistanceFromOutline)
	var inset geom.ExPolygon
	if len(insetResults) > 0 {
		inset = insetResults[0]
	} else {
		inset = border
	}

	return &Field{
		Border:        border,
		IsOutline:     isOutline,
		Inset:         inset,
		InsetByBorder: matchBorderToInset(border, inset, minimalDistanceFromOutline),
	}
}

// matchBorderToInset builds the border-line -> inset-line correspondence:
// matched by direction (within 1e-4 rad) and perpendicular distance
// (within 20 units of the offset amount), both flattened in (ring, line)
// order with the contour first.
func matchBorderToInset(border, inset geom.ExPolygon, offset float64) map[int]int {
	borderRings := append([]geom.Polygon{border.Contour}, border.Holes...)
	insetRings := append([]geom.Polygon{inset.Contour}, inset.Holes...)

	var insetLines []geom.Line
	var insetFlatIdx []int
	flat := 0
	for _, ring := range insetRings {
		for i := 0; i < ring.Len(); i++ {
			insetLines = append(insetLines, ring.Line(i))
			insetFlatIdx = append(insetFlatIdx, flat)
			flat++
		}
	}

	out := map[int]int{}
	borderFlat := 0
	for _, ring := range borderRings {
		for i := 0; i < ring.Len(); i++ {
			bl := ring.Line(i)
			for j, il := range insetLines {
				if geom.AngleBetween(bl, il) > 1e-4 {
					continue
				}
				mid := bl.PointAt(0.5)
				if math.Abs(il.DistanceToPoint(mid)-offset) > 20 {
					continue
				}
				out[borderFlat] = insetFlatIdx[j]
				break
			}
			borderFlat++
		}
	}
	return out
}

// walkField performs the forward walk starting at startLine, jumping
// across any chord recorded in changesByLine, and
// returns the resulting loop's vertices with a parallel is-outline flag
// per emitted vertex-to-next-vertex edge. The loop guard bounds the walk
// to a small multiple of the line count so a cycle of chords can never
// spin forever.
func walkField(fl flatLines, startLine int, changesByLine map[int][]wideTinyChange, visited []bool) ([]geom.Point, []bool) {
	var pts []geom.Point
	var flags []bool
	cur := startLine
	first := true
	guard := 4 * (len(fl.lines) + 1)
	for ; guard > 0; guard-- {
		if !first && cur == startLine {
			break
		}
		first = false
		if visited[cur] {
			break
		}
		visited[cur] = true

		if changes := changesByLine[cur]; len(changes) > 0 {
			ch := changes[0]
			pts = append(pts, ch.newB, ch.nextNewA)
			flags = append(flags, true, false)
			cur = ch.nextLineIndex
			continue
		}
		pts = append(pts, fl.lines[cur].B)
		flags = append(flags, true)
		cur = fl.next[cur]
	}
	return pts, flags
}

// OutlineRuns decomposes the Field's inset border into maximal runs of
// outline (non-chord) lines, one per contiguous run. A ring with no
// chord at all (isOutline all true) yields a single Closed run.
func (f *Field) OutlineRuns() []*support.OutlineRun {
	var runs []*support.OutlineRun
	rings := append([]geom.Polygon{f.Inset.Contour}, f.Inset.Holes...)
	for ri, ring := range rings {
		if ri >= len(f.IsOutline) {
			continue
		}
		runs = append(runs, outlineRunsForRing(ring, f.IsOutline[ri])...)
	}
	return runs
}

// outlineRunsForRing decomposes one ring into maximal contiguous runs of
// flags[i]==true lines, wrapping around if the whole ring qualifies.
// Shared by Field.OutlineRuns (thick-part sampling) and peninsula
// sampling, which decomposes a region's real-overhang edges the same
// way.
func outlineRunsForRing(ring geom.Polygon, flags []bool) []*support.OutlineRun {
	n := ring.Len()
	if n == 0 || len(flags) != n {
		return nil
	}
	if lo.EveryBy(flags, func(v bool) bool { return v }) {
		lines := make([]int, n)
		for i := range lines {
			lines[i] = i
		}
		return []*support.OutlineRun{{Polygon: ring, Lines: lines, Closed: true}}
	}
	start := -1
	for i := 0; i < n; i++ {
		if flags[i] && !flags[(i-1+n)%n] {
			start = i
			break
		}
	}
	if start == -1 {
		return nil
	}
	var runs []*support.OutlineRun
	var cur []int
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if flags[idx] {
			cur = append(cur, idx)
		} else if len(cur) > 0 {
			runs = append(runs, &support.OutlineRun{Polygon: ring, Lines: cur})
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, &support.OutlineRun{Polygon: ring, Lines: cur})
	}
	return runs
}

func runLength(run *support.OutlineRun) float64 {
	total := 0.0
	for _, li := range run.Lines {
		total += run.Polygon.Line(li).Length()
	}
	return total
}

// SampleOutline places a SupportOutlineIslandPoint every thickOutlineMaxDistance
// along each run, starting half the gap in so the run is centered.
func SampleOutline(run *support.OutlineRun, thickOutlineMaxDistance, maxAlignDistance float64) []*support.IslandPoint {
	total := runLength(run)
	if total <= 0 {
		return nil
	}
	count := int(math.Ceil(total / thickOutlineMaxDistance))
	if count < 1 {
		count = 1
	}
	gap := total / float64(count)
	var out []*support.IslandPoint
	dist := gap / 2
	for dist < total {
		lineIdx, ratio := locateAlongRun(run, dist)
		out = append(out, support.NewOutlinePoint(support.KindThickPartOutline, run, lineIdx, ratio, maxAlignDistance))
		dist += gap
	}
	return out
}

func locateAlongRun(run *support.OutlineRun, dist float64) (int, float64) {
	remaining := dist
	for _, li := range run.Lines {
		length := run.Polygon.Line(li).Length()
		if remaining <= length || length == 0 {
			if length == 0 {
				return li, 0
			}
			return li, clamp01(remaining / length)
		}
		remaining -= length
	}
	last := run.Lines[len(run.Lines)-1]
	return last, 1
}

// SampleInner rotates the inset polygon so the vector from its contour
// centroid to its farthest vertex aligns with the x-axis, lays an
// equilateral triangular grid of the given spacing over its bounding
// box, keeps the grid points that land inside, and rotates the result
// back — the grid itself is always axis-aligned, so this keeps the
// sampling deterministic regardless of the input polygon's orientation.
func SampleInner(inset *geom.ExPolygon, spacing float64) []*support.IslandPoint {
	centroid := inset.Contour.Centroid()
	farIdx := inset.Contour.FarthestVertexFrom(centroid)
	far := inset.Contour.At(farIdx)
	angle := geom.Ln(centroid, far).Angle()

	rotated := geom.NewExPolygon(inset.Contour.Rotated(-angle), rotateHoles(inset.Holes, -angle))
	bbox := rotated.BoundingBox()

	height := spacing * 0.8660254037844386 // spacing * sqrt(3)/2
	var out []*support.IslandPoint
	row := 0
	for y := float64(bbox.Min.Y); y <= float64(bbox.Max.Y); y += height {
		xOffset := 0.0
		if row%2 == 1 {
			xOffset = spacing / 2
		}
		for x := float64(bbox.Min.X) + xOffset; x <= float64(bbox.Max.X); x += spacing {
			pt := geom.FromF64(x, y)
			if rotated.Contains(pt) {
				back := pt.Rotate(angle)
				out = append(out, support.NewInnerPoint(support.KindThickPartInner, inset, back))
			}
		}
		row++
	}
	return out
}

func rotateHoles(holes []geom.Polygon, angle float64) []geom.Polygon {
	out := make([]geom.Polygon, len(holes))
	for i, h := range holes {
		out[i] = h.Rotated(angle)
	}
	return out
}

// SampleThick runs the full thick-part pipeline: build the field, sample
// its outline runs, and sample its inset interior.
func SampleThick(island geom.ExPolygon, g *voronoi.Graph, p *partition.Part, ops geom.BooleanOps, minimalDistanceFromOutline, thickOutlineMaxDistance, thickInnerMaxDistance, maxAlignDistance float64) []*support.IslandPoint {
	field := BuildField(island, g, p, ops, minimalDistanceFromOutline)
	if field == nil {
		return nil
	}
	var out []*support.IslandPoint
	for _, run := range field.OutlineRuns() {
		out = append(out, SampleOutline(run, thickOutlineMaxDistance, maxAlignDistance)...)
	}
	out = append(out, SampleInner(&field.Inset, thickInnerMaxDistance)...)
	return out
}
