package geom

// ExPolygon is one outer contour plus zero or more hole contours. Holes
// are disjoint and lie strictly inside the contour.
type ExPolygon struct {
	Contour Polygon
	Holes   []Polygon
}

// NewExPolygon builds an ExPolygon from a contour and holes, normalizing
// winding (CCW contour, CW holes) in case the caller didn't.
func NewExPolygon(contour Polygon, holes []Polygon) ExPolygon {
	if !contour.IsCCW() {
		contour = contour.Reversed()
	}
	fixedHoles := make([]Polygon, len(holes))
	for i, h := range holes {
		if h.IsCCW() {
			h = h.Reversed()
		}
		fixedHoles[i] = h
	}
	return ExPolygon{Contour: contour, Holes: fixedHoles}
}

// Contains reports whether p is inside the contour and outside every hole.
func (e ExPolygon) Contains(p Point) bool {
	if !e.Contour.Contains(p) {
		return false
	}
	for _, h := range e.Holes {
		if h.Contains(p) {
			return false
		}
	}
	return true
}

// Area returns the contour area minus the area of all holes.
func (e ExPolygon) Area() float64 {
	area := e.Contour.Area()
	for _, h := range e.Holes {
		area -= h.Area()
	}
	return area
}

// BoundingBox returns the bounding box of the outer contour (holes are
// strictly interior, so they never extend it).
func (e ExPolygon) BoundingBox() BoundingBox {
	return e.Contour.BoundingBox()
}

// AllLines returns every boundary edge: contour edges first, then each
// hole's edges in order. Used by algorithms (width computation, field
// construction) that need a flat, source-index-addressable edge list.
func (e ExPolygon) AllLines() []Line {
	lines := e.Contour.Lines()
	for _, h := range e.Holes {
		lines = append(lines, h.Lines()...)
	}
	return lines
}

// DistanceToBoundary returns the minimum distance from p to any edge of
// the contour or any hole.
func (e ExPolygon) DistanceToBoundary(p Point) float64 {
	best := e.Contour.DistanceToBoundary(p)
	for _, h := range e.Holes {
		if d := h.DistanceToBoundary(p); d < best {
			best = d
		}
	}
	return best
}

// LargestByArea returns the ExPolygon with the greatest Area() among a
// slice, used after simplification when several disjoint loops survive
// but only the dominant one is kept.
func LargestByArea(exs []ExPolygon) (ExPolygon, bool) {
	if len(exs) == 0 {
		return ExPolygon{}, false
	}
	best := exs[0]
	bestArea := best.Area()
	for _, e := range exs[1:] {
		if a := e.Area(); a > bestArea {
			best, bestArea = e, a
		}
	}
	return best, true
}
