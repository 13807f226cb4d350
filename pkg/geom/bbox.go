package geom

// BoundingBox is an axis-aligned bounding box.
type BoundingBox struct {
	Min, Max Point
}

// BoundingBoxOf returns the bounding box enclosing all points. The zero
// value is returned for an empty slice; callers should check Valid().
func BoundingBoxOf(pts []Point) BoundingBox {
	if len(pts) == 0 {
		return BoundingBox{}
	}
	bb := BoundingBox{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		bb = bb.ExpandPoint(p)
	}
	return bb
}

// Valid reports whether the box contains at least one point's worth of
// extent (Min <= Max on both axes).
func (b BoundingBox) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y
}

// ExpandPoint returns a box extended to include p.
func (b BoundingBox) ExpandPoint(p Point) BoundingBox {
	out := b
	if p.X < out.Min.X {
		out.Min.X = p.X
	}
	if p.Y < out.Min.Y {
		out.Min.Y = p.Y
	}
	if p.X > out.Max.X {
		out.Max.X = p.X
	}
	if p.Y > out.Max.Y {
		out.Max.Y = p.Y
	}
	return out
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return b.ExpandPoint(o.Min).ExpandPoint(o.Max)
}

// Intersects reports whether two boxes overlap (touching counts).
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

// Width returns the box's extent along X.
func (b BoundingBox) Width() Coord {
	return b.Max.X - b.Min.X
}

// Height returns the box's extent along Y.
func (b BoundingBox) Height() Coord {
	return b.Max.Y - b.Min.Y
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Expanded returns a copy of the box grown by delta on every side.
func (b BoundingBox) Expanded(delta Coord) BoundingBox {
	return BoundingBox{
		Min: Point{X: b.Min.X - delta, Y: b.Min.Y - delta},
		Max: Point{X: b.Max.X + delta, Y: b.Max.Y + delta},
	}
}

// ContainsPoint reports whether p lies within the box (inclusive).
func (b BoundingBox) ContainsPoint(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
