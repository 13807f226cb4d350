package layer

import (
	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/sampler"
)

// LayerPart is one connected region of a slice: its outline, its
// bounding box, links to overlapping parts above/below, and the
// overhang samples and Peninsulas discovered while processing it.
type LayerPart struct {
	Outline geom.ExPolygon
	Bounds  geom.BoundingBox
	Height  float64

	Below []*LayerPart
	Above []*LayerPart

	Points *NearPoints

	OverhangSamples []geom.Point
	Peninsulas      []*Peninsula
}

// NewLayerPart wraps an outline at the given slice height.
func NewLayerPart(outline geom.ExPolygon, height float64) *LayerPart {
	return &LayerPart{Outline: outline, Bounds: outline.BoundingBox(), Height: height}
}

// Overlaps reports whether the two parts' bounding boxes intersect — the
// cheap pre-filter before the real boolean-intersection overlap test
// that decides whether they actually link.
func (p *LayerPart) Overlaps(other *LayerPart) bool {
	return p.Bounds.Intersects(other.Bounds)
}

// Peninsula is a sub-region of a LayerPart cantilevered beyond what the
// layer below can hold. It lives in pkg/sampler so SamplePeninsula — the
// uniform_support_peninsula entry point — can consume it without this
// package importing back into sampler's own callers.
type Peninsula = sampler.Peninsula
