package layer

import (
	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/support"
)

// LayerSupportPoint is a support point plus the layer-tracking fields
// needed to grow it across layers: its 2D projection, current horizontal
// reach, progress through the radius curve, and a 2D hint for angled
// tips.
type LayerSupportPoint struct {
	Point           *support.IslandPoint
	PositionOnLayer geom.Point
	CurrentRadius   float64
	RadiusCurveIdx  int
	DirectionToMass geom.Point
	OriginZ         float64
}

// AdvanceRadius walks radius_curve_index forward while the next sample's
// z-offset is still below z-p.OriginZ, then interpolates within the
// current segment. Callers call this once per point per layer, in
// ascending z.
func (p *LayerSupportPoint) AdvanceRadius(z float64, cfg GeneratorConfig) {
	dz := z - p.OriginZ
	curve := cfg.SupportCurve
	for p.RadiusCurveIdx < len(curve)-1 && curve[p.RadiusCurveIdx+1].ZOffset <= dz {
		p.RadiusCurveIdx++
	}
	next := cfg.RadiusAt(dz)
	if next > p.CurrentRadius {
		p.CurrentRadius = next
	}
}

// Covers reports whether this point's current circular coverage contains p.
func (sp *LayerSupportPoint) Covers(p geom.Point) bool {
	return sp.PositionOnLayer.DistanceTo(p) <= sp.CurrentRadius
}
