package sampler

import (
	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/support"
)

// Peninsula is a sub-region of a layer part cantilevered beyond what the
// layer below can hold: its outline plus, per boundary line, whether
// that line is a real overhanging edge or one shared with the part it
// grew from.
type Peninsula struct {
	Outline   geom.ExPolygon
	IsOutline [][]bool // per ring, per line: true = real overhang edge
}

// SamplePeninsula samples a Peninsula's real overhang edges with the
// thick-part outline sampler, restricted to runs built from contiguous
// is_outline==true lines, plus the usual triangular-grid interior
// sampling.
func SamplePeninsula(p Peninsula, ops geom.BooleanOps, cfg support.SampleConfig) ([]*support.IslandPoint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	insetResults := ops.Offset(p.Outline, -cfg.MinimalDistanceFromOutline)
	inset, ok := geom.LargestByArea(insetResults)
	if !ok {
		return nil, nil
	}

	var out []*support.IslandPoint
	rings := append([]geom.Polygon{inset.Contour}, inset.Holes...)
	for ri, ring := range rings {
		if ri >= len(p.IsOutline) {
			continue
		}
		for _, run := range outlineRunsForRing(ring, p.IsOutline[ri]) {
			out = append(out, SampleOutline(run, cfg.ThickOutlineMaxDistance, cfg.MaxAlignDistance)...)
		}
	}
	out = append(out, SampleInner(&inset, cfg.ThickInnerMaxDistance)...)
	return out, nil
}
