package layer

import (
	"fmt"

	"github.com/chazu/slasupport/pkg/support"
)

// CurveSample is one (radius, z-delta) knot of a support_curve: how far a
// placed support head can still "catch" an overhang once the stack has
// grown z-delta above the point's own layer.
type CurveSample struct {
	Radius  float64
	ZOffset float64
}

// PrepareConfig holds the parameters layer preparation needs beyond
// SampleConfig: peninsula detection thresholds and the overhang
// discretization step.
type PrepareConfig struct {
	DiscretizeOverhangStep      float64
	PeninsulaMinWidth           float64
	PeninsulaSelfSupportedWidth float64
}

// Validate checks the invalid-configuration precondition:
// peninsula_self_supported_width must stay strictly below
// peninsula_min_width, or every peninsula would immediately self-support.
func (c PrepareConfig) Validate() error {
	if c.PeninsulaSelfSupportedWidth >= c.PeninsulaMinWidth {
		return fmt.Errorf("layer: peninsula_self_supported_width (%.3f) must be < peninsula_min_width (%.3f)", c.PeninsulaSelfSupportedWidth, c.PeninsulaMinWidth)
	}
	if c.DiscretizeOverhangStep <= 0 {
		return fmt.Errorf("layer: discretize_overhang_step must be positive, got %.3f", c.DiscretizeOverhangStep)
	}
	return nil
}

// GeneratorConfig holds the parameters support point generation needs
// beyond SampleConfig: head diameter, density scaling, the index-removal
// margin, and the radius-vs-height curve.
type GeneratorConfig struct {
	support.SampleConfig

	HeadDiameter    float64
	DensityRelative float64
	RemovingDelta   float64
	SupportCurve    []CurveSample
}

// Validate checks the generator's own preconditions plus the density
// clamp: density_relative must stay in (0, 4] so dividing the curve by
// it never blows current_radius up toward infinity.
func (c GeneratorConfig) Validate() error {
	if err := c.SampleConfig.Validate(); err != nil {
		return err
	}
	if c.DensityRelative <= 0 || c.DensityRelative > 4 {
		return fmt.Errorf("layer: density_relative must be in (0,4], got %.3f", c.DensityRelative)
	}
	if len(c.SupportCurve) < 2 {
		return fmt.Errorf("layer: support_curve needs at least 2 entries, got %d", len(c.SupportCurve))
	}
	for i := 1; i < len(c.SupportCurve); i++ {
		if c.SupportCurve[i].ZOffset <= c.SupportCurve[i-1].ZOffset {
			return fmt.Errorf("layer: support_curve must be strictly increasing in z, entry %d (%.3f) <= entry %d (%.3f)", i, c.SupportCurve[i].ZOffset, i-1, c.SupportCurve[i-1].ZOffset)
		}
	}
	return nil
}

// RadiusAt returns the curve's radius at height-delta dz, scaled by
// 1/density_relative, clamping to the first or last sample outside the
// curve's range.
func (c GeneratorConfig) RadiusAt(dz float64) float64 {
	curve := c.SupportCurve
	if len(curve) == 0 {
		return 0
	}
	if dz <= curve[0].ZOffset {
		return curve[0].Radius / c.DensityRelative
	}
	last := curve[len(curve)-1]
	if dz >= last.ZOffset {
		return last.Radius / c.DensityRelative
	}
	for i := 1; i < len(curve); i++ {
		a, b := curve[i-1], curve[i]
		if dz <= b.ZOffset {
			t := (dz - a.ZOffset) / (b.ZOffset - a.ZOffset)
			return (a.Radius + (b.Radius-a.Radius)*t) / c.DensityRelative
		}
	}
	return last.Radius / c.DensityRelative
}
