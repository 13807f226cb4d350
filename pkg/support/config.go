package support

import "fmt"

// SampleConfig is the single immutable record of geometric tolerances and
// density parameters driving island sampling. All distance fields are in
// the same integer micrometer units as geom.Coord; callers working in
// millimeters scale by 1e3 before constructing one.
type SampleConfig struct {
	SimplificationTolerance float64
	HeadRadius              float64

	ThinMaxWidth  float64
	ThickMinWidth float64

	ThinMaxDistance        float64
	ThickInnerMaxDistance  float64
	ThickOutlineMaxDistance float64

	MinimalDistanceFromOutline float64
	MaximalDistanceFromOutline float64

	MaxLengthForOneSupportPoint       float64
	MaxLengthForTwoSupportPoints      float64
	MaxLengthRatioForTwoSupportPoints float64

	MinPartLength float64

	CountIteration int
	MinimalMove    float64
	MaxAlignDistance float64
}

// Option configures a SampleConfig constructed via NewSampleConfig.
type Option func(*SampleConfig)

// defaultSampleConfig mirrors the magnitudes used in the original
// implementation's own defaults, expressed in micrometers (inputs there
// are millimeters; 1mm = 1000um).
func defaultSampleConfig() SampleConfig {
	return SampleConfig{
		SimplificationTolerance:           10,
		HeadRadius:                        200,
		ThinMaxWidth:                      600,
		ThickMinWidth:                     400,
		ThinMaxDistance:                   2000,
		ThickInnerMaxDistance:             3000,
		ThickOutlineMaxDistance:           3000,
		MinimalDistanceFromOutline:        200,
		MaximalDistanceFromOutline:        4000,
		MaxLengthForOneSupportPoint:       3000,
		MaxLengthForTwoSupportPoints:      8000,
		MaxLengthRatioForTwoSupportPoints: 0.3,
		MinPartLength:                     1000,
		CountIteration:                    20,
		MinimalMove:                       5,
		MaxAlignDistance:                  500,
	}
}

// NewSampleConfig builds a SampleConfig from the built-in defaults plus
// any Options.
func NewSampleConfig(opts ...Option) SampleConfig {
	cfg := defaultSampleConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func WithHeadRadius(v float64) Option              { return func(c *SampleConfig) { c.HeadRadius = v } }
func WithThinMaxWidth(v float64) Option             { return func(c *SampleConfig) { c.ThinMaxWidth = v } }
func WithThickMinWidth(v float64) Option            { return func(c *SampleConfig) { c.ThickMinWidth = v } }
func WithThinMaxDistance(v float64) Option          { return func(c *SampleConfig) { c.ThinMaxDistance = v } }
func WithThickInnerMaxDistance(v float64) Option    { return func(c *SampleConfig) { c.ThickInnerMaxDistance = v } }
func WithThickOutlineMaxDistance(v float64) Option  { return func(c *SampleConfig) { c.ThickOutlineMaxDistance = v } }
func WithMinimalDistanceFromOutline(v float64) Option {
	return func(c *SampleConfig) { c.MinimalDistanceFromOutline = v }
}
func WithMaximalDistanceFromOutline(v float64) Option {
	return func(c *SampleConfig) { c.MaximalDistanceFromOutline = v }
}
func WithMaxLengthForOneSupportPoint(v float64) Option {
	return func(c *SampleConfig) { c.MaxLengthForOneSupportPoint = v }
}
func WithMaxLengthForTwoSupportPoints(v float64) Option {
	return func(c *SampleConfig) { c.MaxLengthForTwoSupportPoints = v }
}
func WithMaxLengthRatioForTwoSupportPoints(v float64) Option {
	return func(c *SampleConfig) { c.MaxLengthRatioForTwoSupportPoints = v }
}
func WithMinPartLength(v float64) Option    { return func(c *SampleConfig) { c.MinPartLength = v } }
func WithCountIteration(v int) Option       { return func(c *SampleConfig) { c.CountIteration = v } }
func WithMinimalMove(v float64) Option      { return func(c *SampleConfig) { c.MinimalMove = v } }
func WithMaxAlignDistance(v float64) Option { return func(c *SampleConfig) { c.MaxAlignDistance = v } }
func WithSimplificationTolerance(v float64) Option {
	return func(c *SampleConfig) { c.SimplificationTolerance = v }
}

// Validate runs the invalid-configuration precondition checks: a
// violation here is a caller-facing error, not a degenerate island to
// be handled by returning an empty result.
func (c SampleConfig) Validate() error {
	if c.ThickMinWidth >= c.ThinMaxWidth {
		return fmt.Errorf("support: thick_min_width (%.3f) must be < thin_max_width (%.3f)", c.ThickMinWidth, c.ThinMaxWidth)
	}
	if c.HeadRadius <= 0 {
		return fmt.Errorf("support: head_radius must be positive, got %.3f", c.HeadRadius)
	}
	if c.CountIteration <= 0 {
		return fmt.Errorf("support: count_iteration must be > 0, got %d", c.CountIteration)
	}
	if c.MinimalMove <= 0 {
		return fmt.Errorf("support: minimal_move must be positive, got %.3f", c.MinimalMove)
	}
	if c.MaxLengthRatioForTwoSupportPoints < 0 || c.MaxLengthRatioForTwoSupportPoints > 1 {
		return fmt.Errorf("support: max_length_ratio_for_two_support_points must be in [0,1], got %.3f", c.MaxLengthRatioForTwoSupportPoints)
	}
	if c.MinPartLength < 0 {
		return fmt.Errorf("support: min_part_length must be >= 0, got %.3f", c.MinPartLength)
	}
	if c.SimplificationTolerance < 0 {
		return fmt.Errorf("support: simplification_tolerance must be >= 0, got %.3f", c.SimplificationTolerance)
	}
	return nil
}

// MaxCellRadius is the disk radius used to clip Voronoi cells during
// alignment: the largest of the three sampling spacings, so no movable
// point's cell is clipped tighter than the spacing that placed it.
func (c SampleConfig) MaxCellRadius() float64 {
	r := c.ThinMaxDistance
	if c.ThickInnerMaxDistance > r {
		r = c.ThickInnerMaxDistance
	}
	if c.ThickOutlineMaxDistance > r {
		r = c.ThickOutlineMaxDistance
	}
	return r
}
