package layer

import (
	"errors"
	"fmt"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/voronoi"
)

// cancelPollInterval is how often, in layers processed, the cancel
// callback is polled during preparation and generation.
const cancelPollInterval = 8

// ErrCanceled is returned by PrepareGeneratorData and GenerateSupportPoints
// when cancel reports true mid-run. Callers that want the partial result
// built so far should use GenerateSupportPoints's return value, which is
// populated even on cancellation.
var ErrCanceled = errors.New("layer: canceled")

// CancelFunc is polled periodically during long-running preparation and
// generation; returning true aborts the computation and discards the
// layer currently in progress.
type CancelFunc func() bool

// StatusFunc receives a 0-100 progress percentage.
type StatusFunc func(percent int)

func pollCancel(cancel CancelFunc, i int) bool {
	return cancel != nil && i%cancelPollInterval == 0 && cancel()
}

func reportStatus(status StatusFunc, i, total int) {
	if status == nil || total == 0 {
		return
	}
	status(int(float64(i+1) / float64(total) * 100))
}

// LayerSlice is one slice's worth of LayerParts at a fixed height.
type LayerSlice struct {
	Height float64
	Parts  []*LayerPart
}

// GeneratorData is the opaque result of PrepareGeneratorData: every
// slice's outlines turned into linked LayerParts, plus the
// PrepareConfig and boolean-ops implementation generation will need to
// keep using. Callers pass it straight to GenerateSupportPoints.
type GeneratorData struct {
	Layers []*LayerSlice

	prep PrepareConfig
	ops  geom.BooleanOps
}

// PrepareGeneratorData turns per-slice outlines and heights into linked
// LayerParts: one LayerPart per outline, each layer's parts linked to
// the layer below's by LinkLayers. cancel is polled once every
// cancelPollInterval slices; status, if non-nil, receives 0-100 progress
// after each slice.
func PrepareGeneratorData(slices [][]geom.ExPolygon, heights []float64, cfg PrepareConfig, ops geom.BooleanOps, cancel CancelFunc, status StatusFunc) (*GeneratorData, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(slices) != len(heights) {
		return nil, fmt.Errorf("layer: slices and heights must have equal length, got %d and %d", len(slices), len(heights))
	}

	data := &GeneratorData{prep: cfg, ops: ops}
	for i, outlines := range slices {
		if pollCancel(cancel, i) {
			return nil, ErrCanceled
		}

		slice := &LayerSlice{Height: heights[i]}
		for _, outline := range outlines {
			slice.Parts = append(slice.Parts, NewLayerPart(outline, heights[i]))
		}
		if i > 0 {
			LinkLayers(data.Layers[i-1].Parts, slice.Parts, ops)
		}
		data.Layers = append(data.Layers, slice)
		reportStatus(status, i, len(slices))
	}
	return data, nil
}

// GenerateSupportPoints runs ProcessPart over every part of every layer
// in data, in ascending z, advancing each layer's existing points'
// radii first. cancel is polled once every cancelPollInterval layers; on
// cancellation the points accumulated so far are still returned,
// alongside ErrCanceled, so a caller can keep a marked-incomplete
// partial result rather than nothing at all.
func GenerateSupportPoints(data *GeneratorData, cfg GeneratorConfig, builder voronoi.DiagramBuilder, cancel CancelFunc, status StatusFunc) ([]*LayerSupportPoint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := NewStore()
	for i, slice := range data.Layers {
		if pollCancel(cancel, i) {
			return store.All(), ErrCanceled
		}

		store.AdvanceAllRadii(slice.Height, cfg)
		for _, part := range slice.Parts {
			if err := ProcessPart(part, store, slice.Height, cfg, data.prep, builder, data.ops); err != nil {
				return store.All(), err
			}
		}
		reportStatus(status, i, len(data.Layers))
	}
	return store.All(), nil
}
