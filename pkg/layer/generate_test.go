package layer

import (
	"errors"
	"testing"

	"github.com/chazu/slasupport/pkg/geom"
)

func TestPrepareGeneratorDataLinksSuccessiveLayers(t *testing.T) {
	slices := [][]geom.ExPolygon{
		{square(0, 0, 10000, 10000)},
		{square(2000, 2000, 8000, 8000)},
	}
	heights := []float64{0, 1000}

	data, err := PrepareGeneratorData(slices, heights, testPrepareConfig(), geom.ConvexApproxOps{}, nil, nil)
	if err != nil {
		t.Fatalf("PrepareGeneratorData: %v", err)
	}
	if len(data.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(data.Layers))
	}
	below, above := data.Layers[0].Parts[0], data.Layers[1].Parts[0]
	if len(above.Below) != 1 || above.Below[0] != below {
		t.Fatalf("expected the top layer's part to link below, got %v", above.Below)
	}
}

func TestPrepareGeneratorDataRejectsMismatchedLengths(t *testing.T) {
	slices := [][]geom.ExPolygon{{square(0, 0, 100, 100)}}
	heights := []float64{0, 1000}

	if _, err := PrepareGeneratorData(slices, heights, testPrepareConfig(), geom.ConvexApproxOps{}, nil, nil); err == nil {
		t.Fatal("expected an error for mismatched slices/heights lengths")
	}
}

func TestPrepareGeneratorDataRejectsInvalidConfig(t *testing.T) {
	slices := [][]geom.ExPolygon{{square(0, 0, 100, 100)}}
	heights := []float64{0}
	bad := PrepareConfig{DiscretizeOverhangStep: 500, PeninsulaMinWidth: 100, PeninsulaSelfSupportedWidth: 100}

	if _, err := PrepareGeneratorData(slices, heights, bad, geom.ConvexApproxOps{}, nil, nil); err == nil {
		t.Fatal("expected an error for peninsula_self_supported_width >= peninsula_min_width")
	}
}

func TestGenerateSupportPointsProducesPointsAcrossLayers(t *testing.T) {
	slices := [][]geom.ExPolygon{
		{square(0, 0, 10000, 10000)},
		{square(2000, 2000, 8000, 8000)},
	}
	heights := []float64{0, 1000}

	data, err := PrepareGeneratorData(slices, heights, testPrepareConfig(), geom.ConvexApproxOps{}, nil, nil)
	if err != nil {
		t.Fatalf("PrepareGeneratorData: %v", err)
	}

	points, err := GenerateSupportPoints(data, testGeneratorConfig(), fakeBuilder{}, nil, nil)
	if err != nil {
		t.Fatalf("GenerateSupportPoints: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("expected at least one support point across the stack")
	}
}

func TestGenerateSupportPointsStopsOnCancel(t *testing.T) {
	slices := [][]geom.ExPolygon{
		{square(0, 0, 10000, 10000)},
		{square(2000, 2000, 8000, 8000)},
	}
	heights := []float64{0, 1000}

	data, err := PrepareGeneratorData(slices, heights, testPrepareConfig(), geom.ConvexApproxOps{}, nil, nil)
	if err != nil {
		t.Fatalf("PrepareGeneratorData: %v", err)
	}

	canceled := func() bool { return true }
	points, err := GenerateSupportPoints(data, testGeneratorConfig(), fakeBuilder{}, canceled, nil)
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	if points != nil {
		t.Fatalf("expected no points accumulated before the first poll, got %v", points)
	}
}

func TestPrepareGeneratorDataStopsOnCancel(t *testing.T) {
	slices := [][]geom.ExPolygon{{square(0, 0, 100, 100)}}
	heights := []float64{0}
	canceled := func() bool { return true }

	if _, err := PrepareGeneratorData(slices, heights, testPrepareConfig(), geom.ConvexApproxOps{}, canceled, nil); !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
}
