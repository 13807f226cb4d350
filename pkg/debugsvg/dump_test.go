package debugsvg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/support"
)

func TestDumpWritesSVGWithOutlineAndPoints(t *testing.T) {
	island := geom.NewExPolygon(geom.NewPolygon([]geom.Point{
		geom.Pt(0, 0), geom.Pt(10000, 0), geom.Pt(10000, 10000), geom.Pt(0, 10000),
	}), nil)
	points := []*support.IslandPoint{
		support.NewFrozenPoint(support.KindOneCenterPoint, geom.Pt(5000, 5000)),
	}

	var buf bytes.Buffer
	Dump(&buf, island, nil, points, DefaultOptions())

	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("expected an <svg> root element, got: %s", out)
	}
	if !strings.Contains(out, "<circle") {
		t.Fatalf("expected a <circle> for the support point, got: %s", out)
	}
	if !strings.Contains(out, "</svg>") {
		t.Fatalf("expected the document to be closed, got: %s", out)
	}
}

func TestDumpIsDeterministic(t *testing.T) {
	island := geom.NewExPolygon(geom.NewPolygon([]geom.Point{
		geom.Pt(0, 0), geom.Pt(1000, 0), geom.Pt(1000, 1000), geom.Pt(0, 1000),
	}), nil)

	var a, b bytes.Buffer
	Dump(&a, island, nil, nil, DefaultOptions())
	Dump(&b, island, nil, nil, DefaultOptions())

	if a.String() != b.String() {
		t.Fatalf("expected identical output for identical input")
	}
}
