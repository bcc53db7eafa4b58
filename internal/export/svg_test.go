package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/hashviz/internal/spectrum"
	"github.com/san-kum/hashviz/internal/storage"
)

func TestBarsSVG(t *testing.T) {
	layout := spectrum.Layout{Width: 100, Height: 50, Count: 4}
	svg := BarsSVG([]float64{0, 10, 50, 80}, layout)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	// zero height bar is skipped
	if n := strings.Count(svg, "<rect x="); n != 3 {
		t.Errorf("bar rects = %d, want 3", n)
	}
	// bar 1: x = 25, w = 20, h = 10 sitting on the bottom edge
	if !strings.Contains(svg, `<rect x="25.0" y="40.0" width="20.0" height="10.0"/>`) {
		t.Errorf("missing bar 1:\n%s", svg)
	}
	// bar 3 is clamped to the area height
	if !strings.Contains(svg, `<rect x="75.0" y="0.0" width="20.0" height="50.0"/>`) {
		t.Errorf("bar 3 not clamped:\n%s", svg)
	}
}

func TestBarsSVG_Empty(t *testing.T) {
	if got := BarsSVG(nil, spectrum.DefaultLayout()); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
	if got := BarsSVG([]float64{1}, spectrum.Layout{}); got != "" {
		t.Errorf("expected empty output for zero layout, got %q", got)
	}
}

func TestEnvelopeSVG(t *testing.T) {
	if got := EnvelopeSVG([]float64{1}, 100, 50); got != "" {
		t.Errorf("single point should render nothing, got %q", got)
	}

	svg := EnvelopeSVG([]float64{0, 5, 10}, 100, 50)
	if !strings.Contains(svg, `d="M0.0,`) {
		t.Errorf("path should start at x=0:\n%s", svg)
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected two line segments:\n%s", svg)
	}
}

func TestMeans(t *testing.T) {
	got := Means([][]float64{{1, 3}, {}, {10}})
	want := []float64{2, 0, 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Means mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := storage.CaptureMetadata{ID: "cap_1", Track: "a.wav", Frames: 2, Bars: 2}
	if err := JSON(&buf, meta, [][]float64{{1, 3}, {2, 2}}); err != nil {
		t.Fatal(err)
	}

	var got CaptureData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "cap_1" || got.Track != "a.wav" {
		t.Errorf("metadata not flattened into the document: %+v", got.CaptureMetadata)
	}
	if diff := cmp.Diff([]float64{2, 2}, got.Means); diff != "" {
		t.Errorf("means mismatch (-want +got):\n%s", diff)
	}
}
