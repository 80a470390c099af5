package lidar

import (
	"math"
	"testing"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

func TestRasterize_Mean(t *testing.T) {
	points := []model.SamplePoint{
		{X: -60.0, Y: -3.0, Z: 10},
		{X: -60.0, Y: -3.0, Z: 20},
		{X: -59.9, Y: -3.1, Z: 50},
	}

	g, err := Rasterize(points, Elevation, 0.01, AggMean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var values []float64
	for _, v := range g.Cells {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 occupied cells, got %d", len(values))
	}

	found15 := false
	for _, v := range values {
		if math.Abs(v-15) < 1e-9 {
			found15 = true
		}
	}
	if !found15 {
		t.Errorf("expected a cell with mean 15, got %v", values)
	}
}

func TestRasterize_Count(t *testing.T) {
	points := []model.SamplePoint{
		{X: -60.0, Y: -3.0},
		{X: -60.0, Y: -3.0},
		{X: -60.0, Y: -3.0},
	}

	g, err := Rasterize(points, Elevation, 0.01, AggCount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	peak := 0.0
	for _, v := range g.Cells {
		if !math.IsNaN(v) && v > peak {
			peak = v
		}
	}
	if peak != 3 {
		t.Errorf("expected count 3 in the shared cell, got %g", peak)
	}
}

func TestRasterize_InvalidInput(t *testing.T) {
	if _, err := Rasterize(nil, Elevation, 0.01, AggMean); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := Rasterize([]model.SamplePoint{{X: 0, Y: 0}}, Elevation, 0, AggMean); err == nil {
		t.Error("expected error for zero resolution")
	}
}

func TestHeatmap_NormalizedAndPeaked(t *testing.T) {
	points := []model.GeoPoint{
		{Name: "Manaus", Lat: -3.1, Lon: -60.0, Weight: 1.0},
		{Name: "Itacoatiara", Lat: -3.14, Lon: -58.44, Weight: 0.5},
	}

	g, err := Heatmap(points, 0.05, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	peak := 0.0
	for _, v := range g.Cells {
		if v < 0 || v > 1 {
			t.Fatalf("cell value %g outside [0,1]", v)
		}
		if v > peak {
			peak = v
		}
	}
	if peak != 1.0 {
		t.Errorf("expected normalized peak of 1.0, got %g", peak)
	}
}

func TestHeatmap_TinyRadius(t *testing.T) {
	points := []model.GeoPoint{{Lat: -3.1, Lon: -60.0, Weight: 1.0}}

	// Radius below one cell still produces a usable surface
	g, err := Heatmap(points, 0.005, 0.004)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Width <= 0 || g.Height <= 0 {
		t.Errorf("degenerate grid %dx%d", g.Width, g.Height)
	}
}
