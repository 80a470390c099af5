package lidar

import (
	"math"
	"testing"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

func TestSummarize(t *testing.T) {
	points := []model.SamplePoint{
		{Z: 10, Intensity: 100, Classification: model.ClassForest},
		{Z: 20, Intensity: 80, Classification: model.ClassForest},
		{Z: 55, Intensity: 10, Classification: model.ClassWater},
	}

	summaries := Summarize(points)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 class summaries, got %d", len(summaries))
	}

	forest := summaries[0]
	if forest.Classification != model.ClassForest {
		t.Fatalf("expected forest first, got class %d", forest.Classification)
	}
	if forest.Count != 2 {
		t.Errorf("expected 2 forest points, got %d", forest.Count)
	}
	if math.Abs(forest.MeanZ-15) > 1e-9 {
		t.Errorf("expected mean Z 15, got %g", forest.MeanZ)
	}
	if forest.MinZ != 10 || forest.MaxZ != 20 {
		t.Errorf("unexpected Z range [%g, %g]", forest.MinZ, forest.MaxZ)
	}
	if math.Abs(forest.MeanIntensity-90) > 1e-9 {
		t.Errorf("expected mean intensity 90, got %g", forest.MeanIntensity)
	}

	water := summaries[1]
	if water.Classification != model.ClassWater || water.Count != 1 {
		t.Errorf("unexpected water summary: %+v", water)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("expected no summaries, got %d", len(got))
	}
}

func TestClassName(t *testing.T) {
	if ClassName(model.ClassForest) != "Floresta" {
		t.Errorf("unexpected forest label %q", ClassName(model.ClassForest))
	}
	if ClassName(99) != "Desconhecido" {
		t.Errorf("unexpected label for unknown class: %q", ClassName(99))
	}
}
