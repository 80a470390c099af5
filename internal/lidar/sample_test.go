package lidar

import (
	"math"
	"testing"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

func TestGenerate_CountAndBounds(t *testing.T) {
	p := DefaultParams()
	p.Points = 500

	cloud, err := Generate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cloud) != 500 {
		t.Fatalf("expected 500 points, got %d", len(cloud))
	}

	for i, pt := range cloud {
		dist := math.Hypot(pt.X-p.CenterLon, pt.Y-p.CenterLat)
		if dist > p.Radius+1e-9 {
			t.Fatalf("point %d outside radius: dist %g > %g", i, dist, p.Radius)
		}
	}
}

func TestGenerate_IntensityRanges(t *testing.T) {
	p := DefaultParams()
	p.Points = 2000

	cloud, err := Generate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, pt := range cloud {
		r, ok := intensityByClass[pt.Classification]
		if !ok {
			t.Fatalf("point %d has unknown class %d", i, pt.Classification)
		}
		if pt.Intensity < r.lo || pt.Intensity >= r.hi {
			t.Fatalf("point %d class %d intensity %d outside [%d, %d)",
				i, pt.Classification, pt.Intensity, r.lo, r.hi)
		}
	}
}

func TestGenerate_ElevationByClass(t *testing.T) {
	p := DefaultParams()
	p.Points = 20000

	cloud, err := Generate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := map[int]float64{}
	sumSq := map[int]float64{}
	count := map[int]int{}
	for _, pt := range cloud {
		sum[pt.Classification] += pt.Z
		sumSq[pt.Classification] += pt.Z * pt.Z
		count[pt.Classification]++
	}
	mean := func(class int) float64 {
		if count[class] == 0 {
			t.Fatalf("no points of class %d in a %d point cloud", class, p.Points)
		}
		return sum[class] / float64(count[class])
	}
	stddev := func(class int) float64 {
		m := mean(class)
		return math.Sqrt(sumSq[class]/float64(count[class]) - m*m)
	}

	water := mean(model.ClassWater)
	ground := mean(model.ClassGround)
	forest := mean(model.ClassForest)

	if !(water < ground && ground < forest) {
		t.Fatalf("expected water < ground < forest elevations, got %.1f / %.1f / %.1f",
			water, ground, forest)
	}
	// River surface is modelled 5 m below the surrounding terrain.
	if d := ground - water; d < 3 || d > 7 {
		t.Errorf("expected river surface about 5 m below ground, got %.1f m", d)
	}
	// Canopy returns average roughly 36 m above the terrain.
	if d := forest - ground; d < 25 {
		t.Errorf("expected canopy well above ground, got %.1f m", d)
	}
	// Open water is nearly flat, terrain and canopy spread much wider.
	if s := stddev(model.ClassWater); s > 2 {
		t.Errorf("water elevation spread %.2f m, expected nearly flat", s)
	}
	if stddev(model.ClassForest) < stddev(model.ClassWater) {
		t.Error("forest elevations should spread wider than water")
	}
}

func TestGenerate_VariabilityScalesAboutBase(t *testing.T) {
	p := DefaultParams()
	p.Points = 200

	a, err := Generate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.TerrainVariability = 2.0
	b, err := Generate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same seed, so the clouds share the base altitude and doubling the
	// variability doubles every offset from it. That makes
	// b.Z - 2*a.Z = -base, a constant across all points.
	negBase := b[0].Z - 2*a[0].Z
	for i := range a {
		if d := b[i].Z - 2*a[i].Z; math.Abs(d-negBase) > 1e-9 {
			t.Fatalf("point %d does not scale about the shared base: %g vs %g", i, d, negBase)
		}
	}
	if base := -negBase; base < 20 || base > 100 {
		t.Errorf("implied base altitude %.1f m outside the lowland range", base)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := DefaultParams()
	p.Points = 100

	a, err := Generate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Generate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs across runs with same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerate_SeedChangesOutput(t *testing.T) {
	p := DefaultParams()
	p.Points = 100

	a, _ := Generate(p)
	p.Seed = 7
	b, _ := Generate(p)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical clouds")
	}
}

func TestGenerate_ForestDominatesAtHighRatio(t *testing.T) {
	p := DefaultParams()
	p.Points = 5000
	p.ForestRatio = 0.9
	p.WaterRatio = 0.0

	cloud, err := Generate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var forest int
	for _, pt := range cloud {
		if pt.Classification == model.ClassForest {
			forest++
		}
		if pt.Classification == model.ClassWater {
			t.Fatal("water point generated with zero water ratio")
		}
	}
	if float64(forest)/float64(len(cloud)) < 0.8 {
		t.Errorf("expected mostly forest points, got %d of %d", forest, len(cloud))
	}
}

func TestGenerate_MultipleReturnsOnlyInForest(t *testing.T) {
	p := DefaultParams()
	p.Points = 3000

	cloud, err := Generate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, pt := range cloud {
		if pt.Classification != model.ClassForest && pt.ReturnNumber != 1 {
			t.Fatalf("point %d class %d has %d returns", i, pt.Classification, pt.ReturnNumber)
		}
		if pt.ReturnNumber < 1 || pt.ReturnNumber > 4 {
			t.Fatalf("point %d has return number %d", i, pt.ReturnNumber)
		}
	}
}

func TestGenerate_InvalidParams(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero points", func(p *Params) { p.Points = 0 }},
		{"negative radius", func(p *Params) { p.Radius = -1 }},
		{"forest ratio above one", func(p *Params) { p.ForestRatio = 1.5 }},
		{"negative water ratio", func(p *Params) { p.WaterRatio = -0.1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			if _, err := Generate(p); err == nil {
				t.Error("expected error")
			}
		})
	}
}
