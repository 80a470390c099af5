// Package lidar fabricates synthetic point-cloud samples for Amazonian
// terrain. Points are drawn uniformly inside a disc around a centroid
// and assigned a land-cover class, a class-conditioned elevation, and a
// class-conditioned return intensity.
package lidar

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

// Params configures a synthetic sample.
type Params struct {
	CenterLat float64
	CenterLon float64
	Radius    float64 // degrees
	Points    int

	// Composition ratios in [0,1].
	ForestRatio float64
	WaterRatio  float64

	// TerrainVariability scales elevation spread about the base
	// altitude. 1.0 keeps the modelled spread.
	TerrainVariability float64

	// Seed makes the sample reproducible. The same seed and params
	// always yield the same point cloud.
	Seed uint64
}

// DefaultParams mirrors the typical central-Amazon survey setup.
func DefaultParams() Params {
	return Params{
		CenterLat:          -3.1,
		CenterLon:          -60.0,
		Radius:             0.05,
		Points:             1000,
		ForestRatio:        0.7,
		WaterRatio:         0.1,
		TerrainVariability: 1.0,
		Seed:               42,
	}
}

type intensityRange struct{ lo, hi int }

// Per-class LiDAR return intensity, modelling surface reflectance:
// water absorbs, bare soil and rooftops reflect strongly.
var intensityByClass = map[int]intensityRange{
	model.ClassForest:        {40, 120},
	model.ClassWater:         {5, 30},
	model.ClassLowVegetation: {50, 150},
	model.ClassGround:        {120, 220},
	model.ClassBuilding:      {150, 250},
}

// Generate fabricates a point cloud of exactly p.Points returns, all
// within p.Radius of the center.
func Generate(p Params) ([]model.SamplePoint, error) {
	if p.Points <= 0 {
		return nil, fmt.Errorf("point count must be positive, got %d", p.Points)
	}
	if p.Radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %g", p.Radius)
	}
	if p.ForestRatio < 0 || p.ForestRatio > 1 {
		return nil, fmt.Errorf("forest ratio must be in [0,1], got %g", p.ForestRatio)
	}
	if p.WaterRatio < 0 || p.WaterRatio > 1 {
		return nil, fmt.Errorf("water ratio must be in [0,1], got %g", p.WaterRatio)
	}
	if p.TerrainVariability == 0 {
		p.TerrainVariability = 1.0
	}

	src := rand.NewPCG(p.Seed, p.Seed)
	rng := rand.New(src)

	// Class-conditioned height models. Canopy and structure heights are
	// gamma-distributed (distuv parameterizes by rate, hence 1/scale);
	// the underlying terrain is normal noise about the base altitude.
	var (
		forestCanopy  = distuv.Gamma{Alpha: 9, Beta: 1.0 / 4.0, Src: src}  // mean ~36 m
		lowVegHeight  = distuv.Gamma{Alpha: 2, Beta: 1.0 / 1.5, Src: src}  // mean ~3 m
		buildHeight   = distuv.Gamma{Alpha: 3, Beta: 1.0 / 2.0, Src: src}  // mean ~6 m
		waterSurface  = distuv.Normal{Mu: 0, Sigma: 0.5, Src: src}
		forestTerrain = distuv.Normal{Mu: 0, Sigma: 5, Src: src}
		lowVegTerrain = distuv.Normal{Mu: 0, Sigma: 3, Src: src}
		groundTerrain = distuv.Normal{Mu: 0, Sigma: 2, Src: src}
		buildTerrain  = distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	)

	// Amazonian lowland: base altitude around 60 m above sea level.
	base := 60 + distuv.Normal{Mu: 0, Sigma: 10, Src: src}.Rand()

	points := make([]model.SamplePoint, p.Points)
	for i := range points {
		theta := rng.Float64() * 2 * math.Pi
		r := p.Radius * math.Sqrt(rng.Float64())

		x := p.CenterLon + r*math.Cos(theta)
		y := p.CenterLat + r*math.Sin(theta)
		normDist := r / p.Radius

		class := drawClass(rng, theta, normDist, p.ForestRatio, p.WaterRatio)

		var z float64
		switch class {
		case model.ClassWater:
			// River surface sits below the surrounding terrain and is
			// nearly flat.
			z = base - 5 + waterSurface.Rand()
		case model.ClassForest:
			z = base + forestTerrain.Rand() + forestCanopy.Rand()
		case model.ClassLowVegetation:
			z = base + lowVegTerrain.Rand() + lowVegHeight.Rand()
		case model.ClassGround:
			z = base + groundTerrain.Rand()
		case model.ClassBuilding:
			z = base + buildTerrain.Rand() + buildHeight.Rand()
		}
		z = base + (z-base)*p.TerrainVariability

		ir := intensityByClass[class]
		intensity := ir.lo + rng.IntN(ir.hi-ir.lo)

		points[i] = model.SamplePoint{
			X:              x,
			Y:              y,
			Z:              z,
			Intensity:      intensity,
			Classification: class,
			ReturnNumber:   drawReturns(rng, class),
		}
	}

	return points, nil
}

// drawClass assigns a land-cover class. A meandering river crosses the
// disc (the sin(2θ) band), the rest splits between forest, low
// vegetation, bare soil and buildings by independent draws.
func drawClass(rng *rand.Rand, theta, normDist, forestRatio, waterRatio float64) int {
	if math.Abs(math.Sin(theta*2))*normDist < waterRatio {
		return model.ClassWater
	}
	if rng.Float64() < forestRatio {
		return model.ClassForest
	}
	if rng.Float64() < 0.7 {
		return model.ClassLowVegetation
	}
	if rng.Float64() < 0.8 {
		return model.ClassGround
	}
	return model.ClassBuilding
}

// drawReturns models multiple returns per pulse: canopy yields up to
// four, everything else a single return.
func drawReturns(rng *rand.Rand, class int) int {
	if class != model.ClassForest {
		return 1
	}
	u := rng.Float64()
	switch {
	case u < 0.2:
		return 1
	case u < 0.5:
		return 2
	case u < 0.8:
		return 3
	default:
		return 4
	}
}
