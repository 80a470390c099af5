package lidar

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

// ClassSummary aggregates one land-cover class of a sample.
type ClassSummary struct {
	Classification int     `json:"classification"`
	Count          int     `json:"count"`
	MeanZ          float64 `json:"mean_z"`
	StdDevZ        float64 `json:"stddev_z"`
	MinZ           float64 `json:"min_z"`
	MaxZ           float64 `json:"max_z"`
	MeanIntensity  float64 `json:"mean_intensity"`
}

// ClassName returns the human label for a classification code.
func ClassName(class int) string {
	switch class {
	case model.ClassForest:
		return "Floresta"
	case model.ClassWater:
		return "Água"
	case model.ClassLowVegetation:
		return "Vegetação Baixa"
	case model.ClassGround:
		return "Solo Exposto"
	case model.ClassBuilding:
		return "Construções"
	default:
		return "Desconhecido"
	}
}

// Summarize computes per-class elevation and intensity statistics,
// ordered by classification code.
func Summarize(points []model.SamplePoint) []ClassSummary {
	byClass := make(map[int][]model.SamplePoint)
	for _, p := range points {
		byClass[p.Classification] = append(byClass[p.Classification], p)
	}

	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	summaries := make([]ClassSummary, 0, len(classes))
	for _, c := range classes {
		pts := byClass[c]
		zs := make([]float64, len(pts))
		is := make([]float64, len(pts))
		minZ, maxZ := pts[0].Z, pts[0].Z
		for i, p := range pts {
			zs[i] = p.Z
			is[i] = float64(p.Intensity)
			if p.Z < minZ {
				minZ = p.Z
			}
			if p.Z > maxZ {
				maxZ = p.Z
			}
		}

		mean, std := stat.MeanStdDev(zs, nil)
		summaries = append(summaries, ClassSummary{
			Classification: c,
			Count:          len(pts),
			MeanZ:          mean,
			StdDevZ:        std,
			MinZ:           minZ,
			MaxZ:           maxZ,
			MeanIntensity:  stat.Mean(is, nil),
		})
	}

	return summaries
}
