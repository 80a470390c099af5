package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

// featureCollection wraps go-geom features with the explicit CRS84
// member QGIS expects from legacy GeoJSON producers.
type featureCollection struct {
	Type     string             `json:"type"`
	CRS      crs                `json:"crs"`
	Features []*geojson.Feature `json:"features"`
}

type crs struct {
	Type       string        `json:"type"`
	Properties crsProperties `json:"properties"`
}

type crsProperties struct {
	Name string `json:"name"`
}

// WriteGeoJSON renders the resolved points as a FeatureCollection with
// cartographic metadata on each feature.
func WriteGeoJSON(w io.Writer, points []model.GeoPoint) error {
	fc := featureCollection{
		Type: "FeatureCollection",
		CRS: crs{
			Type:       "name",
			Properties: crsProperties{Name: "urn:ogc:def:crs:OGC:1.3:CRS84"},
		},
		Features: make([]*geojson.Feature, 0, len(points)),
	}

	refDate := time.Now().Format("2006-01-02")
	for _, p := range points {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Lon, p.Lat}),
			Properties: map[string]any{
				"nome":        p.Name,
				"tipo":        p.Type,
				"categoria":   string(p.Category),
				"importancia": p.Weight,
				"fonte":       "Análise semântica",
				"escala":      "1:50000",
				"data_ref":    refDate,
				"simbolo":     SymbolForCategory(p.Category),
			},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encoding GeoJSON: %w", err)
	}
	return nil
}

// SymbolForCategory maps a feature category to the symbol key the
// categorized QML style renders.
func SymbolForCategory(c model.PointCategory) string {
	switch c {
	case model.CategoryHydrography:
		return "agua"
	case model.CategoryRelief:
		return "elevacao"
	case model.CategoryVegetation:
		return "vegetacao"
	case model.CategoryLocality:
		return "localidade"
	case model.CategoryInfrastructure:
		return "infraestrutura"
	case model.CategoryBoundary:
		return "limite"
	default:
		return "geral"
	}
}
