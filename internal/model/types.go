package model

// PointCategory classifies resolved geographic points.
type PointCategory string

const (
	CategoryHydrography    PointCategory = "hidrografia"
	CategoryRelief         PointCategory = "relevo"
	CategoryVegetation     PointCategory = "vegetação"
	CategoryLocality       PointCategory = "localidade"
	CategoryInfrastructure PointCategory = "infraestrutura"
	CategoryBoundary       PointCategory = "limite"
	CategoryGeneral        PointCategory = "geral"
)

// GeoPoint is a named geographic point produced by LLM extraction or
// gazetteer resolution. Weight carries the model's confidence (or the
// resolver's precision score) in [0,1].
type GeoPoint struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Category PointCategory `json:"category,omitempty"`
	Lat      float64       `json:"lat"`
	Lon      float64       `json:"lon"`
	Weight   float64       `json:"weight,omitempty"`
}

// GeoEntity is a named entity before coordinate resolution.
type GeoEntity struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence,omitempty"`
	Context    string  `json:"context,omitempty"`
}

// Centroid returns the mean position of a set of points.
// Returns false when the slice is empty.
func Centroid(points []GeoPoint) (lat, lon float64, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(points))
	return lat / n, lon / n, true
}

// Land-cover classification codes used in the synthetic point cloud.
// These match the legend written into the exported CSV header.
const (
	ClassForest        = 1
	ClassWater         = 2
	ClassLowVegetation = 3
	ClassGround        = 4
	ClassBuilding      = 5
)

// SamplePoint is one synthetic LiDAR return.
type SamplePoint struct {
	X              float64 `json:"x"` // longitude, degrees
	Y              float64 `json:"y"` // latitude, degrees
	Z              float64 `json:"z"` // elevation, meters
	Intensity      int     `json:"intensity"`
	Classification int     `json:"classification"`
	ReturnNumber   int     `json:"return_number"`
}

// SamplingStrategy holds LLM-recommended sampling parameters.
type SamplingStrategy struct {
	PointDensity   int      `json:"densidade_pontos"`
	SampleRadius   float64  `json:"raio_amostragem"`
	FlightAltitude float64  `json:"altitude_voo"`
	PriorityAreas  []string `json:"areas_prioritarias"`
	IdealSeason    string   `json:"epoca_ideal"`
}

// FilterByWeight keeps the points at or above the minimum cartographic
// importance. A zero minimum keeps everything.
func FilterByWeight(points []GeoPoint, min float64) []GeoPoint {
	if min <= 0 {
		return points
	}
	kept := make([]GeoPoint, 0, len(points))
	for _, p := range points {
		if p.Weight >= min {
			kept = append(kept, p)
		}
	}
	return kept
}

// AnalysisRun records one analyze request and its resolved points.
type AnalysisRun struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Mode      string     `json:"mode"` // "direct" or "semantic"
	Model     string     `json:"model"`
	CenterLat float64    `json:"center_lat"`
	CenterLon float64    `json:"center_lon"`
	Fallback  bool       `json:"fallback"`
	Points    []GeoPoint `json:"points"`
	CreatedAt string     `json:"created_at"`
}

// DefaultPoints is the hardcoded fallback dataset used when extraction
// fails or returns nothing: central Amazon around Manaus.
func DefaultPoints() []GeoPoint {
	return []GeoPoint{
		{Name: "Manaus", Type: "cidade", Category: CategoryLocality, Lat: -3.1, Lon: -60.0, Weight: 0.9},
		{Name: "Encontro das Águas", Type: "rio", Category: CategoryHydrography, Lat: -3.3, Lon: -60.2, Weight: 0.85},
	}
}
