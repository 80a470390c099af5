package extractor

import (
	"testing"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

func TestParsePoints_Direct(t *testing.T) {
	input := `[{"lat": -3.1, "lon": -60.0, "name": "Manaus", "type": "cidade", "weight": 0.9}]`

	points, err := ParsePoints(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].Name != "Manaus" {
		t.Errorf("expected name Manaus, got %s", points[0].Name)
	}
	if points[0].Lat != -3.1 || points[0].Lon != -60.0 {
		t.Errorf("unexpected coordinates (%g, %g)", points[0].Lat, points[0].Lon)
	}
}

func TestParsePoints_WithProse(t *testing.T) {
	input := `Aqui estão as coordenadas identificadas no texto:

[
  {"lat": -3.066, "lon": -60.15, "name": "Rio Negro", "type": "rio", "weight": 0.85},
  {"lat": -3.1190275, "lon": -60.0217314, "name": "Manaus", "type": "cidade", "weight": 0.95}
]

Espero que ajude!`

	points, err := ParsePoints(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[1].Name != "Manaus" {
		t.Errorf("expected second point Manaus, got %s", points[1].Name)
	}
}

func TestParsePoints_CodeFence(t *testing.T) {
	input := "```json\n[{\"lat\": -2.6287, \"lon\": -56.7356, \"name\": \"Parintins\", \"type\": \"cidade\", \"weight\": 0.8}]\n```"

	points, err := ParsePoints(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].Name != "Parintins" {
		t.Errorf("expected Parintins, got %s", points[0].Name)
	}
}

func TestParsePoints_NoArrayFound(t *testing.T) {
	points, err := ParsePoints("Não encontrei nenhum local específico no texto fornecido.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected empty result, got %d points", len(points))
	}
}

func TestParsePoints_MalformedArray(t *testing.T) {
	_, err := ParsePoints(`[{"lat": -3.1, "lon": }]`)
	if err == nil {
		t.Fatal("expected error for malformed array")
	}
}

func TestParseObject_WithPreamble(t *testing.T) {
	input := `Segue a estratégia de amostragem recomendada:
{
  "densidade_pontos": 10,
  "raio_amostragem": 2.5,
  "altitude_voo": 800,
  "areas_prioritarias": ["margem do rio", "floresta densa"],
  "epoca_ideal": "estação seca"
}`

	var strategy model.SamplingStrategy
	if err := ParseObject(input, &strategy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy.PointDensity != 10 {
		t.Errorf("expected density 10, got %d", strategy.PointDensity)
	}
	if len(strategy.PriorityAreas) != 2 {
		t.Errorf("expected 2 priority areas, got %d", len(strategy.PriorityAreas))
	}
}

func TestParseObject_Invalid(t *testing.T) {
	var strategy model.SamplingStrategy
	if err := ParseObject("nada de JSON aqui", &strategy); err == nil {
		t.Fatal("expected error for non-JSON input")
	}
}
