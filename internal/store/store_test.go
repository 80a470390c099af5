package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := filepath.Join(os.TempDir(), "jesusqgis-store-test-"+t.Name())
	os.RemoveAll(dir)
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := New(dir)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(id string) *model.AnalysisRun {
	return &model.AnalysisRun{
		ID:        id,
		Text:      "expedição de Manaus até Anavilhanas pelo Rio Negro",
		Mode:      "direct",
		Model:     "gemini-2.0-flash",
		CenterLat: -2.9,
		CenterLon: -60.4,
		CreatedAt: "2026-01-01T00:00:00Z",
		Points: []model.GeoPoint{
			{Name: "Manaus", Type: "cidade", Category: model.CategoryLocality, Lat: -3.119, Lon: -60.022, Weight: 0.95},
			{Name: "Anavilhanas", Type: "área natural", Category: model.CategoryVegetation, Lat: -2.70, Lon: -60.75, Weight: 0.8},
		},
	}
}

func TestRunRoundTrip(t *testing.T) {
	s := testStore(t)

	run := testRun("run-1")
	if err := s.WriteRun(run); err != nil {
		t.Fatalf("writing run: %v", err)
	}

	got, err := s.ReadRun("run-1")
	if err != nil {
		t.Fatalf("reading run: %v", err)
	}

	if got.Text != run.Text {
		t.Errorf("expected text %q, got %q", run.Text, got.Text)
	}
	if got.Mode != "direct" {
		t.Errorf("expected mode direct, got %q", got.Mode)
	}
	if len(got.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got.Points))
	}
	if got.Points[0].Name != "Manaus" {
		t.Errorf("expected first point Manaus, got %q", got.Points[0].Name)
	}
	if got.Points[1].Category != model.CategoryVegetation {
		t.Errorf("expected vegetation category, got %q", got.Points[1].Category)
	}
}

func TestWriteRun_ReplacesPoints(t *testing.T) {
	s := testStore(t)

	run := testRun("run-1")
	if err := s.WriteRun(run); err != nil {
		t.Fatalf("writing run: %v", err)
	}

	run.Points = run.Points[:1]
	if err := s.WriteRun(run); err != nil {
		t.Fatalf("rewriting run: %v", err)
	}

	got, err := s.ReadRun("run-1")
	if err != nil {
		t.Fatalf("reading run: %v", err)
	}
	if len(got.Points) != 1 {
		t.Errorf("expected 1 point after rewrite, got %d", len(got.Points))
	}
	if s.RunCount() != 1 {
		t.Errorf("expected 1 run, got %d", s.RunCount())
	}
}

func TestLatestRun(t *testing.T) {
	s := testStore(t)

	if run, err := s.LatestRun(); err != nil || run != nil {
		t.Fatalf("expected no latest run on empty store, got %v, %v", run, err)
	}

	older := testRun("run-old")
	older.CreatedAt = "2026-01-01T00:00:00Z"
	newer := testRun("run-new")
	newer.CreatedAt = "2026-02-01T00:00:00Z"

	if err := s.WriteRun(older); err != nil {
		t.Fatalf("writing run: %v", err)
	}
	if err := s.WriteRun(newer); err != nil {
		t.Fatalf("writing run: %v", err)
	}

	got, err := s.LatestRun()
	if err != nil {
		t.Fatalf("reading latest run: %v", err)
	}
	if got.ID != "run-new" {
		t.Errorf("expected run-new, got %s", got.ID)
	}
}

func TestListRuns(t *testing.T) {
	s := testStore(t)

	for i, id := range []string{"a", "b", "c"} {
		run := testRun(id)
		run.CreatedAt = fmt.Sprintf("2026-01-0%dT00:00:00Z", i+1)
		if err := s.WriteRun(run); err != nil {
			t.Fatalf("writing run %s: %v", id, err)
		}
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("listing runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "c" {
		t.Errorf("expected newest run first, got %s", runs[0].ID)
	}
}

func TestExtractionCache(t *testing.T) {
	s := testStore(t)

	hash := InputHash("algum texto sobre a amazônia")

	cached, err := s.CachedExtraction(hash, "direct")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached != nil {
		t.Fatalf("expected cache miss, got %d points", len(cached))
	}

	points := []model.GeoPoint{
		{Name: "Tefé", Type: "cidade", Lat: -3.3541, Lon: -64.7106, Weight: 0.7},
	}
	if err := s.WriteCachedExtraction(hash, "direct", "gemini-2.0-flash", "2026-01-01T00:00:00Z", points); err != nil {
		t.Fatalf("writing cache: %v", err)
	}

	cached, err = s.CachedExtraction(hash, "direct")
	if err != nil {
		t.Fatalf("reading cache: %v", err)
	}
	if len(cached) != 1 || cached[0].Name != "Tefé" {
		t.Fatalf("unexpected cached points: %+v", cached)
	}

	// Same input, different mode is a distinct cache slot
	if other, _ := s.CachedExtraction(hash, "semantic"); other != nil {
		t.Errorf("semantic mode should miss, got %+v", other)
	}

	if s.CacheCount() != 1 {
		t.Errorf("expected 1 cached extraction, got %d", s.CacheCount())
	}
}

func TestInputHash_Stable(t *testing.T) {
	a := InputHash("texto")
	b := InputHash("texto")
	c := InputHash("outro texto")
	if a != b {
		t.Error("hash not stable for identical input")
	}
	if a == c {
		t.Error("different inputs produced the same hash")
	}
}

func TestCounts(t *testing.T) {
	s := testStore(t)

	direct := testRun("d1")
	semantic := testRun("s1")
	semantic.Mode = "semantic"

	if err := s.WriteRun(direct); err != nil {
		t.Fatalf("writing run: %v", err)
	}
	if err := s.WriteRun(semantic); err != nil {
		t.Fatalf("writing run: %v", err)
	}

	if s.RunCount() != 2 {
		t.Errorf("expected 2 runs, got %d", s.RunCount())
	}
	if s.PointCount() != 4 {
		t.Errorf("expected 4 points, got %d", s.PointCount())
	}

	byMode := s.RunCountByMode()
	if byMode["direct"] != 1 || byMode["semantic"] != 1 {
		t.Errorf("unexpected mode counts: %v", byMode)
	}
}

func TestSchemaVersion(t *testing.T) {
	s := testStore(t)
	if v := s.SchemaVersion(); v == "" {
		t.Error("expected a recorded schema version")
	}
}
