package web

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jesusmjunior/jesusqgis/internal/config"
	"github.com/jesusmjunior/jesusqgis/internal/model"
	"github.com/jesusmjunior/jesusqgis/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := filepath.Join(os.TempDir(), "jesusqgis-web-test-"+t.Name())
	os.RemoveAll(dir)
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := store.New(dir)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return &Server{
		Store:  s,
		Config: config.Defaults(),
		Addr:   "localhost:0",
		Logger: zap.NewNop(),
	}
}

func testHandler(t *testing.T, srv *Server) http.Handler {
	t.Helper()
	h, err := srv.routes()
	if err != nil {
		t.Fatalf("building routes: %v", err)
	}
	return h
}

func TestHandleAnalyze_FallbackWithoutExtractor(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	body := strings.NewReader(`{"text": "expedição pelo Rio Negro", "mode": "direct"}`)
	req := httptest.NewRequest("POST", "/api/analyze", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var run model.AnalysisRun
	if err := json.NewDecoder(w.Body).Decode(&run); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !run.Fallback {
		t.Error("expected fallback run without an extractor")
	}
	if len(run.Points) != 2 {
		t.Fatalf("expected 2 fallback points, got %d", len(run.Points))
	}
	if run.Points[0].Name != "Manaus" {
		t.Errorf("expected Manaus, got %s", run.Points[0].Name)
	}

	// The run is persisted
	stored, err := srv.Store.ReadRun(run.ID)
	if err != nil {
		t.Fatalf("reading stored run: %v", err)
	}
	if stored.Text != "expedição pelo Rio Negro" {
		t.Errorf("unexpected stored text %q", stored.Text)
	}
}

func TestHandleAnalyze_Validation(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	cases := []struct {
		name string
		body string
	}{
		{"empty text", `{"text": "", "mode": "direct"}`},
		{"bad mode", `{"text": "Manaus", "mode": "turbo"}`},
		{"temperature with semantic mode", `{"text": "Manaus", "mode": "semantic", "temperature": 0.7}`},
		{"not json", `texto solto`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestHandleSample(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	req := httptest.NewRequest("GET", "/api/sample?points=50&seed=7", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Points  []model.SamplePoint `json:"points"`
		Summary []json.RawMessage   `json:"summary"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Points) != 50 {
		t.Errorf("expected 50 points, got %d", len(resp.Points))
	}
	if len(resp.Summary) == 0 {
		t.Error("expected per-class summary")
	}
}

func TestHandleSample_InvalidParams(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	req := httptest.NewRequest("GET", "/api/sample?points=-5", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleExport_StreamsZip(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	run := &model.AnalysisRun{
		ID:        "run-1",
		Text:      "Manaus",
		Mode:      "direct",
		Model:     "gemini-2.0-flash",
		CenterLat: -3.1,
		CenterLon: -60.0,
		Points:    model.DefaultPoints(),
		CreatedAt: "2026-01-01T00:00:00Z",
	}
	if err := srv.Store.WriteRun(run); err != nil {
		t.Fatalf("writing run: %v", err)
	}

	body := strings.NewReader(`{"run_id": "run-1", "include_cloud": true, "cloud_points": 200}`)
	req := httptest.NewRequest("POST", "/api/export", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("expected zip content type, got %q", ct)
	}

	raw, _ := io.ReadAll(w.Body)
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("response is not a valid zip: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"amazonia_lidar.csv", "pontos_amazonia.geojson", "amazonia_gaia_digital.qgs"} {
		if !names[want] {
			t.Errorf("missing zip entry %s", want)
		}
	}
}

func TestHandleExport_NoRuns(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	req := httptest.NewRequest("POST", "/api/export", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestHandleGazetteer_List(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	req := httptest.NewRequest("GET", "/api/gazetteer", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var points []model.GeoPoint
	if err := json.NewDecoder(w.Body).Decode(&points); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(points) == 0 {
		t.Error("expected gazetteer entries")
	}
}

func TestHandleGazetteer_Resolve(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	req := httptest.NewRequest("GET", "/api/gazetteer?q=Manaus", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp struct {
		Point     model.GeoPoint `json:"point"`
		Precision string         `json:"precision"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Precision != "exact" {
		t.Errorf("expected exact precision, got %q", resp.Precision)
	}
	if resp.Point.Lat != -3.1190275 {
		t.Errorf("unexpected latitude %g", resp.Point.Lat)
	}
}

func TestHandleRunsAndHeatmap(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	run := &model.AnalysisRun{
		ID:        "run-1",
		Text:      "Manaus",
		Mode:      "direct",
		Model:     "gemini-2.0-flash",
		Points:    model.DefaultPoints(),
		CreatedAt: "2026-01-01T00:00:00Z",
	}
	if err := srv.Store.WriteRun(run); err != nil {
		t.Fatalf("writing run: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/runs", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var runs []model.AnalysisRun
	if err := json.NewDecoder(w.Body).Decode(&runs); err != nil {
		t.Fatalf("decoding runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	req = httptest.NewRequest("GET", "/api/runs/run-1/heatmap", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var grid struct {
		Width  int       `json:"width"`
		Height int       `json:"height"`
		Cells  []float64 `json:"cells"`
	}
	if err := json.NewDecoder(w.Body).Decode(&grid); err != nil {
		t.Fatalf("decoding heatmap: %v", err)
	}
	if grid.Width <= 0 || grid.Height <= 0 || len(grid.Cells) != grid.Width*grid.Height {
		t.Errorf("inconsistent grid %dx%d with %d cells", grid.Width, grid.Height, len(grid.Cells))
	}
}

func TestHandleRun_NotFound(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	run := &model.AnalysisRun{
		ID:        "run-1",
		Text:      "Manaus",
		Mode:      "direct",
		Model:     "gemini-2.0-flash",
		Points:    model.DefaultPoints(),
		CreatedAt: "2026-01-01T00:00:00Z",
	}
	if err := srv.Store.WriteRun(run); err != nil {
		t.Fatalf("writing run: %v", err)
	}

	for _, path := range []string{"/api/runs/no-such-run", "/api/runs/no-such-run/heatmap"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, w.Code)
		}
	}

	req := httptest.NewRequest("GET", "/api/runs/run-1", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for a stored run, got %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)
	h := testHandler(t, srv)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("unexpected status %v", resp["status"])
	}
}
