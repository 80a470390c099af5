package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jesusmjunior/jesusqgis/internal/export"
	"github.com/jesusmjunior/jesusqgis/internal/gazetteer"
	"github.com/jesusmjunior/jesusqgis/internal/lidar"
	"github.com/jesusmjunior/jesusqgis/internal/model"
	"github.com/jesusmjunior/jesusqgis/internal/store"
)

type analyzeRequest struct {
	Text        string  `json:"text"`
	Mode        string  `json:"mode"`
	Temperature float64 `json:"temperature,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		httpError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.Mode == "" {
		req.Mode = "direct"
	}
	if req.Mode != "direct" && req.Mode != "semantic" {
		httpError(w, http.StatusBadRequest, "mode must be \"direct\" or \"semantic\"")
		return
	}
	// The semantic pipeline runs each layer at its own fixed
	// temperature, so the request field only applies to direct mode.
	if req.Mode == "semantic" && req.Temperature != 0 {
		httpError(w, http.StatusBadRequest, "temperature applies to direct mode only")
		return
	}

	points, fallback := s.extractPoints(r, req)

	if filtered := model.FilterByWeight(points, req.Threshold); len(filtered) > 0 {
		points = filtered
	} else if req.Threshold > 0 {
		points = model.DefaultPoints()
		fallback = true
	}

	lat, lon, _ := model.Centroid(points)
	run := &model.AnalysisRun{
		ID:        uuid.NewString(),
		Text:      req.Text,
		Mode:      req.Mode,
		Model:     s.Config.Gemini.Model,
		CenterLat: lat,
		CenterLon: lon,
		Fallback:  fallback,
		Points:    points,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Store.WriteRun(run); err != nil {
		s.Logger.Error("saving run", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "saving run")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// extractPoints runs (or replays) the extraction for an analyze
// request. Any failure or empty result degrades to the fallback
// dataset instead of surfacing an error.
func (s *Server) extractPoints(r *http.Request, req analyzeRequest) ([]model.GeoPoint, bool) {
	hash := store.InputHash(req.Text)
	if cached, err := s.Store.CachedExtraction(hash, req.Mode); err == nil && len(cached) > 0 {
		return cached, false
	}

	if s.Extractor == nil {
		return model.DefaultPoints(), true
	}

	var points []model.GeoPoint
	var err error
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = s.Config.Gemini.Temperature
	}
	switch req.Mode {
	case "semantic":
		points, err = s.Extractor.ExtractSemantic(r.Context(), req.Text, nil)
	default:
		points, err = s.Extractor.ExtractPoints(r.Context(), req.Text, temperature)
	}
	if err != nil {
		s.Logger.Warn("extraction failed, using fallback dataset", zap.Error(err))
		return model.DefaultPoints(), true
	}
	if len(points) == 0 {
		return model.DefaultPoints(), true
	}
	points = gazetteer.Backfill(points)

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.Store.WriteCachedExtraction(hash, req.Mode, s.Config.Gemini.Model, now, points); err != nil {
		s.Logger.Warn("caching extraction", zap.Error(err))
	}
	return points, false
}

const maxSamplePoints = 50000

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	params := lidar.Params{
		CenterLat:          queryFloat(r, "lat", -3.1),
		CenterLon:          queryFloat(r, "lon", -60.0),
		Radius:             queryFloat(r, "radius", s.Config.Lidar.Radius),
		Points:             queryInt(r, "points", s.Config.Lidar.Points),
		ForestRatio:        queryFloat(r, "forest", s.Config.Lidar.ForestRatio),
		WaterRatio:         queryFloat(r, "water", s.Config.Lidar.WaterRatio),
		TerrainVariability: queryFloat(r, "variability", 1.0),
		Seed:               uint64(queryInt(r, "seed", int(s.Config.Lidar.Seed))),
	}

	// Cap the response size for the JSON transport
	if params.Points > maxSamplePoints {
		params.Points = maxSamplePoints
	}

	cloud, err := lidar.Generate(params)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"params":  params,
		"summary": lidar.Summarize(cloud),
		"points":  cloud,
	})
}

type exportRequest struct {
	RunID        string `json:"run_id"`
	IncludeCloud bool   `json:"include_cloud"`
	CloudPoints  int    `json:"cloud_points"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var run *model.AnalysisRun
	var err error
	if req.RunID != "" {
		run, err = s.Store.ReadRun(req.RunID)
	} else {
		run, err = s.Store.LatestRun()
	}
	if err != nil || run == nil {
		httpError(w, http.StatusNotFound, "no analysis run to export")
		return
	}

	bundle := export.Bundle{
		Title:  s.Config.Export.ProjectTitle,
		Points: run.Points,
	}
	if req.IncludeCloud {
		params := lidar.DefaultParams()
		params.CenterLat = run.CenterLat
		params.CenterLon = run.CenterLon
		params.Radius = s.Config.Lidar.Radius
		params.ForestRatio = s.Config.Lidar.ForestRatio
		params.WaterRatio = s.Config.Lidar.WaterRatio
		params.Seed = s.Config.Lidar.Seed
		params.Points = s.Config.Lidar.Points
		if req.CloudPoints > 0 {
			params.Points = req.CloudPoints
		}
		bundle.Cloud, err = lidar.Generate(params)
		if err != nil {
			httpError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "amazonia_gaia_digital_qgis.zip"))
	if err := export.WriteBundle(w, bundle); err != nil {
		s.Logger.Error("writing export bundle", zap.Error(err))
	}
}

func (s *Server) handleGazetteer(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("q")
	if name == "" {
		name = r.URL.Query().Get("name")
	}
	if name == "" {
		writeJSON(w, http.StatusOK, gazetteer.Entries())
		return
	}

	res := gazetteer.Resolve([]model.GeoEntity{{Name: name, Type: r.URL.Query().Get("type")}})[0]
	writeJSON(w, http.StatusOK, map[string]any{
		"point":     res.Point,
		"precision": res.Precision.String(),
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.Store.ListRuns()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []model.AnalysisRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.readRun(w, chi.URLParam(r, "id"))
	if run == nil || err != nil {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	run, err := s.readRun(w, chi.URLParam(r, "id"))
	if run == nil || err != nil {
		return
	}

	resolution := queryFloat(r, "resolution", 0.01)
	radius := queryFloat(r, "radius", 0.1)
	grid, err := lidar.Heatmap(run.Points, resolution, radius)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"width":      grid.Width,
		"height":     grid.Height,
		"x_min":      grid.XMin,
		"y_max":      grid.YMax,
		"resolution": grid.Resolution,
		"cells":      grid.Cells,
	})
}

// readRun loads a run by id and writes the error response itself: 404
// when the run does not exist, 500 when the store fails.
func (s *Server) readRun(w http.ResponseWriter, id string) (*model.AnalysisRun, error) {
	run, err := s.Store.ReadRun(id)
	if errors.Is(err, sql.ErrNoRows) {
		httpError(w, http.StatusNotFound, "run not found")
		return nil, err
	}
	if err != nil {
		s.Logger.Error("reading run", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "reading run")
		return nil, err
	}
	return run, nil
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
