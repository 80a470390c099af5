package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

const schemaVersion = "1"

// Store manages all data persistence via DuckDB: analysis runs, their
// resolved points, and a cache of raw LLM extractions keyed by input.
type Store struct {
	DB      *sql.DB
	DataDir string
}

// New opens (or creates) a DuckDB database in the given data directory.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "jesusqgis.duckdb")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	s := &Store{DB: db, DataDir: dataDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate() error {
	seqs := []string{
		"CREATE SEQUENCE IF NOT EXISTS run_points_seq",
	}
	for _, seq := range seqs {
		if _, err := s.DB.Exec(seq); err != nil {
			return fmt.Errorf("creating sequence: %w", err)
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			input_text TEXT NOT NULL,
			mode TEXT NOT NULL,
			model TEXT NOT NULL,
			center_lat DOUBLE NOT NULL,
			center_lon DOUBLE NOT NULL,
			fallback BOOLEAN NOT NULL DEFAULT false,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_points (
			id INTEGER PRIMARY KEY DEFAULT nextval('run_points_seq'),
			run_id TEXT NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			category TEXT,
			lat DOUBLE NOT NULL,
			lon DOUBLE NOT NULL,
			weight DOUBLE
		)`,
		`CREATE TABLE IF NOT EXISTS extraction_cache (
			input_hash TEXT NOT NULL,
			mode TEXT NOT NULL,
			model TEXT NOT NULL,
			points TEXT NOT NULL,
			cached_at TEXT NOT NULL,
			PRIMARY KEY (input_hash, mode)
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", stmt[:40], err)
		}
	}

	if _, err := s.DB.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion); err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}

	return nil
}

// SchemaVersion reports the schema the database was last migrated to.
func (s *Store) SchemaVersion() string {
	var v string
	s.DB.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&v)
	return v
}

// InputHash returns the cache key for an analysis input.
func InputHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// WriteRun saves a run and its resolved points.
func (s *Store) WriteRun(run *model.AnalysisRun) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO runs (id, input_text, mode, model, center_lat, center_lon, fallback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Text, run.Mode, run.Model, run.CenterLat, run.CenterLon, run.Fallback, run.CreatedAt); err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	if _, err := tx.Exec("DELETE FROM run_points WHERE run_id = ?", run.ID); err != nil {
		return err
	}

	for _, p := range run.Points {
		if _, err := tx.Exec(
			"INSERT INTO run_points (run_id, name, type, category, lat, lon, weight) VALUES (?, ?, ?, ?, ?, ?, ?)",
			run.ID, p.Name, p.Type, string(p.Category), p.Lat, p.Lon, p.Weight); err != nil {
			return fmt.Errorf("inserting point %q: %w", p.Name, err)
		}
	}

	return tx.Commit()
}

// ReadRun loads a run and its points.
func (s *Store) ReadRun(id string) (*model.AnalysisRun, error) {
	run := &model.AnalysisRun{ID: id}
	err := s.DB.QueryRow(
		"SELECT input_text, mode, model, center_lat, center_lon, fallback, created_at FROM runs WHERE id = ?", id).
		Scan(&run.Text, &run.Mode, &run.Model, &run.CenterLat, &run.CenterLon, &run.Fallback, &run.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(
		"SELECT name, type, category, lat, lon, weight FROM run_points WHERE run_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p model.GeoPoint
		var category sql.NullString
		var weight sql.NullFloat64
		if err := rows.Scan(&p.Name, &p.Type, &category, &p.Lat, &p.Lon, &weight); err != nil {
			return nil, err
		}
		p.Category = model.PointCategory(category.String)
		p.Weight = weight.Float64
		run.Points = append(run.Points, p)
	}

	return run, rows.Err()
}

// LatestRun returns the most recent run, or nil when none exist.
func (s *Store) LatestRun() (*model.AnalysisRun, error) {
	var id string
	err := s.DB.QueryRow("SELECT id FROM runs ORDER BY created_at DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.ReadRun(id)
}

// ListRuns returns all runs, newest first, without their points.
func (s *Store) ListRuns() ([]model.AnalysisRun, error) {
	rows, err := s.DB.Query(
		"SELECT id, input_text, mode, model, center_lat, center_lon, fallback, created_at FROM runs ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.AnalysisRun
	for rows.Next() {
		var run model.AnalysisRun
		if err := rows.Scan(&run.ID, &run.Text, &run.Mode, &run.Model,
			&run.CenterLat, &run.CenterLon, &run.Fallback, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CachedExtraction returns the cached points for an input, or nil when
// the input has not been extracted in this mode before.
func (s *Store) CachedExtraction(inputHash, mode string) ([]model.GeoPoint, error) {
	var raw string
	err := s.DB.QueryRow(
		"SELECT points FROM extraction_cache WHERE input_hash = ? AND mode = ?", inputHash, mode).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var points []model.GeoPoint
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		return nil, fmt.Errorf("decoding cached extraction: %w", err)
	}
	return points, nil
}

// WriteCachedExtraction stores extraction results for reuse.
func (s *Store) WriteCachedExtraction(inputHash, mode, llmModel, cachedAt string, points []model.GeoPoint) error {
	raw, err := json.Marshal(points)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(
		"INSERT OR REPLACE INTO extraction_cache (input_hash, mode, model, points, cached_at) VALUES (?, ?, ?, ?, ?)",
		inputHash, mode, llmModel, string(raw), cachedAt)
	return err
}

// RunCount reports how many runs are stored.
func (s *Store) RunCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n
}

// PointCount reports how many resolved points are stored across runs.
func (s *Store) PointCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM run_points").Scan(&n)
	return n
}

// CacheCount reports how many extractions are cached.
func (s *Store) CacheCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM extraction_cache").Scan(&n)
	return n
}

// RunCountByMode breaks the run count down by extraction mode.
func (s *Store) RunCountByMode() map[string]int {
	counts := make(map[string]int)
	rows, err := s.DB.Query("SELECT mode, COUNT(*) FROM runs GROUP BY mode")
	if err != nil {
		return counts
	}
	defer rows.Close()
	for rows.Next() {
		var mode string
		var n int
		if rows.Scan(&mode, &n) == nil {
			counts[mode] = n
		}
	}
	return counts
}
