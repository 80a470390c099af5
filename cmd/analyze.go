package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jesusmjunior/jesusqgis/internal/extractor"
	"github.com/jesusmjunior/jesusqgis/internal/gazetteer"
	"github.com/jesusmjunior/jesusqgis/internal/model"
	"github.com/jesusmjunior/jesusqgis/internal/store"
)

var (
	analyzeSemantic    bool
	analyzeModel       string
	analyzeReport      bool
	analyzeTemperature float64
	analyzeThreshold   float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Extract geographic points from a region description using the Gemini API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := args[0]

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		if !cmd.Flags().Changed("model") {
			analyzeModel = cfg.Gemini.Model
		}
		if !cmd.Flags().Changed("temperature") {
			analyzeTemperature = cfg.Gemini.Temperature
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		mode := "direct"
		if analyzeSemantic {
			mode = "semantic"
		}

		points, fallback := runExtraction(ctx, s, text, mode)

		if filtered := model.FilterByWeight(points, analyzeThreshold); len(filtered) > 0 {
			points = filtered
		} else if analyzeThreshold > 0 {
			fmt.Fprintln(os.Stderr, "WARNING: no points above the importance threshold, using the fallback dataset")
			points = model.DefaultPoints()
			fallback = true
		}

		lat, lon, _ := model.Centroid(points)
		run := &model.AnalysisRun{
			ID:        uuid.NewString(),
			Text:      text,
			Mode:      mode,
			Model:     analyzeModel,
			CenterLat: lat,
			CenterLon: lon,
			Fallback:  fallback,
			Points:    points,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.WriteRun(run); err != nil {
			return fmt.Errorf("saving run: %w", err)
		}

		if fallback {
			fmt.Println("Extraction unavailable, using the Manaus reference dataset.")
		}
		fmt.Printf("Run %s: %d points, center (%.4f, %.4f)\n", run.ID, len(points), lat, lon)
		for _, p := range points {
			fmt.Printf("  %-30s %-12s (%.4f, %.4f) weight %.2f\n", p.Name, p.Type, p.Lat, p.Lon, p.Weight)
		}

		if analyzeReport && !fallback {
			client, err := newGeminiClient()
			if err != nil {
				return err
			}
			report, err := client.AnalyzeRegion(ctx, text, points)
			if err != nil {
				return fmt.Errorf("generating analysis report: %w", err)
			}
			fmt.Printf("\n%s\n", report)
		}

		return nil
	},
}

// runExtraction runs (or replays from cache) the extraction for the
// given text. Any failure degrades to the fallback dataset.
func runExtraction(ctx context.Context, s *store.Store, text, mode string) ([]model.GeoPoint, bool) {
	hash := store.InputHash(text)
	if cached, err := s.CachedExtraction(hash, mode); err == nil && len(cached) > 0 {
		logVerbose("reusing cached extraction for this input")
		return cached, false
	}

	client, err := newGeminiClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
		return model.DefaultPoints(), true
	}

	var points []model.GeoPoint
	if mode == "semantic" {
		points, err = client.ExtractSemantic(ctx, text, func(layer int, name string) {
			logVerbose("semantic layer %d/5: %s", layer, name)
		})
	} else {
		points, err = client.ExtractPoints(ctx, text, analyzeTemperature)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: extraction failed: %v\n", err)
		return model.DefaultPoints(), true
	}
	if len(points) == 0 {
		return model.DefaultPoints(), true
	}
	points = gazetteer.Backfill(points)

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.WriteCachedExtraction(hash, mode, analyzeModel, now, points); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: caching extraction: %v\n", err)
	}
	return points, false
}

func newGeminiClient() (*extractor.Client, error) {
	name := analyzeModel
	if name == "" {
		name = cfg.Gemini.Model
	}
	return extractor.NewClient(name, cfg.Gemini.MaxTokens, cfg.Gemini.RateLimit)
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeSemantic, "semantic", false, "Use the layered semantic extraction pipeline")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Gemini model to use (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeTemperature, "temperature", 0.2, "Sampling temperature for direct extraction")
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", 0, "Drop points with importance below this weight")
	analyzeCmd.Flags().BoolVar(&analyzeReport, "report", false, "Also generate a long-form analysis of the region")
	rootCmd.AddCommand(analyzeCmd)
}
