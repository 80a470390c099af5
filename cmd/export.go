package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jesusmjunior/jesusqgis/internal/export"
	"github.com/jesusmjunior/jesusqgis/internal/lidar"
	"github.com/jesusmjunior/jesusqgis/internal/model"
	"github.com/jesusmjunior/jesusqgis/internal/store"
)

var (
	exportRunID string
	exportCloud bool
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Package an analysis run as a QGIS-ready zip bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		var run *model.AnalysisRun
		if exportRunID != "" {
			run, err = s.ReadRun(exportRunID)
			if err != nil {
				return fmt.Errorf("reading run %s: %w", exportRunID, err)
			}
		} else {
			run, err = s.LatestRun()
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("no analysis runs stored, run analyze first")
			}
		}

		bundle := export.Bundle{
			Title:  cfg.Export.ProjectTitle,
			Points: run.Points,
		}

		if exportCloud {
			params := lidar.Params{
				CenterLat:          run.CenterLat,
				CenterLon:          run.CenterLon,
				Radius:             cfg.Lidar.Radius,
				Points:             cfg.Lidar.Points,
				ForestRatio:        cfg.Lidar.ForestRatio,
				WaterRatio:         cfg.Lidar.WaterRatio,
				TerrainVariability: 1.0,
				Seed:               cfg.Lidar.Seed,
			}
			bundle.Cloud, err = lidar.Generate(params)
			if err != nil {
				return fmt.Errorf("generating point cloud: %w", err)
			}
			logVerbose("generated %d point cloud returns", len(bundle.Cloud))
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOut, err)
		}
		defer f.Close()

		if err := export.WriteBundle(f, bundle); err != nil {
			return fmt.Errorf("writing bundle: %w", err)
		}

		fmt.Printf("Exported run %s (%d points) to %s\n", run.ID, len(run.Points), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRunID, "run", "", "Run ID to export (default: most recent)")
	exportCmd.Flags().BoolVar(&exportCloud, "cloud", true, "Include a synthetic LiDAR point cloud")
	exportCmd.Flags().StringVar(&exportOut, "out", "amazonia_gaia_digital_qgis.zip", "Output zip path")
	rootCmd.AddCommand(exportCmd)
}
