package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jesusmjunior/jesusqgis/internal/model"
	"github.com/jesusmjunior/jesusqgis/internal/store"
)

var strategyCmd = &cobra.Command{
	Use:   "strategy [text]",
	Short: "Ask the model for recommended LiDAR sampling parameters",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		// Default to the latest run's text and points so the
		// recommendation matches what was analyzed.
		run, err := s.LatestRun()
		if err != nil {
			return err
		}

		var text string
		if len(args) == 1 {
			text = args[0]
		} else if run != nil {
			text = run.Text
		} else {
			return fmt.Errorf("no text given and no stored runs to draw from")
		}

		client, err := newGeminiClient()
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		var runPoints []model.GeoPoint
		if run != nil {
			runPoints = run.Points
		}

		strategy, err := client.SamplingStrategy(ctx, text, runPoints)
		if err != nil {
			return fmt.Errorf("requesting sampling strategy: %w", err)
		}

		fmt.Printf("Recommended LiDAR sampling\n")
		fmt.Printf("==========================\n")
		fmt.Printf("Point density:   %d pts/m²\n", strategy.PointDensity)
		fmt.Printf("Sample radius:   %.3f degrees\n", strategy.SampleRadius)
		fmt.Printf("Flight altitude: %.0f m\n", strategy.FlightAltitude)
		fmt.Printf("Priority areas:  %s\n", strings.Join(strategy.PriorityAreas, ", "))
		fmt.Printf("Ideal season:    %s\n", strategy.IdealSeason)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(strategyCmd)
}
