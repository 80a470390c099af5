package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jesusmjunior/jesusqgis/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored runs and cache state",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Printf("Run Ledger\n")
		fmt.Printf("==========\n")
		fmt.Printf("Schema version:     %s\n", s.SchemaVersion())
		fmt.Printf("Analysis runs:      %d\n", s.RunCount())
		fmt.Printf("Resolved points:    %d\n", s.PointCount())
		fmt.Printf("Cached extractions: %d\n", s.CacheCount())

		byMode := s.RunCountByMode()
		if len(byMode) > 0 {
			fmt.Printf("\nRuns by Mode\n")
			fmt.Printf("------------\n")

			var modes []string
			for m := range byMode {
				modes = append(modes, m)
			}
			sort.Strings(modes)
			for _, m := range modes {
				fmt.Printf("  %-10s %d\n", m, byMode[m])
			}
		}

		runs, err := s.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) > 0 {
			fmt.Printf("\nRecent Runs\n")
			fmt.Printf("-----------\n")
			for i, run := range runs {
				if i == 5 {
					break
				}
				text := run.Text
				if len(text) > 48 {
					text = text[:48] + "..."
				}
				fmt.Printf("  %s  %-8s %s\n", run.CreatedAt, run.Mode, text)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
