package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesusmjunior/jesusqgis/internal/gazetteer"
	"github.com/jesusmjunior/jesusqgis/internal/model"
)

var gazetteerType string

var gazetteerCmd = &cobra.Command{
	Use:   "gazetteer [name...]",
	Short: "Resolve entity names against the built-in Amazonian gazetteer",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Printf("%-32s %-14s %-16s %10s %11s\n", "Name", "Type", "Category", "Lat", "Lon")
			for _, p := range gazetteer.Entries() {
				fmt.Printf("%-32s %-14s %-16s %10.4f %11.4f\n", p.Name, p.Type, p.Category, p.Lat, p.Lon)
			}
			return nil
		}

		entities := make([]model.GeoEntity, 0, len(args))
		for _, name := range args {
			entities = append(entities, model.GeoEntity{Name: name, Type: gazetteerType})
		}

		for _, res := range gazetteer.Resolve(entities) {
			p := res.Point
			fmt.Printf("%-32s (%.4f, %.4f) %-16s match: %s\n",
				p.Name, p.Lat, p.Lon, p.Category, res.Precision)
		}
		return nil
	},
}

func init() {
	gazetteerCmd.Flags().StringVar(&gazetteerType, "type", "", "Entity type hint for the category fallback")
	rootCmd.AddCommand(gazetteerCmd)
}
