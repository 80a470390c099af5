// Package export renders analysis artifacts in QGIS-consumable formats:
// delimited-text point clouds, GeoJSON feature collections, QML styles,
// QGS project files and the downloadable zip bundle tying them together.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

// WritePointCloudCSV writes the synthetic point cloud as delimited text.
// The comment header carries the CRS and the classification legend so
// the file is self-describing when loaded as a QGIS text layer.
func WritePointCloudCSV(w io.Writer, points []model.SamplePoint) error {
	header := "# LIDAR data for QGIS - GAIA DIGITAL project\n" +
		"# CRS: EPSG:4326 (WGS 84)\n" +
		"# Classification codes:\n" +
		"# 1: Forest, 2: Water, 3: Low vegetation, 4: Ground, 5: Building\n"
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"X", "Y", "Z", "Intensity", "Classification", "ReturnNumber"}); err != nil {
		return err
	}

	for _, p := range points {
		rec := []string{
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
			strconv.FormatFloat(p.Z, 'f', -1, 64),
			strconv.Itoa(p.Intensity),
			strconv.Itoa(p.Classification),
			strconv.Itoa(p.ReturnNumber),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
