package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

// File names inside the export bundle.
const (
	CloudCSVName   = "amazonia_lidar.csv"
	PointsGeoJSON  = "pontos_amazonia.geojson"
	ProjectQGSName = "amazonia_gaia_digital.qgs"
	ElevationQML   = "estilo_elevacao.qml"
	MetadataName   = "metadata.json"
	ReadmeName     = "README.txt"
)

type bundleMetadata struct {
	Project      string            `json:"project"`
	Description  string            `json:"description"`
	Files        []bundleFile      `json:"files"`
	Instructions map[string]string `json:"instructions"`
}

type bundleFile struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Path  string `json:"path"`
	Style string `json:"style,omitempty"`
}

// Bundle holds everything that goes into one downloadable export.
type Bundle struct {
	Title  string
	Points []model.GeoPoint
	Cloud  []model.SamplePoint
}

// WriteBundle writes the full QGIS export package as a zip: point-cloud
// CSV, points GeoJSON, their QML styles, the project file, metadata and
// a README with import instructions.
func WriteBundle(w io.Writer, b Bundle) error {
	zw := zip.NewWriter(w)

	meta := bundleMetadata{
		Project:     "GAIA DIGITAL",
		Description: "Análise geoespacial da Amazônia",
		Instructions: map[string]string{
			"pt_BR": "Abra o arquivo de projeto QGIS para visualizar todas as camadas configuradas.",
			"en_US": "Open the QGIS project file to view all configured layers.",
		},
	}

	var layers []Layer

	if len(b.Cloud) > 0 {
		if err := addEntry(zw, CloudCSVName, func(f io.Writer) error {
			return WritePointCloudCSV(f, b.Cloud)
		}); err != nil {
			return err
		}
		styleName := CloudCSVName + ".qml"
		if err := addEntry(zw, styleName, WritePointCloudQML); err != nil {
			return err
		}
		meta.Files = append(meta.Files, bundleFile{
			Name: CloudCSVName, Type: "lidar", Path: CloudCSVName, Style: styleName,
		})
		layers = append(layers, Layer{
			Path: CloudCSVName, Name: "Dados LiDAR", Type: "delimitedtext", Style: styleName,
		})

		// Ramp style for users who rasterize the elevations in QGIS
		if err := addEntry(zw, ElevationQML, WriteElevationQML); err != nil {
			return err
		}
		meta.Files = append(meta.Files, bundleFile{
			Name: ElevationQML, Type: "style", Path: ElevationQML,
		})
	}

	if len(b.Points) > 0 {
		if err := addEntry(zw, PointsGeoJSON, func(f io.Writer) error {
			return WriteGeoJSON(f, b.Points)
		}); err != nil {
			return err
		}
		styleName := PointsGeoJSON + ".qml"
		if err := addEntry(zw, styleName, func(f io.Writer) error {
			return WriteMarkerQML(f, IconShip)
		}); err != nil {
			return err
		}
		meta.Files = append(meta.Files, bundleFile{
			Name: PointsGeoJSON, Type: "points", Path: PointsGeoJSON, Style: styleName,
		})
		layers = append(layers, Layer{
			Path: PointsGeoJSON, Name: "Pontos de Interesse", Type: "vector", Style: styleName,
		})
	}

	if len(layers) > 0 {
		if err := addEntry(zw, ProjectQGSName, func(f io.Writer) error {
			return WriteProjectQGS(f, b.Title, layers)
		}); err != nil {
			return err
		}
		meta.Files = append(meta.Files, bundleFile{
			Name: ProjectQGSName, Type: "qgis_project", Path: ProjectQGSName,
		})
	}

	if err := addEntry(zw, MetadataName, func(f io.Writer) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return err
	}

	if err := addEntry(zw, ReadmeName, func(f io.Writer) error {
		return writeReadme(f, meta)
	}); err != nil {
		return err
	}

	return zw.Close()
}

func addEntry(zw *zip.Writer, name string, write func(io.Writer) error) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating zip entry %s: %w", name, err)
	}
	if err := write(f); err != nil {
		return fmt.Errorf("writing zip entry %s: %w", name, err)
	}
	return nil
}

func writeReadme(w io.Writer, meta bundleMetadata) error {
	if _, err := io.WriteString(w, `GAIA DIGITAL - Pacote de Dados Geoespaciais para QGIS
===================================================

Este pacote contém arquivos para análise geoespacial da Amazônia no QGIS.

ARQUIVOS INCLUÍDOS:
------------------
`); err != nil {
		return err
	}

	for _, f := range meta.Files {
		if _, err := fmt.Fprintf(w, "- %s (%s)\n", f.Name, f.Type); err != nil {
			return err
		}
		if f.Style != "" {
			if _, err := fmt.Fprintf(w, "  Estilo: %s\n", f.Style); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, `
INSTRUÇÕES:
----------
1. Extraia todos os arquivos para um diretório
2. Abra o arquivo de projeto QGIS (.qgs)
3. Se necessário, ajuste os caminhos das camadas no QGIS

Este pacote foi gerado pelo aplicativo GAIA DIGITAL para análise geoespacial amazônica.
`)
	return err
}
