package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Layer describes one layer referenced by a generated QGIS project.
type Layer struct {
	Path  string
	Name  string
	Type  string // "vector", "raster" or "delimitedtext"
	Style string // optional path to a QML style
}

// Project-level XML structure for the .qgs dialect. Only the subset the
// desktop application needs to open the bundle is emitted.
type qgisProject struct {
	XMLName     xml.Name        `xml:"qgis"`
	ProjectName string          `xml:"projectname,attr"`
	Version     string          `xml:"version,attr"`
	ProjectCrs  projectCrs      `xml:"projectCrs"`
	MapCanvas   mapCanvas       `xml:"mapcanvas"`
	LayerTree   layerTreeGroup  `xml:"layer-tree-group"`
	LayerOrder  layerTreeCanvas `xml:"layer-tree-canvas"`
	MapLayers   []mapLayer      `xml:"maplayer"`
	Legend      legendLayers    `xml:"legendlayers"`
}

type projectCrs struct {
	SpatialRefSys spatialRefSys `xml:"spatialrefsys"`
}

type spatialRefSys struct {
	WKT               string `xml:"wkt"`
	Proj4             string `xml:"proj4"`
	SrsID             int    `xml:"srsid"`
	SrID              int    `xml:"srid"`
	AuthID            string `xml:"authid"`
	Description       string `xml:"description,omitempty"`
	ProjectionAcronym string `xml:"projectionacronym,omitempty"`
	EllipsoidAcronym  string `xml:"ellipsoidacronym,omitempty"`
	GeographicFlag    string `xml:"geographicflag,omitempty"`
}

type mapCanvas struct {
	Name     string `xml:"name,attr"`
	Units    string `xml:"units"`
	Extent   extent `xml:"extent"`
	Rotation int    `xml:"rotation"`
}

type extent struct {
	XMin float64 `xml:"xmin"`
	YMin float64 `xml:"ymin"`
	XMax float64 `xml:"xmax"`
	YMax float64 `xml:"ymax"`
}

type layerTreeGroup struct {
	Layers []layerTreeLayer `xml:"layer-tree-layer"`
}

type layerTreeLayer struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name,attr"`
	Checked  string `xml:"checked,attr"`
	Expanded string `xml:"expanded,attr"`
	Source   string `xml:"source,attr"`
}

type layerTreeCanvas struct {
	CustomOrder customOrder `xml:"custom-order"`
}

type customOrder struct {
	Enabled string   `xml:"enabled,attr"`
	Items   []string `xml:"item"`
}

type mapLayer struct {
	Type          string        `xml:"type,attr"`
	Geometry      string        `xml:"geometry,attr,omitempty"`
	ID            string        `xml:"id,attr"`
	Name          string        `xml:"name,attr"`
	ReadOnly      string        `xml:"readOnly,attr"`
	SpatialRefSys spatialRefSys `xml:"srs>spatialrefsys"`
}

type legendLayers struct {
	Layers []legendLayer `xml:"legendlayer"`
}

type legendLayer struct {
	Open             string `xml:"open,attr"`
	Checked          string `xml:"checked,attr"`
	Name             string `xml:"name,attr"`
	ShowFeatureCount string `xml:"showFeatureCount,attr"`
}

const wgs84WKT = `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]]`

func wgs84() spatialRefSys {
	return spatialRefSys{
		WKT:               wgs84WKT,
		Proj4:             "+proj=longlat +datum=WGS84 +no_defs",
		SrsID:             3452,
		SrID:              4326,
		AuthID:            "EPSG:4326",
		Description:       "WGS 84",
		ProjectionAcronym: "longlat",
		EllipsoidAcronym:  "WGS84",
		GeographicFlag:    "true",
	}
}

// WriteProjectQGS writes a QGIS project file referencing the given
// layers, with the WGS84 CRS and the central-Amazon default extent.
func WriteProjectQGS(w io.Writer, title string, layers []Layer) error {
	proj := qgisProject{
		ProjectName: title,
		Version:     "3.22.0-Białowieża",
		ProjectCrs:  projectCrs{SpatialRefSys: wgs84()},
		MapCanvas: mapCanvas{
			Name:  "theMapCanvas",
			Units: "degrees",
			// Approximate extent of the central Amazon basin
			Extent: extent{XMin: -65.0, YMin: -10.0, XMax: -50.0, YMax: 0.0},
		},
	}

	for i, layer := range layers {
		base := strings.TrimSuffix(filepath.Base(layer.Path), filepath.Ext(layer.Path))
		id := fmt.Sprintf("layer_%d_%s", i+1, base)

		proj.LayerTree.Layers = append(proj.LayerTree.Layers, layerTreeLayer{
			ID:       id,
			Name:     layer.Name,
			Checked:  "Qt::Checked",
			Expanded: "1",
			Source:   layer.Path,
		})

		geometry := ""
		if layer.Type == "vector" {
			geometry = "Point"
		}
		srs := wgs84()
		srs.Description = ""
		srs.ProjectionAcronym = ""
		srs.EllipsoidAcronym = ""
		srs.GeographicFlag = ""
		proj.MapLayers = append(proj.MapLayers, mapLayer{
			Type:          layer.Type,
			Geometry:      geometry,
			ID:            id,
			Name:          layer.Name,
			ReadOnly:      "0",
			SpatialRefSys: srs,
		})

		proj.Legend.Layers = append(proj.Legend.Layers, legendLayer{
			Open:             "true",
			Checked:          "Qt::Checked",
			Name:             layer.Name,
			ShowFeatureCount: "0",
		})

		proj.LayerOrder.CustomOrder.Items = append(proj.LayerOrder.CustomOrder.Items, id)
	}
	proj.LayerOrder.CustomOrder.Enabled = "0"

	if _, err := io.WriteString(w, "<!DOCTYPE qgis PUBLIC 'http://mrcc.com/qgis.dtd' 'SYSTEM'>\n"); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(proj); err != nil {
		return fmt.Errorf("encoding project XML: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
