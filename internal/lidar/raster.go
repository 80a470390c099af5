package lidar

import (
	"fmt"
	"math"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

// AggMethod selects how point values collapse into a grid cell.
type AggMethod string

const (
	AggMean  AggMethod = "mean"
	AggMax   AggMethod = "max"
	AggMin   AggMethod = "min"
	AggCount AggMethod = "count"
)

// Grid is a rasterized view of a point cloud. Cells without data hold
// NaN. Row 0 is the northern edge.
type Grid struct {
	Width, Height int
	XMin, YMax    float64 // origin: top-left corner
	Resolution    float64 // degrees per cell
	Cells         []float64
}

// At returns the cell value at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.Cells[row*g.Width+col]
}

func (g *Grid) set(row, col int, v float64) {
	g.Cells[row*g.Width+col] = v
}

// Rasterize collapses sample points onto a regular grid of the given
// resolution, aggregating the chosen attribute per cell.
func Rasterize(points []model.SamplePoint, attr func(model.SamplePoint) float64, resolution float64, method AggMethod) (*Grid, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points to rasterize")
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("resolution must be positive, got %g", resolution)
	}

	xmin, ymin := points[0].X, points[0].Y
	xmax, ymax := xmin, ymin
	for _, p := range points[1:] {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	xmin -= resolution
	ymin -= resolution
	xmax += resolution
	ymax += resolution

	width := int((xmax - xmin) / resolution)
	height := int((ymax - ymin) / resolution)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("degenerate raster extent %dx%d", width, height)
	}

	g := &Grid{
		Width:      width,
		Height:     height,
		XMin:       xmin,
		YMax:       ymax,
		Resolution: resolution,
		Cells:      make([]float64, width*height),
	}
	counts := make([]int, width*height)
	for i := range g.Cells {
		g.Cells[i] = math.NaN()
	}

	for _, p := range points {
		col := int((p.X - xmin) / resolution)
		row := int((ymax - p.Y) / resolution) // raster rows grow southward
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}

		v := attr(p)
		cur := g.At(row, col)
		idx := row*width + col

		switch method {
		case AggMax:
			if math.IsNaN(cur) || v > cur {
				g.set(row, col, v)
			}
		case AggMin:
			if math.IsNaN(cur) || v < cur {
				g.set(row, col, v)
			}
		case AggCount:
			if math.IsNaN(cur) {
				g.set(row, col, 1)
			} else {
				g.set(row, col, cur+1)
			}
		default: // mean
			if math.IsNaN(cur) {
				g.set(row, col, v)
			} else {
				g.set(row, col, (cur*float64(counts[idx])+v)/float64(counts[idx]+1))
			}
		}
		counts[idx]++
	}

	return g, nil
}

// Elevation and Intensity are the usual attribute selectors for Rasterize.
func Elevation(p model.SamplePoint) float64 { return p.Z }
func Intensity(p model.SamplePoint) float64 { return float64(p.Intensity) }

// Heatmap builds a gaussian-smoothed density surface from weighted
// geographic points, normalized to [0,1].
func Heatmap(points []model.GeoPoint, resolution, radius float64) (*Grid, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points for heatmap")
	}
	if resolution <= 0 || radius <= 0 {
		return nil, fmt.Errorf("resolution and radius must be positive")
	}

	xmin, ymin := points[0].Lon, points[0].Lat
	xmax, ymax := xmin, ymin
	for _, p := range points[1:] {
		xmin = math.Min(xmin, p.Lon)
		xmax = math.Max(xmax, p.Lon)
		ymin = math.Min(ymin, p.Lat)
		ymax = math.Max(ymax, p.Lat)
	}
	xmin -= radius
	ymin -= radius
	xmax += radius
	ymax += radius

	width := int((xmax - xmin) / resolution)
	height := int((ymax - ymin) / resolution)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("degenerate heatmap extent %dx%d", width, height)
	}

	g := &Grid{
		Width:      width,
		Height:     height,
		XMin:       xmin,
		YMax:       ymax,
		Resolution: resolution,
		Cells:      make([]float64, width*height),
	}

	radiusCells := int(radius / resolution)
	if radiusCells < 1 {
		radiusCells = 1
	}
	for _, p := range points {
		weight := p.Weight
		if weight == 0 {
			weight = 1.0
		}

		centerCol := int((p.Lon - xmin) / resolution)
		centerRow := int((ymax - p.Lat) / resolution)

		rowMin := max(0, centerRow-radiusCells)
		rowMax := min(height, centerRow+radiusCells+1)
		colMin := max(0, centerCol-radiusCells)
		colMax := min(width, centerCol+radiusCells+1)

		for row := rowMin; row < rowMax; row++ {
			for col := colMin; col < colMax; col++ {
				dist := math.Hypot(float64(row-centerRow), float64(col-centerCol))
				if dist > float64(radiusCells) {
					continue
				}
				factor := math.Exp(-0.5*math.Pow(dist/float64(radiusCells), 2)) * weight
				g.Cells[row*g.Width+col] += factor
			}
		}
	}

	// Normalize to [0,1]
	peak := 0.0
	for _, v := range g.Cells {
		peak = math.Max(peak, v)
	}
	if peak > 0 {
		for i := range g.Cells {
			g.Cells[i] /= peak
		}
	}

	return g, nil
}
