package extractor

import (
	"context"
	"fmt"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

// ExtractPoints asks the model for geographic points mentioned in text.
// An empty slice means the model found nothing usable; callers fall back
// to model.DefaultPoints.
func (c *Client) ExtractPoints(ctx context.Context, text string, temperature float64) ([]model.GeoPoint, error) {
	reply, err := c.Generate(ctx, buildPointExtractionPrompt(text), temperature)
	if err != nil {
		return nil, err
	}
	return ParsePoints(reply)
}

// AnalyzeRegion generates a long-form geospatial analysis of the region.
func (c *Client) AnalyzeRegion(ctx context.Context, text string, points []model.GeoPoint) (string, error) {
	return c.Generate(ctx, buildAnalysisPrompt(text, points), 0.3)
}

// SamplingStrategy asks the model for recommended LiDAR sampling
// parameters for the region.
func (c *Client) SamplingStrategy(ctx context.Context, text string, points []model.GeoPoint) (*model.SamplingStrategy, error) {
	reply, err := c.Generate(ctx, buildSamplingStrategyPrompt(text, points), 0.2)
	if err != nil {
		return nil, err
	}

	var strategy model.SamplingStrategy
	if err := ParseObject(reply, &strategy); err != nil {
		return nil, fmt.Errorf("parsing sampling strategy: %w", err)
	}
	return &strategy, nil
}
