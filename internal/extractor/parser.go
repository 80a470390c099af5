package extractor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

var jsonArrayRe = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)

// ParsePoints recovers a GeoPoint array from LLM free text. The model is
// asked for bare JSON but routinely wraps it in prose or code fences, so
// multiple strategies are tried in order. When no array is present at
// all, an empty list is returned without error; a recognizable but
// malformed array is an error.
func ParsePoints(text string) ([]model.GeoPoint, error) {
	raw, found := extractJSONArray(text)
	if !found {
		return []model.GeoPoint{}, nil
	}

	var points []model.GeoPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("parsing coordinate array: %w", err)
	}
	return points, nil
}

// extractJSONArray finds the first JSON array of objects in free text.
func extractJSONArray(text string) ([]byte, bool) {
	text = strings.TrimSpace(text)

	// Strategy 1: the reply is the array itself
	if strings.HasPrefix(text, "[") {
		if json.Valid([]byte(text)) {
			return []byte(text), true
		}
	}

	// Strategy 2: fenced code block
	for _, fence := range []string{"```json", "```"} {
		if idx := strings.Index(text, fence); idx >= 0 {
			after := text[idx+len(fence):]
			if end := strings.Index(after, "```"); end >= 0 {
				inner := strings.TrimSpace(after[:end])
				if m := jsonArrayRe.FindString(inner); m != "" {
					return []byte(m), true
				}
			}
		}
	}

	// Strategy 3: first array-of-objects substring anywhere in the prose
	if m := jsonArrayRe.FindString(text); m != "" {
		return []byte(m), true
	}

	return nil, false
}

// ParseObject recovers a single JSON object from LLM free text into v.
func ParseObject(text string, v any) error {
	text = strings.TrimSpace(text)

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			if err := json.Unmarshal([]byte(text[start:end+1]), v); err == nil {
				return nil
			}
		}
	}

	if idx := strings.Index(text, "```json"); idx >= 0 {
		after := text[idx+7:]
		if end := strings.Index(after, "```"); end >= 0 {
			if err := json.Unmarshal([]byte(strings.TrimSpace(after[:end])), v); err == nil {
				return nil
			}
		}
	}

	return fmt.Errorf("failed to parse response as JSON object: %.200s", text)
}
