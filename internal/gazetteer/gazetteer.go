// Package gazetteer resolves Amazonian entity names to geodetic
// coordinates against a fixed in-memory table, with substring and
// category fallbacks. Resolution never fails: anything unrecognized
// lands on the default city.
package gazetteer

import (
	"strings"

	"github.com/jesusmjunior/jesusqgis/internal/model"
)

// Precision is the 3-level ordinal describing how an entity resolved.
type Precision int

const (
	PrecisionExact    Precision = iota // exact normalized-name match
	PrecisionPartial                   // substring match
	PrecisionFallback                  // category default or default city
)

// Score maps the ordinal onto the weight attached to resolved points.
func (p Precision) Score() float64 {
	switch p {
	case PrecisionExact:
		return 0.95
	case PrecisionPartial:
		return 0.7
	default:
		return 0.4
	}
}

func (p Precision) String() string {
	switch p {
	case PrecisionExact:
		return "exact"
	case PrecisionPartial:
		return "partial"
	default:
		return "fallback"
	}
}

// Resolution pairs a resolved point with how it was matched.
type Resolution struct {
	Point     model.GeoPoint
	Precision Precision
}

// Resolve maps each entity to a coordinate. Lookup order: exact
// normalized name, substring in either direction, first entry of the
// category matching the entity's type, and finally the default city.
func Resolve(entities []model.GeoEntity) []Resolution {
	results := make([]Resolution, 0, len(entities))
	for _, e := range entities {
		results = append(results, resolveOne(e))
	}
	return results
}

// ResolvePoints is Resolve flattened to GeoPoints, with the precision
// score folded into each point's weight.
func ResolvePoints(entities []model.GeoEntity) []model.GeoPoint {
	resolutions := Resolve(entities)
	points := make([]model.GeoPoint, 0, len(resolutions))
	for _, r := range resolutions {
		points = append(points, r.Point)
	}
	return points
}

func resolveOne(e model.GeoEntity) Resolution {
	key := normalizeName(e.Name)

	if entry, ok := index[key]; ok {
		return resolution(e, entry, PrecisionExact)
	}

	// Substring pass: entity name inside a known name or vice versa.
	// Entries are scanned in table order so the match is deterministic.
	if key != "" {
		for _, entry := range entries {
			if strings.Contains(entry.key, key) || strings.Contains(key, entry.key) {
				return resolution(e, entry, PrecisionPartial)
			}
		}
	}

	// Category fallback: first hydrography entry for water entities,
	// first locality entry for everything else.
	category := categoryForType(e.Type)
	for _, entry := range entries {
		if entry.category == category {
			return resolution(e, entry, PrecisionFallback)
		}
	}

	return resolution(e, defaultEntry, PrecisionFallback)
}

func resolution(e model.GeoEntity, ent entry, p Precision) Resolution {
	name := e.Name
	if name == "" {
		name = ent.name
	}
	typ := e.Type
	if typ == "" {
		typ = ent.pointType
	}
	return Resolution{
		Point: model.GeoPoint{
			Name:     name,
			Type:     typ,
			Category: ent.category,
			Lat:      ent.lat,
			Lon:      ent.lon,
			Weight:   p.Score(),
		},
		Precision: p,
	}
}

// categoryForType buckets free-form entity types into gazetteer
// categories for the fallback pass.
func categoryForType(t string) model.PointCategory {
	t = normalizeName(t)
	switch {
	case strings.Contains(t, "rio"), strings.Contains(t, "lago"),
		strings.Contains(t, "igarapé"), strings.Contains(t, "igarape"),
		strings.Contains(t, "água"), strings.Contains(t, "agua"),
		strings.Contains(t, "hidro"):
		return model.CategoryHydrography
	case strings.Contains(t, "serra"), strings.Contains(t, "pico"),
		strings.Contains(t, "relevo"), strings.Contains(t, "montanha"):
		return model.CategoryRelief
	case strings.Contains(t, "floresta"), strings.Contains(t, "reserva"),
		strings.Contains(t, "parque"), strings.Contains(t, "vegeta"):
		return model.CategoryVegetation
	case strings.Contains(t, "estrada"), strings.Contains(t, "rodovia"),
		strings.Contains(t, "porto"), strings.Contains(t, "infra"):
		return model.CategoryInfrastructure
	default:
		return model.CategoryLocality
	}
}

func normalizeName(name string) string {
	// Strip square brackets — LLM output sometimes wraps names in them
	name = strings.NewReplacer("[", "", "]", "").Replace(name)
	return strings.ToLower(strings.TrimSpace(name))
}

// Entries returns the full gazetteer table as display points.
func Entries() []model.GeoPoint {
	points := make([]model.GeoPoint, 0, len(entries))
	for _, ent := range entries {
		points = append(points, model.GeoPoint{
			Name:     ent.name,
			Type:     ent.pointType,
			Category: ent.category,
			Lat:      ent.lat,
			Lon:      ent.lon,
			Weight:   1.0,
		})
	}
	return points
}

// Backfill resolves coordinates for extracted points the model left at
// the origin. Points that already carry coordinates pass through
// untouched.
func Backfill(points []model.GeoPoint) []model.GeoPoint {
	out := make([]model.GeoPoint, 0, len(points))
	for _, p := range points {
		if p.Lat == 0 && p.Lon == 0 {
			res := resolveOne(model.GeoEntity{Name: p.Name, Type: p.Type})
			res.Point.Weight = p.Weight
			if p.Weight == 0 {
				res.Point.Weight = res.Precision.Score()
			}
			if p.Category != "" {
				res.Point.Category = p.Category
			}
			out = append(out, res.Point)
			continue
		}
		out = append(out, p)
	}
	return out
}
