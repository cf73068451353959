package providers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"weekender/config"
	"weekender/extraction"
	"weekender/types"
)

// NeighborhoodFinder discovers the food neighborhoods of a city from web
// coverage. The dining pipeline runs it before its per-neighborhood
// searches.
type NeighborhoodFinder struct {
	search    *Tavily
	extractor extraction.Extractor
}

func NewNeighborhoodFinder(search *Tavily, extractor extraction.Extractor) *NeighborhoodFinder {
	return &NeighborhoodFinder{search: search, extractor: extractor}
}

// Find returns up to MaxNeighborhoods distinct neighborhood names. An
// empty result is valid; the caller then searches city-wide instead.
func (f *NeighborhoodFinder) Find(ctx context.Context, city string) ([]string, error) {
	if f == nil || !f.search.Enabled() || f.extractor == nil {
		return nil, nil
	}

	query := fmt.Sprintf("best neighborhoods for restaurants and food in %s", city)
	docs, err := f.search.SearchDocuments(ctx, query, 3)
	if err != nil {
		return nil, fmt.Errorf("neighborhood search failed: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	records, err := f.extractor.Extract(ctx, docs, types.CategoryLocations, extraction.Constraints{City: city})
	if err != nil {
		return nil, fmt.Errorf("neighborhood extraction failed: %w", err)
	}

	var names []string
	seen := make(map[string]bool)
	for _, rec := range records {
		name := strings.TrimSpace(rec.Neighborhood)
		if name == "" {
			name = strings.TrimSpace(rec.Name)
		}
		key := strings.ToLower(name)
		if name == "" || seen[key] || strings.EqualFold(name, city) {
			continue
		}
		seen[key] = true
		names = append(names, name)
		if len(names) >= config.MaxNeighborhoods {
			break
		}
	}

	log.Printf("[Neighborhoods] found %d neighborhoods for %s", len(names), city)
	return names, nil
}
