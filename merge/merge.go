// Package merge reconciles records from all sources for one category into
// a single deduplicated, sorted list.
package merge

import (
	"sort"
	"strings"

	"weekender/types"
)

// dateSentinel sorts records with no date after every dated record.
const dateSentinel = "9999-99-99"

// Merge deduplicates records by identity key and returns the canonical
// list plus the number of records dropped for lacking identity fields.
//
// On collision the first-seen record is the base; each field that is
// empty on the base and set on the incoming duplicate is copied over
// (first-non-null-wins per field, not whole-record replacement). The
// longer of two descriptions wins, since parsed documents tend to carry
// better narrative text than structured providers.
func Merge(records []types.Record, category types.Category) ([]types.Record, int) {
	index := make(map[string]int, len(records))
	merged := make([]types.Record, 0, len(records))
	dropped := 0

	for _, rec := range records {
		key := IdentityKey(rec, category)
		if key == "" {
			dropped++
			continue
		}

		i, seen := index[key]
		if !seen {
			index[key] = len(merged)
			merged = append(merged, rec)
			continue
		}
		merged[i] = mergeFields(merged[i], rec)
	}

	sortRecords(merged, category)
	return merged, dropped
}

func mergeFields(base, incoming types.Record) types.Record {
	fillString(&base.Venue, incoming.Venue)
	fillString(&base.Address, incoming.Address)
	fillString(&base.Neighborhood, incoming.Neighborhood)
	fillString(&base.Location, incoming.Location)
	fillString(&base.Date, incoming.Date)
	fillString(&base.Time, incoming.Time)
	fillString(&base.PriceRange, incoming.PriceRange)
	fillString(&base.PriceLevel, incoming.PriceLevel)
	fillString(&base.Genre, incoming.Genre)
	fillString(&base.CategoryTag, incoming.CategoryTag)
	fillString(&base.CuisineType, incoming.CuisineType)
	fillString(&base.URL, incoming.URL)
	fillString(&base.Website, incoming.Website)
	fillString(&base.Hours, incoming.Hours)

	if base.Rating == 0 {
		base.Rating = incoming.Rating
	}
	if base.ReviewCount == 0 {
		base.ReviewCount = incoming.ReviewCount
	}
	if len(base.Types) == 0 {
		base.Types = incoming.Types
	}

	// Prefer the longer description regardless of which side holds it.
	if len(strings.TrimSpace(incoming.Description)) > len(strings.TrimSpace(base.Description)) {
		base.Description = incoming.Description
	}

	return base
}

func fillString(dst *string, src string) {
	if strings.TrimSpace(*dst) == "" && strings.TrimSpace(src) != "" {
		*dst = src
	}
}

// sortRecords applies the category's natural ordering: ascending date for
// time-bound categories, quality score for the rest. Missing dates take a
// sentinel so they sort last deterministically.
func sortRecords(records []types.Record, category types.Category) {
	switch category {
	case types.CategoryConcerts, types.CategoryEvents:
		sort.SliceStable(records, func(i, j int) bool {
			return sortDate(records[i]) < sortDate(records[j])
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := records[i], records[j]
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			if a.ReviewCount != b.ReviewCount {
				return a.ReviewCount > b.ReviewCount
			}
			return a.Name < b.Name
		})
	}
}

func sortDate(r types.Record) string {
	if strings.TrimSpace(r.Date) == "" {
		return dateSentinel
	}
	return r.Date
}

// FilterByDateRange keeps records whose date falls within [start, end]
// inclusive. Records without a parseable date are excluded: a null date
// must never default to something a range filter would accept.
func FilterByDateRange(records []types.Record, start, end string) []types.Record {
	kept := make([]types.Record, 0, len(records))
	for _, r := range records {
		date := NormalizeDate(r.Date)
		if date == "" {
			continue
		}
		if date >= start && date <= end {
			kept = append(kept, r)
		}
	}
	return kept
}
