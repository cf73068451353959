package extraction

import (
	"fmt"
	"strings"

	"weekender/types"
)

// Field lists the model is asked to fill per category. Every field may be
// null; the rules below forbid guessing.
var categoryFields = map[types.Category]string{
	types.CategoryConcerts: `- name: artist or show name (REQUIRED)
- venue: venue name or null
- date: YYYY-MM-DD or null
- time: show time or null
- location: city/area or null
- price_range: e.g. "$25-$60" or null
- genre: music genre or null
- url: ticket or event page URL or null`,
	types.CategoryDining: `- name: restaurant name (REQUIRED)
- address: full address or null
- neighborhood: neighborhood name or null
- rating: numeric rating or null
- review_count: number of reviews or null
- price_level: "$", "$$", "$$$", or "$$$$" or null
- cuisine_type: type of cuisine or null
- website: restaurant website or null
- description: brief description (1-2 sentences) or null`,
	types.CategoryEvents: `- name: event name (REQUIRED)
- venue: venue name or null
- date: YYYY-MM-DD or null
- time: start time or null
- location: city/area or null
- price_range: ticket price or "Free" or null
- category: event category (sports, arts, family, ...) or null
- url: event page URL or null`,
	types.CategoryLocations: `- name: attraction name (REQUIRED)
- address: full address or null
- neighborhood: neighborhood or district or null
- category: attraction category (museum, park, landmark, ...) or null
- rating: numeric rating or null
- price_range: admission price or "Free" or null
- hours: opening hours or null
- description: brief description (1-2 sentences) or null`,
}

func systemPrompt(category types.Category, constraints Constraints) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an extraction engine. Extract every %s entry from the web content provided.\n\n", category)
	b.WriteString("For each entry extract:\n")
	b.WriteString(categoryFields[category])
	b.WriteString("\n\nRules:\n")
	b.WriteString("1. If a field is not present in the text, use null - NEVER guess or invent a value\n")
	fmt.Fprintf(&b, "2. Only include entries in or near %s\n", constraints.City)
	if constraints.StartDate != "" && constraints.EndDate != "" {
		fmt.Fprintf(&b, "3. Only include entries between %s and %s; entries without a date may be included with date null\n", constraints.StartDate, constraints.EndDate)
	}
	b.WriteString("\nReturn ONLY valid JSON in this shape:\n")
	b.WriteString(`{"records": [{"name": "...", ...}]}`)
	b.WriteString("\nReturn {\"records\": []} if nothing relevant is found.")
	return b.String()
}

func userPrompt(batch []types.RawDocument, category types.Category, constraints Constraints) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extract all %s entries for %s from these pages:\n\n", category, constraints.City)
	for _, doc := range batch {
		fmt.Fprintf(&b, "SOURCE: %s\n\n%s\n\n---\n\n", doc.SourceURL, doc.Content)
	}
	return b.String()
}
