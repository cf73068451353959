package extraction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"weekender/merge"
	"weekender/types"
)

// extractedRecord mirrors the JSON shape the prompt requests. Numeric
// fields are declared as any because models emit "4.8" and 4.8
// interchangeably; coerceFloat/coerceInt accept both.
type extractedRecord struct {
	Name         string `json:"name"`
	Venue        string `json:"venue"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	Location     string `json:"location"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PriceRange   string `json:"price_range"`
	PriceLevel   string `json:"price_level"`
	Rating       any    `json:"rating"`
	ReviewCount  any    `json:"review_count"`
	Genre        string `json:"genre"`
	Category     string `json:"category"`
	CuisineType  string `json:"cuisine_type"`
	Website      string `json:"website"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	Source       string `json:"source"`
}

type extractionEnvelope struct {
	Records *[]extractedRecord `json:"records"`
}

// ParseResponse validates raw model output against the expected schema and
// converts it to records. Missing envelope or unparsable JSON is an error
// (extraction_failure upstream); an empty records list is a valid result.
// Records without a name are skipped: the schema marks name required and a
// nameless entity cannot be deduplicated.
func ParseResponse(raw string, category types.Category) ([]types.Record, error) {
	cleaned := stripCodeFences(raw)

	// Models occasionally wrap the JSON in prose; take the outermost object.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}
	cleaned = cleaned[start : end+1]

	decoder := json.NewDecoder(strings.NewReader(cleaned))
	decoder.UseNumber()

	var envelope extractionEnvelope
	if err := decoder.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if envelope.Records == nil {
		return nil, fmt.Errorf(`response missing "records" key`)
	}

	records := make([]types.Record, 0, len(*envelope.Records))
	for _, e := range *envelope.Records {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}

		rec := types.Record{
			Name:         e.Name,
			Venue:        e.Venue,
			Address:      e.Address,
			Neighborhood: e.Neighborhood,
			Location:     e.Location,
			Date:         merge.NormalizeDate(e.Date),
			Time:         e.Time,
			PriceRange:   e.PriceRange,
			PriceLevel:   e.PriceLevel,
			Genre:        e.Genre,
			CategoryTag:  e.Category,
			CuisineType:  e.CuisineType,
			Website:      e.Website,
			Description:  e.Description,
			URL:          e.URL,
			Source:       types.SourceWeb,
		}
		if e.Source != "" {
			rec.Source = e.Source
		}

		rec.Rating = coerceFloat(e.Rating)
		rec.ReviewCount = coerceInt(e.ReviewCount)

		records = append(records, rec)
	}
	return records, nil
}

func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}

func coerceInt(v any) int {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
