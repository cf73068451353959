package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"weekender/config"
	"weekender/types"
)

const placesSearchURL = "https://places.googleapis.com/v1/places:searchText"

// Fields requested from the Places API. Anything not listed here is not
// returned, so this mask is the single place to extend when records grow.
const placesFieldMask = "places.displayName,places.formattedAddress,places.rating," +
	"places.userRatingCount,places.priceLevel,places.websiteUri,places.googleMapsUri," +
	"places.types,places.regularOpeningHours.weekdayDescriptions"

// attractionQueries maps a category label to the text query used for it.
var attractionQueries = map[string]string{
	"museum":      "best museums in %s",
	"park":        "best parks and outdoor spaces in %s",
	"landmark":    "famous landmarks in %s",
	"art gallery": "art galleries in %s",
	"tour":        "best tours and activities in %s",
}

var priceLevelSymbols = map[string]string{
	"PRICE_LEVEL_FREE":           "Free",
	"PRICE_LEVEL_INEXPENSIVE":    "$",
	"PRICE_LEVEL_MODERATE":       "$$",
	"PRICE_LEVEL_EXPENSIVE":      "$$$",
	"PRICE_LEVEL_VERY_EXPENSIVE": "$$$$",
}

// GooglePlaces wraps the Places API (v1) text search.
type GooglePlaces struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGooglePlaces(apiKey string) *GooglePlaces {
	return &GooglePlaces{
		apiKey:     apiKey,
		baseURL:    placesSearchURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *GooglePlaces) Enabled() bool {
	return g != nil && g.apiKey != ""
}

// SearchDining returns highly rated restaurants. With a neighborhood the
// query is scoped to it, otherwise it covers the whole city. Results below
// the rating and review floors are dropped.
func (g *GooglePlaces) SearchDining(ctx context.Context, city, neighborhood string) ([]types.Record, error) {
	query := fmt.Sprintf("best restaurants in %s", city)
	if neighborhood != "" {
		query = fmt.Sprintf("best restaurants in %s, %s", neighborhood, city)
	}

	places, err := g.searchText(ctx, query)
	if err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(places))
	for _, p := range places {
		if p.Rating < config.MinRating || p.UserRatingCount < config.MinReviews {
			continue
		}
		rec := p.toRecord()
		rec.Neighborhood = neighborhood
		rec.CuisineType = cuisineFromTypes(p.Types)
		records = append(records, rec)
		if len(records) >= config.MaxResultsPerQuery {
			break
		}
	}
	return records, nil
}

// SearchAttractions runs one query per attraction category and tags each
// result with its category.
func (g *GooglePlaces) SearchAttractions(ctx context.Context, city string) ([]types.Record, error) {
	var records []types.Record
	var lastErr error

	for category, pattern := range attractionQueries {
		places, err := g.searchText(ctx, fmt.Sprintf(pattern, city))
		if err != nil {
			// One failing category query should not sink the rest.
			lastErr = err
			continue
		}

		count := 0
		for _, p := range places {
			if p.Rating < config.MinRating {
				continue
			}
			rec := p.toRecord()
			rec.CategoryTag = category
			records = append(records, rec)
			count++
			if count >= config.MaxResultsPerQuery {
				break
			}
		}
	}

	if len(records) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return records, nil
}

func (g *GooglePlaces) searchText(ctx context.Context, query string) ([]place, error) {
	body, err := json.Marshal(map[string]interface{}{
		"textQuery":      query,
		"maxResultCount": 20,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", g.apiKey)
	req.Header.Set("X-Goog-FieldMask", placesFieldMask)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}

	var payload struct {
		Places []place `json:"places"`
	}
	if err := decodeResponse(resp, g.baseURL, &payload); err != nil {
		return nil, err
	}
	return payload.Places, nil
}

type place struct {
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string   `json:"formattedAddress"`
	Rating           float64  `json:"rating"`
	UserRatingCount  int      `json:"userRatingCount"`
	PriceLevel       string   `json:"priceLevel"`
	WebsiteURI       string   `json:"websiteUri"`
	GoogleMapsURI    string   `json:"googleMapsUri"`
	Types            []string `json:"types"`
	RegularOpeningHours struct {
		WeekdayDescriptions []string `json:"weekdayDescriptions"`
	} `json:"regularOpeningHours"`
}

func (p place) toRecord() types.Record {
	return types.Record{
		Name:        p.DisplayName.Text,
		Address:     p.FormattedAddress,
		Rating:      p.Rating,
		ReviewCount: p.UserRatingCount,
		PriceLevel:  priceLevelSymbols[p.PriceLevel],
		Website:     p.WebsiteURI,
		URL:         p.GoogleMapsURI,
		Types:       p.Types,
		Hours:       strings.Join(p.RegularOpeningHours.WeekdayDescriptions, "; "),
		Source:      types.SourceGooglePlaces,
	}
}

// cuisineFromTypes picks the most specific cuisine-ish type the API
// returned, skipping the generic labels every restaurant carries.
func cuisineFromTypes(placeTypes []string) string {
	for _, t := range placeTypes {
		switch t {
		case "restaurant", "food", "point_of_interest", "establishment":
			continue
		}
		if strings.HasSuffix(t, "_restaurant") {
			words := strings.Split(strings.TrimSuffix(t, "_restaurant"), "_")
			for i, w := range words {
				if w != "" {
					words[i] = strings.ToUpper(w[:1]) + w[1:]
				}
			}
			return strings.Join(words, " ")
		}
	}
	return ""
}
