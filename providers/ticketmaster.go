package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weekender/config"
	"weekender/types"
)

const ticketmasterBaseURL = "https://app.ticketmaster.com/discovery/v2/events.json"

// Classifications requested for the general events search. Music is
// excluded there because concerts are a separate category.
var eventClassifications = []string{"Sports", "Arts & Theatre", "Family", "Film", "Miscellaneous"}

// Ticketmaster wraps the Discovery API.
type Ticketmaster struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewTicketmaster(apiKey string) *Ticketmaster {
	return &Ticketmaster{
		apiKey:     apiKey,
		baseURL:    ticketmasterBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether the client has credentials to call the API.
func (t *Ticketmaster) Enabled() bool {
	return t != nil && t.apiKey != ""
}

// SearchConcerts returns music events near the city between the two dates
// (inclusive, YYYY-MM-DD).
func (t *Ticketmaster) SearchConcerts(ctx context.Context, city, startDate, endDate string) ([]types.Record, error) {
	return t.search(ctx, city, startDate, endDate, []string{"Music"}, config.ConcertSearchRadiusMiles)
}

// SearchEvents returns non-music events near the city between the two dates.
func (t *Ticketmaster) SearchEvents(ctx context.Context, city, startDate, endDate string) ([]types.Record, error) {
	return t.search(ctx, city, startDate, endDate, eventClassifications, config.EventSearchRadiusMiles)
}

func (t *Ticketmaster) search(ctx context.Context, city, startDate, endDate string, classifications []string, radiusMiles int) ([]types.Record, error) {
	coords, _ := config.CityCoordinates(city)

	params := url.Values{}
	params.Set("apikey", t.apiKey)
	params.Set("latlong", fmt.Sprintf("%.4f,%.4f", coords.Lat, coords.Lon))
	params.Set("radius", fmt.Sprintf("%d", radiusMiles))
	params.Set("unit", "miles")
	params.Set("startDateTime", startDate+"T00:00:00Z")
	params.Set("endDateTime", endDate+"T23:59:59Z")
	params.Set("size", fmt.Sprintf("%d", config.TicketmasterResultsLimit))
	params.Set("sort", "date,asc")
	for _, c := range classifications {
		params.Add("classificationName", c)
	}

	reqURL := t.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build ticketmaster request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ticketmaster request failed: %w", err)
	}

	var payload tmResponse
	if err := decodeResponse(resp, t.baseURL, &payload); err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(payload.Embedded.Events))
	for _, ev := range payload.Embedded.Events {
		records = append(records, ev.toRecord(city))
	}
	return records, nil
}

type tmResponse struct {
	Embedded struct {
		Events []tmEvent `json:"events"`
	} `json:"_embedded"`
}

type tmEvent struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	PriceRanges []struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"priceRanges"`
	Classifications []struct {
		Segment struct {
			Name string `json:"name"`
		} `json:"segment"`
		Genre struct {
			Name string `json:"name"`
		} `json:"genre"`
	} `json:"classifications"`
	Embedded struct {
		Venues []struct {
			Name    string `json:"name"`
			Address struct {
				Line1 string `json:"line1"`
			} `json:"address"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
		} `json:"venues"`
	} `json:"_embedded"`
}

func (ev tmEvent) toRecord(city string) types.Record {
	rec := types.Record{
		Name:     ev.Name,
		Date:     ev.Dates.Start.LocalDate,
		Time:     ev.Dates.Start.LocalTime,
		URL:      ev.URL,
		Location: city,
		Source:   types.SourceTicketmaster,
	}

	if len(ev.Embedded.Venues) > 0 {
		venue := ev.Embedded.Venues[0]
		rec.Venue = venue.Name
		rec.Address = venue.Address.Line1
		if venue.City.Name != "" {
			rec.Location = venue.City.Name
		}
	}

	if len(ev.PriceRanges) > 0 {
		pr := ev.PriceRanges[0]
		if pr.Max > pr.Min {
			rec.PriceRange = fmt.Sprintf("$%.0f-$%.0f", pr.Min, pr.Max)
		} else if pr.Min > 0 {
			rec.PriceRange = fmt.Sprintf("$%.0f", pr.Min)
		}
	}

	if len(ev.Classifications) > 0 {
		cls := ev.Classifications[0]
		if g := cls.Genre.Name; g != "" && !strings.EqualFold(g, "undefined") {
			rec.Genre = g
		}
		if s := cls.Segment.Name; s != "" && !strings.EqualFold(s, "undefined") {
			rec.CategoryTag = s
		}
	}
	return rec
}
