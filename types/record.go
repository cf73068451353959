package types

// Source classifications for records and errors.
const (
	SourceTicketmaster = "ticketmaster"
	SourceGooglePlaces = "google_places"
	SourceWeb          = "web"
	SourceCityFeeds    = "city_feeds"
	SourceCache        = "cache"
)

// Category identifies one recommendation domain. Each category carries its
// own identity-key rule and sort order in the merge engine.
type Category string

const (
	CategoryConcerts  Category = "concerts"
	CategoryDining    Category = "dining"
	CategoryEvents    Category = "events"
	CategoryLocations Category = "locations"
)

// Record is a structured entity from a provider or the extraction service.
// Fields that a source does not supply stay at their zero value; the
// extraction service is required to leave them empty rather than guess.
type Record struct {
	Name         string   `json:"name"`
	Venue        string   `json:"venue,omitempty"`
	Address      string   `json:"address,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	Location     string   `json:"location,omitempty"`
	Date         string   `json:"date,omitempty"` // YYYY-MM-DD
	Time         string   `json:"time,omitempty"`
	PriceRange   string   `json:"price_range,omitempty"`
	PriceLevel   string   `json:"price_level,omitempty"` // "$".."$$$$"
	Rating       float64  `json:"rating,omitempty"`
	ReviewCount  int      `json:"review_count,omitempty"`
	Genre        string   `json:"genre,omitempty"`
	CategoryTag  string   `json:"category,omitempty"` // e.g. "Museums & Art"
	CuisineType  string   `json:"cuisine_type,omitempty"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Website      string   `json:"website,omitempty"`
	Hours        string   `json:"hours,omitempty"`
	Types        []string `json:"types,omitempty"`
	Source       string   `json:"source"`
}

// RawDocument is a free-form page fetched from a document-returning
// provider. It is consumed once by the prefilter/extraction stage.
type RawDocument struct {
	SourceURL string `json:"source_url"`
	Content   string `json:"content"`
}
