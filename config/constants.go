package config

import "time"

// Cache Constants
const (
	// CacheTTL is how long a cached provider response stays trusted.
	// Three days balances freshness against per-call pricing on the
	// external providers.
	CacheTTL = 72 * time.Hour

	// CacheKeyNamespace prefixes every cache key.
	CacheKeyNamespace = "weekender"
)

// Concurrency Constants
const (
	// FetchWorkers bounds parallel fetch tasks across the whole pipeline
	FetchWorkers = 8

	// DependentFetchWorkers bounds fetches that consume a dependency
	// fetch's output (e.g. restaurant searches after neighborhoods)
	DependentFetchWorkers = 2

	// ExtractionWorkers bounds concurrent extraction batches
	ExtractionWorkers = 3

	// ExtractionBatchSize is the number of filtered documents per
	// extraction call
	ExtractionBatchSize = 3
)

// Timeout Constants
const (
	// SearchTimeout covers discovery/search calls (Ticketmaster, Places,
	// Tavily search)
	SearchTimeout = 15 * time.Second

	// PageExtractTimeout covers bulk page content extraction
	PageExtractTimeout = 45 * time.Second

	// ExtractionTimeout covers one extraction-service batch call
	ExtractionTimeout = 60 * time.Second

	// RequestTimeout bounds one full search end to end
	RequestTimeout = 3 * time.Minute
)

// Provider Constants
const (
	// TicketmasterResultsLimit caps events per Discovery API call
	TicketmasterResultsLimit = 50

	// ConcertSearchRadiusMiles is the Ticketmaster music search radius
	ConcertSearchRadiusMiles = 25

	// EventSearchRadiusMiles is the Ticketmaster non-music search radius
	EventSearchRadiusMiles = 20

	// MinRating filters Google Places results below this rating
	MinRating = 4.0

	// MinReviews filters Google Places results with fewer reviews
	MinReviews = 50

	// MaxResultsPerQuery caps Places results per text query
	MaxResultsPerQuery = 10

	// MaxNeighborhoods caps the dining dependency fetch output
	MaxNeighborhoods = 5

	// MaxPagesToExtract caps the pages pulled from web search per category
	MaxPagesToExtract = 15
)

// Prefilter Constants
const (
	// MaxFilteredLines caps retained lines per document after filtering
	MaxFilteredLines = 150

	// MinLineLength drops trivially short lines before pattern matching
	MinLineLength = 5
)
