package types

// ErrorClass buckets a failure for the final error report.
type ErrorClass string

const (
	ErrCacheUnavailable  ErrorClass = "cache_unavailable"
	ErrRateLimit         ErrorClass = "rate_limit"
	ErrProvider          ErrorClass = "provider_error"
	ErrExtractionFailure ErrorClass = "extraction_failure"
)

// SourceError is one entry in a pipeline's error report.
type SourceError struct {
	Source  string     `json:"source"`
	Class   ErrorClass `json:"error_type"`
	Message string     `json:"message"`
}

// FetchOutcome is the unit of work returned by every orchestrator task.
// It is always produced, success or not: a failed task carries empty data
// and a populated Err, so callers never distinguish "no result" from
// "call raised".
type FetchOutcome struct {
	Provider  string        `json:"provider"`
	Records   []Record      `json:"records,omitempty"`
	Documents []RawDocument `json:"documents,omitempty"`
	FromCache bool          `json:"from_cache,omitempty"`
	Err       *SourceError  `json:"error,omitempty"`
}

// SearchResult is the assembled response for one city and date range.
// Errors is additive information: results are returned regardless.
type SearchResult struct {
	City      string        `json:"city"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Concerts  []Record      `json:"concerts"`
	Dining    []Record      `json:"dining"`
	Events    []Record      `json:"events"`
	Locations []Record      `json:"locations"`
	Errors    []SourceError `json:"errors"`
}

// CategoryResult is the outcome of one category pipeline.
type CategoryResult struct {
	Category Category      `json:"category"`
	Results  []Record      `json:"results"`
	Errors   []SourceError `json:"errors"`
}
