package tui

import "weekender/types"

// Messages for the tea program

// HealthCheckMsg reports whether the server answered the liveness probe.
type HealthCheckMsg struct {
	Err error
}

// SearchCompleteMsg carries the finished search or its failure.
type SearchCompleteMsg struct {
	Result *types.SearchResult
	Err    error
}

// DatesResolvedMsg carries the resolved date range for the chosen weekend.
type DatesResolvedMsg struct {
	StartDate string
	EndDate   string
	Err       error
}
