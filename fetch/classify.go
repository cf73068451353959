package fetch

import (
	"errors"
	"net/http"
	"strings"

	"weekender/types"
)

// rateLimitMarkers are message substrings that indicate a provider
// declined due to throughput caps rather than a hard failure.
var rateLimitMarkers = []string{
	"429",
	"quota",
	"too many requests",
	"rate limit",
}

// Classify buckets a task failure for the error report. Rate limits are
// surfaced distinctly so a caller can decide to retry later; everything
// else is a generic provider error.
func Classify(err error) types.ErrorClass {
	if err == nil {
		return ""
	}

	var sc interface{ HTTPStatusCode() int }
	if errors.As(err, &sc) && sc.HTTPStatusCode() == http.StatusTooManyRequests {
		return types.ErrRateLimit
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return types.ErrRateLimit
		}
	}

	return types.ErrProvider
}
