// Package providers holds the upstream data source clients. Each client
// wraps one REST or feed API and returns either structured records or raw
// documents for the extraction pipeline.
package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPError carries the status code of a failed upstream call so the fetch
// layer can tell throttling apart from other provider failures.
type HTTPError struct {
	Status int
	URL    string
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.Status, e.URL, e.Body)
}

// HTTPStatusCode exposes the status for error classification.
func (e *HTTPError) HTTPStatusCode() int {
	return e.Status
}

// decodeResponse drains a response body into out, converting non-2xx
// statuses to *HTTPError. The body is capped to keep a misbehaving upstream
// from ballooning memory.
func decodeResponse(resp *http.Response, url string, out interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response from %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(body)
		if len(snippet) > 300 {
			snippet = snippet[:300]
		}
		return &HTTPError{Status: resp.StatusCode, URL: url, Body: snippet}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response from %s: %w", url, err)
	}
	return nil
}
