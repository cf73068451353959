package providers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDecodeResponseParsesBody(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	err := decodeResponse(fakeResponse(200, `{"name":"Stubb's"}`), "http://example.com", &out)
	if err != nil {
		t.Fatalf("decodeResponse() error = %v", err)
	}
	if out.Name != "Stubb's" {
		t.Errorf("Name = %q, want %q", out.Name, "Stubb's")
	}
}

func TestDecodeResponseNonOKIsHTTPError(t *testing.T) {
	err := decodeResponse(fakeResponse(429, "slow down"), "http://example.com", nil)
	if err == nil {
		t.Fatal("decodeResponse() = nil, want error")
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error type = %T, want *HTTPError", err)
	}
	if httpErr.HTTPStatusCode() != 429 {
		t.Errorf("HTTPStatusCode() = %d, want 429", httpErr.HTTPStatusCode())
	}
	if !strings.Contains(httpErr.Error(), "slow down") {
		t.Errorf("Error() = %q, want body snippet included", httpErr.Error())
	}
}

func TestDecodeResponseTruncatesErrorBody(t *testing.T) {
	err := decodeResponse(fakeResponse(500, strings.Repeat("x", 1000)), "http://example.com", nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error type = %T, want *HTTPError", err)
	}
	if len(httpErr.Body) != 300 {
		t.Errorf("len(Body) = %d, want 300", len(httpErr.Body))
	}
}

func TestContentPageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.austinmonthly.com/best-things-to-do-this-weekend/", true},
		{"https://do512.com/events/2026/9/4", true},
		{"https://example.com/search?q=austin", false},
		{"https://example.com/category/music", false},
		{"https://example.com/tag/live-music", false},
		{"https://example.com/author/jane", false},
		{"https://example.com/page/3", false},
		{"https://example.com/?ref=home", false},
	}

	for _, tt := range tests {
		if got := contentPageURL(tt.url); got != tt.want {
			t.Errorf("contentPageURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestCuisineFromTypes(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{"specific cuisine", []string{"restaurant", "mexican_restaurant", "food"}, "Mexican"},
		{"multi word cuisine", []string{"middle_eastern_restaurant"}, "Middle Eastern"},
		{"generic types only", []string{"restaurant", "food", "establishment"}, ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cuisineFromTypes(tt.types); got != tt.want {
				t.Errorf("cuisineFromTypes(%v) = %q, want %q", tt.types, got, tt.want)
			}
		})
	}
}
