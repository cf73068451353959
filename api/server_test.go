package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"weekender/pipeline"
	"weekender/types"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// A pipeline with no configured sources never touches the network and
	// returns valid empty results.
	s := NewServer(pipeline.New(pipeline.Deps{}), nil)
	return s.NewRouter()
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d; want 200", w.Code)
	}
}

func TestSearchRequiresCity(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"weekend": "this"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d; want 400", w.Code)
	}
}

func TestSearchReturnsEmptyCategories(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"city": "Austin", "start_date": "2025-06-05", "end_date": "2025-06-07"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d; want 200: %s", w.Code, w.Body.String())
	}

	var result types.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not a search result: %v", err)
	}
	if result.City != "Austin" || result.StartDate != "2025-06-05" {
		t.Fatalf("request fields not echoed: %+v", result)
	}
	if result.Concerts == nil || result.Dining == nil || result.Events == nil || result.Locations == nil {
		t.Fatalf("category lists must serialize as arrays: %s", w.Body.String())
	}
}

func TestCategorySearchRejectsUnknownCategory(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search/nightlife", strings.NewReader(`{"city": "Austin"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d; want 400", w.Code)
	}
}

func TestWeekendDatesEndpoint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dates/next", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d; want 200", w.Code)
	}

	var body struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(body.StartDate) != 10 || len(body.EndDate) != 10 {
		t.Fatalf("dates should be YYYY-MM-DD: %+v", body)
	}
}

func TestWeekendDatesRejectsUnknownAlias(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dates/someday", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d; want 400", w.Code)
	}
}

func TestClearCacheWithoutBackend(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/cache", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("got status %d; want 503", w.Code)
	}
}
