package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"weekender/types"
)

const tavilyBaseURL = "https://api.tavily.com"

// Tavily wraps the Tavily web search and page extraction API. It is the
// source of raw documents for everything the structured providers cannot
// answer.
type Tavily struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewTavily(apiKey string) *Tavily {
	return &Tavily{
		apiKey:     apiKey,
		baseURL:    tavilyBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *Tavily) Enabled() bool {
	return t != nil && t.apiKey != ""
}

// SearchHit is one result from the search endpoint.
type SearchHit struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	RawContent string  `json:"raw_content"`
	Score      float64 `json:"score"`
}

// Search runs a web search and returns the ranked hits with their content
// snippets.
func (t *Tavily) Search(ctx context.Context, query string, maxResults int) ([]SearchHit, error) {
	payload := map[string]interface{}{
		"query":               query,
		"max_results":         maxResults,
		"search_depth":        "advanced",
		"include_raw_content": true,
	}

	var result struct {
		Results []SearchHit `json:"results"`
	}
	if err := t.post(ctx, "/search", payload, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// Extract fetches the full page content for each URL. URLs the extractor
// could not process are silently absent from the result; callers that need
// them all should compare lengths.
func (t *Tavily) Extract(ctx context.Context, urls []string) ([]types.RawDocument, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	payload := map[string]interface{}{
		"urls": urls,
	}

	var result struct {
		Results []struct {
			URL        string `json:"url"`
			RawContent string `json:"raw_content"`
		} `json:"results"`
	}
	if err := t.post(ctx, "/extract", payload, &result); err != nil {
		return nil, err
	}

	docs := make([]types.RawDocument, 0, len(result.Results))
	for _, r := range result.Results {
		if strings.TrimSpace(r.RawContent) == "" {
			continue
		}
		docs = append(docs, types.RawDocument{SourceURL: r.URL, Content: r.RawContent})
	}
	return docs, nil
}

// skipURLFragments mark listing/index pages rather than content pages.
var skipURLFragments = []string{
	"/search",
	"/category",
	"/tag",
	"/author",
	"/page/",
	"/?",
}

// contentPageURL rejects homepages and index pages whose text is mostly
// navigation.
func contentPageURL(url string) bool {
	for _, fragment := range skipURLFragments {
		if strings.Contains(url, fragment) {
			return false
		}
	}
	return true
}

// SearchDocuments combines search and content collection: hits that already
// carry raw content are used as-is, the rest are fetched via Extract.
// Listing and index pages are dropped before either path.
func (t *Tavily) SearchDocuments(ctx context.Context, query string, maxResults int) ([]types.RawDocument, error) {
	hits, err := t.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	var docs []types.RawDocument
	var missing []string
	for _, hit := range hits {
		if !contentPageURL(hit.URL) {
			continue
		}
		content := hit.RawContent
		if strings.TrimSpace(content) == "" {
			content = hit.Content
		}
		if strings.TrimSpace(content) == "" {
			missing = append(missing, hit.URL)
			continue
		}
		docs = append(docs, types.RawDocument{SourceURL: hit.URL, Content: content})
	}

	if len(missing) > 0 {
		extracted, err := t.Extract(ctx, missing)
		if err == nil {
			docs = append(docs, extracted...)
		}
	}
	return docs, nil
}

func (t *Tavily) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := t.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tavily request failed: %w", err)
	}
	return decodeResponse(resp, url, out)
}
