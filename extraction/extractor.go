// Package extraction converts batches of pre-filtered raw documents into
// structured records via the Cohere chat API. The model's output is never
// trusted blindly: every response is validated against the expected shape
// and a validation failure is reported as an extraction failure.
package extraction

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"weekender/config"
	"weekender/types"
)

const defaultModel = "command-r-08-2024"

// Constraints scopes an extraction call to a search.
type Constraints struct {
	City      string
	StartDate string
	EndDate   string
}

// Extractor is the text-extraction-service boundary consumed by the
// category pipelines. Implementations must return an empty list, not an
// error, when the documents contain nothing relevant.
type Extractor interface {
	Extract(ctx context.Context, batch []types.RawDocument, category types.Category, constraints Constraints) ([]types.Record, error)
}

// CohereExtractor implements Extractor on the Cohere V2 chat API.
type CohereExtractor struct {
	client *cohereclient.Client
	model  string
}

// NewCohereExtractor builds an extractor, or nil when no API key is
// configured (callers then run structured-only).
func NewCohereExtractor(apiKey, model string) *CohereExtractor {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = defaultModel
	}

	// Force HTTP/1.1; the Cohere endpoint intermittently breaks HTTP/2.
	httpClient := &http.Client{
		Timeout: config.ExtractionTimeout,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}

	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereExtractor{client: client, model: model}
}

func (e *CohereExtractor) Extract(ctx context.Context, batch []types.RawDocument, category types.Category, constraints Constraints) ([]types.Record, error) {
	if len(batch) == 0 {
		return []types.Record{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, config.ExtractionTimeout)
	defer cancel()

	temperature := 0.0
	resp, err := e.client.V2.Chat(ctx, &cohere.V2ChatRequest{
		Model: e.model,
		Messages: cohere.ChatMessages{
			{
				Role: "system",
				System: &cohere.SystemMessageV2{Content: &cohere.SystemMessageV2Content{
					String: systemPrompt(category, constraints),
				}},
			},
			{
				Role: "user",
				User: &cohere.UserMessageV2{Content: &cohere.UserMessageV2Content{
					String: userPrompt(batch, category, constraints),
				}},
			},
		},
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("cohere chat error: %w", err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cohere chat returned empty response")
	}

	records, err := ParseResponse(text, category)
	if err != nil {
		return nil, fmt.Errorf("extraction response invalid: %w", err)
	}
	return records, nil
}

func responseText(resp *cohere.V2ChatResponse) string {
	if resp == nil || resp.Message == nil {
		return ""
	}
	var b strings.Builder
	for _, item := range resp.Message.Content {
		if item != nil && item.Text != nil {
			b.WriteString(item.Text.Text)
		}
	}
	return b.String()
}

// RunBatches dispatches batches to the extractor with bounded parallelism
// and collects every record plus one SourceError per failed batch. A
// failed batch never blocks the others.
func RunBatches(ctx context.Context, extractor Extractor, batches [][]types.RawDocument, category types.Category, constraints Constraints, workers int) ([]types.Record, []types.SourceError) {
	if workers < 1 {
		workers = 1
	}

	type batchResult struct {
		records []types.Record
		err     error
	}

	results := make([]batchResult, len(batches))
	semaphore := make(chan struct{}, workers)
	done := make(chan int, len(batches))

	for i, batch := range batches {
		go func(idx int, b []types.RawDocument) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			records, err := extractor.Extract(ctx, b, category, constraints)
			results[idx] = batchResult{records: records, err: err}
			done <- idx
		}(i, batch)
	}

	for range batches {
		<-done
	}

	var records []types.Record
	var errs []types.SourceError
	for i, r := range results {
		if r.err != nil {
			errs = append(errs, types.SourceError{
				Source:  fmt.Sprintf("extraction_batch_%d", i+1),
				Class:   types.ErrExtractionFailure,
				Message: r.err.Error(),
			})
			continue
		}
		records = append(records, r.records...)
	}
	return records, errs
}
