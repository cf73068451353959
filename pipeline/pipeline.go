// Package pipeline assembles the category results for a search. It fans
// provider fetches out through the fetch orchestrator, routes raw documents
// through pre-filtering and extraction, and merges everything into the
// final per-category lists.
package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"weekender/cache"
	"weekender/config"
	"weekender/extraction"
	"weekender/fetch"
	"weekender/merge"
	"weekender/prefilter"
	"weekender/types"
)

// Request is one search: a city and an inclusive date range.
type Request struct {
	City      string
	StartDate string
	EndDate   string
}

// EventSearcher is the structured source for time-bound entries.
type EventSearcher interface {
	SearchConcerts(ctx context.Context, city, startDate, endDate string) ([]types.Record, error)
	SearchEvents(ctx context.Context, city, startDate, endDate string) ([]types.Record, error)
}

// PlaceSearcher is the structured source for place entries.
type PlaceSearcher interface {
	SearchDining(ctx context.Context, city, neighborhood string) ([]types.Record, error)
	SearchAttractions(ctx context.Context, city string) ([]types.Record, error)
}

// WebSearcher produces raw documents from a web search query.
type WebSearcher interface {
	SearchDocuments(ctx context.Context, query string, maxResults int) ([]types.RawDocument, error)
}

// FeedSource produces raw documents from local news feeds.
type FeedSource interface {
	FetchDocuments(ctx context.Context, city string, category types.Category) ([]types.RawDocument, error)
}

// NeighborhoodSource discovers the sub-areas the dining search iterates.
type NeighborhoodSource interface {
	Find(ctx context.Context, city string) ([]string, error)
}

// Deps carries every external dependency of the pipeline. Any field may be
// nil; the corresponding source is then skipped, never reported as failed.
type Deps struct {
	Store         cache.Store
	Events        EventSearcher
	Places        PlaceSearcher
	Web           WebSearcher
	Feeds         FeedSource
	Neighborhoods NeighborhoodSource
	Extractor     extraction.Extractor
}

type Pipeline struct {
	deps    Deps
	fetcher *fetch.Orchestrator
}

func New(deps Deps) *Pipeline {
	return &Pipeline{deps: deps, fetcher: fetch.New(deps.Store)}
}

var allCategories = []types.Category{
	types.CategoryConcerts,
	types.CategoryDining,
	types.CategoryEvents,
	types.CategoryLocations,
}

// Run executes the full search. Independent provider fetches share one
// bounded worker pool; the dining stage runs its neighborhood-dependent
// fetches afterwards on a smaller pool. Failures surface in the result's
// Errors list, never as a missing category.
func (p *Pipeline) Run(ctx context.Context, req Request) *types.SearchResult {
	tagged := p.independentTasks(req)

	tasks := make([]fetch.Task, len(tagged))
	for i, t := range tagged {
		tasks[i] = t.task
	}
	outcomes := p.fetcher.Run(ctx, tasks, config.FetchWorkers)

	byCategory := make(map[types.Category][]types.FetchOutcome)
	for i, t := range tagged {
		byCategory[t.category] = append(byCategory[t.category], outcomes[i])
	}

	results := make([]types.CategoryResult, len(allCategories))
	var wg sync.WaitGroup
	for i, category := range allCategories {
		wg.Add(1)
		go func(idx int, cat types.Category) {
			defer wg.Done()

			categoryOutcomes := byCategory[cat]
			if cat == types.CategoryDining {
				categoryOutcomes = append(categoryOutcomes, p.runDiningStage(ctx, req)...)
			}
			results[idx] = p.assemble(ctx, cat, req, categoryOutcomes)
		}(i, category)
	}
	wg.Wait()

	result := &types.SearchResult{
		City:      req.City,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Errors:    []types.SourceError{},
	}
	for i, category := range allCategories {
		switch category {
		case types.CategoryConcerts:
			result.Concerts = results[i].Results
		case types.CategoryDining:
			result.Dining = results[i].Results
		case types.CategoryEvents:
			result.Events = results[i].Results
		case types.CategoryLocations:
			result.Locations = results[i].Results
		}
		result.Errors = append(result.Errors, results[i].Errors...)
	}
	return result
}

// RunCategory executes a single category pipeline.
func (p *Pipeline) RunCategory(ctx context.Context, category types.Category, req Request) types.CategoryResult {
	var tagged []taggedTask
	for _, t := range p.independentTasks(req) {
		if t.category == category {
			tagged = append(tagged, t)
		}
	}

	tasks := make([]fetch.Task, len(tagged))
	for i, t := range tagged {
		tasks[i] = t.task
	}
	outcomes := p.fetcher.Run(ctx, tasks, config.FetchWorkers)

	if category == types.CategoryDining {
		outcomes = append(outcomes, p.runDiningStage(ctx, req)...)
	}
	return p.assemble(ctx, category, req, outcomes)
}

// assemble turns a category's fetch outcomes into its final record list:
// structured records pass straight through, raw documents go through
// pre-filter and extraction, and everything is merged and ordered.
func (p *Pipeline) assemble(ctx context.Context, category types.Category, req Request, outcomes []types.FetchOutcome) types.CategoryResult {
	var structured []types.Record
	var docs []types.RawDocument
	errs := []types.SourceError{}

	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, *o.Err)
			continue
		}
		structured = append(structured, o.Records...)
		docs = append(docs, o.Documents...)
	}

	extracted, extractErrs := p.extract(ctx, docs, category, req)
	errs = append(errs, extractErrs...)

	merged, dropped := merge.Merge(append(structured, extracted...), category)
	if dropped > 0 {
		log.Printf("[Pipeline] %s: dropped %d records without identity fields", category, dropped)
	}

	if category == types.CategoryConcerts || category == types.CategoryEvents {
		merged = merge.FilterByDateRange(merged, req.StartDate, req.EndDate)
	}

	if merged == nil {
		merged = []types.Record{}
	}
	return types.CategoryResult{Category: category, Results: merged, Errors: errs}
}

// extract runs the filtered documents through the extraction service in
// bounded batches. Without an extractor the search degrades to structured
// results only.
func (p *Pipeline) extract(ctx context.Context, docs []types.RawDocument, category types.Category, req Request) ([]types.Record, []types.SourceError) {
	if p.deps.Extractor == nil || len(docs) == 0 {
		return nil, nil
	}

	filtered := prefilter.FilterDocuments(docs, category)
	if len(filtered) == 0 {
		return nil, nil
	}

	batches := prefilter.Batch(filtered, config.ExtractionBatchSize)
	constraints := extraction.Constraints{City: req.City, StartDate: req.StartDate, EndDate: req.EndDate}
	return extraction.RunBatches(ctx, p.deps.Extractor, batches, category, constraints, config.ExtractionWorkers)
}

// findNeighborhoods resolves the dining sub-areas, consulting the cache
// first. Neighborhood lists change rarely, so they share the standard TTL.
func (p *Pipeline) findNeighborhoods(ctx context.Context, city string) ([]string, error) {
	if p.deps.Neighborhoods == nil {
		return nil, nil
	}

	key := cache.Key("neighborhoods", city)
	if p.deps.Store != nil {
		if raw, ok := p.deps.Store.Get(ctx, key); ok {
			var names []string
			if err := json.Unmarshal([]byte(raw), &names); err == nil {
				return names, nil
			}
		}
	}

	names, err := p.deps.Neighborhoods.Find(ctx, city)
	if err != nil {
		return nil, err
	}

	if p.deps.Store != nil && len(names) > 0 {
		if b, err := json.Marshal(names); err == nil {
			p.deps.Store.Set(ctx, key, string(b))
		}
	}
	return names, nil
}
