// Package fetch runs provider calls concurrently under a bounded worker
// limit, consulting and populating the cache around each call. Every task
// produces exactly one FetchOutcome; a failing task never cancels its
// siblings.
package fetch

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"weekender/cache"
	"weekender/types"
)

// Payload is what a task's Do func returns and what gets cached: either
// structured records or raw documents, never both.
type Payload struct {
	Records   []types.Record      `json:"records,omitempty"`
	Documents []types.RawDocument `json:"documents,omitempty"`
}

// Task is one independent fetch. CacheKey may be empty to bypass caching.
type Task struct {
	Name     string
	CacheKey string
	Do       func(ctx context.Context) (Payload, error)
}

// Orchestrator executes task sets against a shared cache store. The store
// may be nil, which disables caching entirely.
type Orchestrator struct {
	store cache.Store
}

// New returns an orchestrator backed by the given store.
func New(store cache.Store) *Orchestrator {
	return &Orchestrator{store: store}
}

// Run executes all tasks with at most workers in flight and returns one
// outcome per task, in task order. It waits for every task: individual
// failures are classified and recorded on the outcome, not propagated.
func (o *Orchestrator) Run(ctx context.Context, tasks []Task, workers int) []types.FetchOutcome {
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]types.FetchOutcome, len(tasks))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		go func(idx int, t Task) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			outcomes[idx] = o.runTask(ctx, t)
		}(i, task)
	}

	wg.Wait()
	return outcomes
}

func (o *Orchestrator) runTask(ctx context.Context, t Task) types.FetchOutcome {
	if payload, ok := o.readCache(ctx, t); ok {
		log.Printf("[Fetch] Cache HIT: %s", t.Name)
		return types.FetchOutcome{
			Provider:  t.Name,
			Records:   payload.Records,
			Documents: payload.Documents,
			FromCache: true,
		}
	}

	payload, err := t.Do(ctx)
	if err != nil {
		class := Classify(err)
		log.Printf("[Fetch] %s failed (%s): %v", t.Name, class, err)
		return types.FetchOutcome{
			Provider: t.Name,
			Err: &types.SourceError{
				Source:  t.Name,
				Class:   class,
				Message: err.Error(),
			},
		}
	}

	o.writeCache(ctx, t, payload)

	return types.FetchOutcome{
		Provider:  t.Name,
		Records:   payload.Records,
		Documents: payload.Documents,
	}
}

func (o *Orchestrator) readCache(ctx context.Context, t Task) (Payload, bool) {
	if o.store == nil || t.CacheKey == "" {
		return Payload{}, false
	}

	raw, ok := o.store.Get(ctx, t.CacheKey)
	if !ok {
		return Payload{}, false
	}

	var payload Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		// A corrupt entry is a miss; the live fetch will replace it.
		log.Printf("[Fetch] Discarding unreadable cache entry %s: %v", t.CacheKey, err)
		return Payload{}, false
	}
	return payload, true
}

func (o *Orchestrator) writeCache(ctx context.Context, t Task, payload Payload) {
	if o.store == nil || t.CacheKey == "" {
		return
	}

	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Fetch] Failed to encode %s for caching: %v", t.Name, err)
		return
	}
	o.store.Set(ctx, t.CacheKey, string(b))
}
