package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"weekender/cache"
	"weekender/types"
)

// countingStore wraps a MemoryStore and records calls.
type countingStore struct {
	*cache.MemoryStore
	mu   sync.Mutex
	gets int
	sets int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: cache.NewMemoryStore()}
}

func (s *countingStore) Get(ctx context.Context, key string) (string, bool) {
	s.mu.Lock()
	s.gets++
	s.mu.Unlock()
	return s.MemoryStore.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key, value string) {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	s.MemoryStore.Set(ctx, key, value)
}

func recordTask(name, key string, recs []types.Record) Task {
	return Task{
		Name:     name,
		CacheKey: key,
		Do: func(ctx context.Context) (Payload, error) {
			return Payload{Records: recs}, nil
		},
	}
}

func TestRunReturnsOneOutcomePerTask(t *testing.T) {
	o := New(nil)

	tasks := []Task{
		recordTask("a", "", []types.Record{{Name: "A", Source: "a"}}),
		{Name: "b", Do: func(ctx context.Context) (Payload, error) {
			return Payload{}, errors.New("connection refused")
		}},
		recordTask("c", "", []types.Record{{Name: "C", Source: "c"}}),
	}

	outcomes := o.Run(context.Background(), tasks, 8)
	if len(outcomes) != len(tasks) {
		t.Fatalf("got %d outcomes; want %d", len(outcomes), len(tasks))
	}

	// Outcomes come back in task order regardless of completion order.
	if outcomes[0].Provider != "a" || outcomes[1].Provider != "b" || outcomes[2].Provider != "c" {
		t.Fatalf("outcomes out of order: %+v", outcomes)
	}

	if outcomes[1].Err == nil {
		t.Fatal("failed task should carry an error")
	}
	if len(outcomes[1].Records) != 0 {
		t.Fatal("failed task should carry no data")
	}
	if outcomes[1].Err.Class != types.ErrProvider {
		t.Fatalf("generic failure classified as %s", outcomes[1].Err.Class)
	}

	if outcomes[0].Err != nil || outcomes[2].Err != nil {
		t.Fatal("sibling failure must not touch successful outcomes")
	}
}

func TestRunCachesSuccessfulCalls(t *testing.T) {
	store := newCountingStore()
	o := New(store)

	calls := 0
	task := Task{
		Name:     "ticketmaster",
		CacheKey: cache.Key("concerts", "Austin", "2025-06-01", "2025-06-03"),
		Do: func(ctx context.Context) (Payload, error) {
			calls++
			return Payload{Records: []types.Record{{Name: "Jazz Night", Source: "ticketmaster"}}}, nil
		},
	}

	first := o.Run(context.Background(), []Task{task}, 1)
	if first[0].FromCache {
		t.Fatal("first run should be a live call")
	}
	if store.sets != 1 {
		t.Fatalf("expected one cache write, got %d", store.sets)
	}

	second := o.Run(context.Background(), []Task{task}, 1)
	if !second[0].FromCache {
		t.Fatal("second run should hit the cache")
	}
	if calls != 1 {
		t.Fatalf("provider called %d times; want 1", calls)
	}
	if len(second[0].Records) != 1 || second[0].Records[0].Name != "Jazz Night" {
		t.Fatalf("cached payload mangled: %+v", second[0].Records)
	}
}

func TestRunFailedCallsNotCached(t *testing.T) {
	store := newCountingStore()
	o := New(store)

	task := Task{
		Name:     "tavily",
		CacheKey: cache.Key("events_web", "Austin"),
		Do: func(ctx context.Context) (Payload, error) {
			return Payload{}, errors.New("status 500")
		},
	}

	o.Run(context.Background(), []Task{task}, 1)
	if store.sets != 0 {
		t.Fatalf("failure must not be cached; got %d writes", store.sets)
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	o := New(nil)

	var inFlight, peak int32
	block := make(chan struct{})

	tasks := make([]Task, 6)
	for i := range tasks {
		tasks[i] = Task{
			Name: fmt.Sprintf("task-%d", i),
			Do: func(ctx context.Context) (Payload, error) {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				<-block
				atomic.AddInt32(&inFlight, -1)
				return Payload{}, nil
			},
		}
	}

	done := make(chan []types.FetchOutcome)
	go func() { done <- o.Run(context.Background(), tasks, 2) }()

	close(block)
	<-done

	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Fatalf("peak concurrency %d exceeds worker bound 2", p)
	}
}

type statusErr struct{ code int }

func (e statusErr) Error() string       { return fmt.Sprintf("status %d", e.code) }
func (e statusErr) HTTPStatusCode() int { return e.code }

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want types.ErrorClass
	}{
		{"429 status", statusErr{429}, types.ErrRateLimit},
		{"wrapped 429", fmt.Errorf("ticketmaster: %w", statusErr{429}), types.ErrRateLimit},
		{"quota message", errors.New("Quota exceeded for this key"), types.ErrRateLimit},
		{"too many requests", errors.New("too many requests, slow down"), types.ErrRateLimit},
		{"rate limit phrase", errors.New("Rate Limit hit"), types.ErrRateLimit},
		{"server error", statusErr{500}, types.ErrProvider},
		{"network error", errors.New("dial tcp: connection refused"), types.ErrProvider},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Classify(c.err); got != c.want {
				t.Fatalf("Classify(%v) = %s; want %s", c.err, got, c.want)
			}
		})
	}
}
