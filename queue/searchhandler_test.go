package queue

import (
	"context"
	"errors"
	"testing"

	"weekender/pipeline"
	"weekender/types"
)

type fakeSink struct {
	stored []*types.SearchResult
	err    error
}

func (f *fakeSink) Store(ctx context.Context, result *types.SearchResult) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, result)
	return nil
}

func TestHandleMessageSkipsMalformed(t *testing.T) {
	h := &SearchHandler{Pipeline: pipeline.New(pipeline.Deps{})}

	shouldMark, err := h.HandleMessage(context.Background(), []byte("not json"))
	if err != nil {
		t.Fatalf("malformed messages must not error: %v", err)
	}
	if !shouldMark {
		t.Fatal("malformed messages must be marked or they wedge the partition")
	}
}

func TestHandleMessageSkipsMissingCity(t *testing.T) {
	h := &SearchHandler{Pipeline: pipeline.New(pipeline.Deps{})}

	shouldMark, err := h.HandleMessage(context.Background(), []byte(`{"weekend": "this"}`))
	if err != nil || !shouldMark {
		t.Fatalf("message without city should be skipped: mark=%v err=%v", shouldMark, err)
	}
}

func TestHandleMessageRunsAndArchives(t *testing.T) {
	sink := &fakeSink{}
	h := &SearchHandler{Pipeline: pipeline.New(pipeline.Deps{}), Sink: sink}

	shouldMark, err := h.HandleMessage(context.Background(), []byte(`{"city": "Austin", "start_date": "2025-06-05", "end_date": "2025-06-07"}`))
	if err != nil || !shouldMark {
		t.Fatalf("valid message should complete: mark=%v err=%v", shouldMark, err)
	}
	if len(sink.stored) != 1 {
		t.Fatalf("result not archived: %d stored", len(sink.stored))
	}
	if sink.stored[0].City != "Austin" || sink.stored[0].StartDate != "2025-06-05" {
		t.Fatalf("archived wrong result: %+v", sink.stored[0])
	}
}

func TestHandleMessageRetriesOnSinkFailure(t *testing.T) {
	sink := &fakeSink{err: errors.New("bucket unavailable")}
	h := &SearchHandler{Pipeline: pipeline.New(pipeline.Deps{}), Sink: sink}

	shouldMark, err := h.HandleMessage(context.Background(), []byte(`{"city": "Austin", "start_date": "2025-06-05", "end_date": "2025-06-07"}`))
	if err == nil {
		t.Fatal("sink failure must surface")
	}
	if shouldMark {
		t.Fatal("message must stay unmarked so it can be retried")
	}
}
