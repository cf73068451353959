package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"weekender/config"
	"weekender/pipeline"
	"weekender/types"
)

// SearchMessage is the wire format of a queued search request. Explicit
// dates win over the weekend alias when both are set.
type SearchMessage struct {
	City      string `json:"city"`
	Weekend   string `json:"weekend"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ResultSink receives completed search results.
type ResultSink interface {
	Store(ctx context.Context, result *types.SearchResult) error
}

// SearchHandler runs one pipeline search per queued message.
type SearchHandler struct {
	Pipeline *pipeline.Pipeline
	Sink     ResultSink
}

// HandleMessage decodes and executes a search request. Malformed messages
// are marked so they never wedge the partition; a failing sink leaves the
// message unmarked for retry.
func (h *SearchHandler) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg SearchMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("[Queue] Skipping unparsable message: %v", err)
		return true, nil
	}
	if msg.City == "" {
		log.Printf("[Queue] Skipping message without a city")
		return true, nil
	}

	start, end := msg.StartDate, msg.EndDate
	if start == "" || end == "" {
		start, end = config.WeekendDates(msg.Weekend, time.Now())
	}

	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	result := h.Pipeline.Run(ctx, pipeline.Request{City: msg.City, StartDate: start, EndDate: end})
	log.Printf("[Queue] Search complete for %s %s..%s: %d concerts, %d dining, %d events, %d locations",
		msg.City, start, end, len(result.Concerts), len(result.Dining), len(result.Events), len(result.Locations))

	if h.Sink != nil {
		if err := h.Sink.Store(ctx, result); err != nil {
			return false, err
		}
	}
	return true, nil
}
