package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"weekender/cache"
	"weekender/config"
	"weekender/fetch"
	"weekender/types"
)

type taggedTask struct {
	category types.Category
	task     fetch.Task
}

// independentTasks builds every fetch that needs no prior result. Sources
// that are not configured simply contribute no task.
func (p *Pipeline) independentTasks(req Request) []taggedTask {
	var tasks []taggedTask
	add := func(category types.Category, task fetch.Task) {
		tasks = append(tasks, taggedTask{category: category, task: task})
	}

	if p.deps.Events != nil {
		add(types.CategoryConcerts, fetch.Task{
			Name:     "ticketmaster_concerts",
			CacheKey: cache.Key("concerts_structured", req.City, req.StartDate, req.EndDate),
			Do: func(ctx context.Context) (fetch.Payload, error) {
				records, err := p.deps.Events.SearchConcerts(ctx, req.City, req.StartDate, req.EndDate)
				return fetch.Payload{Records: records}, err
			},
		})
		add(types.CategoryEvents, fetch.Task{
			Name:     "ticketmaster_events",
			CacheKey: cache.Key("events_structured", req.City, req.StartDate, req.EndDate),
			Do: func(ctx context.Context) (fetch.Payload, error) {
				records, err := p.deps.Events.SearchEvents(ctx, req.City, req.StartDate, req.EndDate)
				return fetch.Payload{Records: records}, err
			},
		})
	}

	if p.deps.Places != nil {
		add(types.CategoryLocations, fetch.Task{
			Name:     "google_places_attractions",
			CacheKey: cache.Key("locations_structured", req.City),
			Do: func(ctx context.Context) (fetch.Payload, error) {
				records, err := p.deps.Places.SearchAttractions(ctx, req.City)
				return fetch.Payload{Records: records}, err
			},
		})
	}

	if p.deps.Web != nil {
		for category, query := range webQueries(req) {
			cat, q := category, query
			add(cat, fetch.Task{
				Name:     "web_" + string(cat),
				CacheKey: cache.Key("web_"+string(cat), req.City, req.StartDate, req.EndDate),
				Do: func(ctx context.Context) (fetch.Payload, error) {
					docs, err := p.deps.Web.SearchDocuments(ctx, q, config.MaxResultsPerQuery)
					return fetch.Payload{Documents: docs}, err
				},
			})
		}
	}

	if p.deps.Feeds != nil {
		for _, category := range allCategories {
			cat := category
			add(cat, fetch.Task{
				Name:     "city_feeds_" + string(cat),
				CacheKey: cache.Key("feeds_"+string(cat), req.City, req.StartDate, req.EndDate),
				Do: func(ctx context.Context) (fetch.Payload, error) {
					docs, err := p.deps.Feeds.FetchDocuments(ctx, req.City, cat)
					return fetch.Payload{Documents: docs}, err
				},
			})
		}
	}

	return tasks
}

func webQueries(req Request) map[types.Category]string {
	weekend := fmt.Sprintf("%s to %s", req.StartDate, req.EndDate)
	return map[types.Category]string{
		types.CategoryConcerts:  fmt.Sprintf("concerts and live music in %s %s", req.City, weekend),
		types.CategoryDining:    fmt.Sprintf("best restaurants in %s right now", req.City),
		types.CategoryEvents:    fmt.Sprintf("events and things to do in %s %s", req.City, weekend),
		types.CategoryLocations: fmt.Sprintf("best attractions and things to see in %s", req.City),
	}
}

// runDiningStage is the dependent fetch stage: it needs the neighborhood
// list before it can build its tasks, so it cannot join the independent
// pool. It runs on a smaller worker bound.
func (p *Pipeline) runDiningStage(ctx context.Context, req Request) []types.FetchOutcome {
	if p.deps.Places == nil {
		return nil
	}

	neighborhoods, err := p.findNeighborhoods(ctx, req.City)
	if err != nil {
		// Fall back to a city-wide search; the miss is logged, not fatal.
		log.Printf("[Pipeline] neighborhood lookup failed for %s: %v", req.City, err)
		neighborhoods = nil
	}

	var tasks []fetch.Task
	if len(neighborhoods) == 0 {
		tasks = append(tasks, p.diningTask(req.City, ""))
	}
	for _, n := range neighborhoods {
		tasks = append(tasks, p.diningTask(req.City, n))
	}

	return p.fetcher.Run(ctx, tasks, config.DependentFetchWorkers)
}

func (p *Pipeline) diningTask(city, neighborhood string) fetch.Task {
	name := "google_places_dining"
	keyParts := []string{}
	if neighborhood != "" {
		slug := strings.ReplaceAll(strings.ToLower(neighborhood), " ", "_")
		name += "_" + slug
		keyParts = append(keyParts, slug)
	}

	return fetch.Task{
		Name:     name,
		CacheKey: cache.Key("dining_structured", city, keyParts...),
		Do: func(ctx context.Context) (fetch.Payload, error) {
			records, err := p.deps.Places.SearchDining(ctx, city, neighborhood)
			return fetch.Payload{Records: records}, err
		},
	}
}
