package providers

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"

	"weekender/config"
	"weekender/types"
)

const feedWorkerCount = 5

// feedQueries builds the news feed searches run per category. Each query
// becomes one Google News RSS feed.
var feedQueries = map[types.Category][]string{
	types.CategoryConcerts:  {"concerts this weekend %s", "live music %s"},
	types.CategoryDining:    {"best new restaurants %s"},
	types.CategoryEvents:    {"events this weekend %s", "things to do %s"},
	types.CategoryLocations: {"attractions %s"},
}

// CityFeeds aggregates local event and dining coverage from news feeds,
// pulling the full article text for each item so the extraction pipeline
// has something to work with.
type CityFeeds struct {
	parser      *gofeed.Parser
	feedURL     func(query string) string
	extractPage func(ctx context.Context, pageURL string) (string, error)
	maxPerFeed  int
}

func NewCityFeeds() *CityFeeds {
	return &CityFeeds{
		parser: gofeed.NewParser(),
		feedURL: func(query string) string {
			return "https://news.google.com/rss/search?q=" + url.QueryEscape(query) + "&hl=en-US"
		},
		extractPage: extractPageText,
		maxPerFeed:  config.MaxPagesToExtract / 2,
	}
}

// FetchDocuments returns raw documents for the category's feed queries.
// Items whose pages cannot be extracted fall back to the feed summary, so
// a flaky article page never drops the item entirely.
func (cf *CityFeeds) FetchDocuments(ctx context.Context, city string, category types.Category) ([]types.RawDocument, error) {
	items := cf.collectItems(city, category)
	if len(items) == 0 {
		return []types.RawDocument{}, nil
	}
	if len(items) > config.MaxPagesToExtract {
		items = items[:config.MaxPagesToExtract]
	}

	docs := make([]types.RawDocument, len(items))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, feedWorkerCount)

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it feedItem) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			content, err := cf.extractPage(ctx, it.link)
			if err != nil || strings.TrimSpace(content) == "" {
				content = it.title + "\n\n" + it.summary
			}
			docs[idx] = types.RawDocument{SourceURL: it.link, Content: content}
		}(i, item)
	}
	wg.Wait()

	kept := docs[:0]
	for _, d := range docs {
		if strings.TrimSpace(d.Content) != "" {
			kept = append(kept, d)
		}
	}
	return kept, nil
}

type feedItem struct {
	title   string
	link    string
	summary string
}

func (cf *CityFeeds) collectItems(city string, category types.Category) []feedItem {
	var items []feedItem
	seen := make(map[string]bool)

	for _, pattern := range feedQueries[category] {
		feedURL := cf.feedURL(fmt.Sprintf(pattern, city))
		feed, err := cf.parser.ParseURL(feedURL)
		if err != nil {
			log.Printf("[CityFeeds] feed fetch failed for %q: %v", pattern, err)
			continue
		}

		count := 0
		for _, item := range feed.Items {
			if item.Link == "" || seen[item.Link] {
				continue
			}
			seen[item.Link] = true
			items = append(items, feedItem{title: item.Title, link: item.Link, summary: item.Description})
			count++
			if count >= cf.maxPerFeed {
				break
			}
		}
	}
	return items
}

func extractPageText(ctx context.Context, pageURL string) (string, error) {
	article, err := readability.FromURL(pageURL, config.PageExtractTimeout)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}
	return article.TextContent, nil
}
