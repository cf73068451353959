package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"weekender/api"
	"weekender/archive"
	"weekender/cache"
	"weekender/config"
	"weekender/extraction"
	"weekender/pipeline"
	"weekender/providers"
	"weekender/queue"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.FromEnv()

	store, clearer := buildStore(cfg)
	deps := buildDeps(cfg, store)
	p := pipeline.New(deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	archiver := buildArchiver(ctx, cfg)
	startConsumer(ctx, cfg, p, archiver)

	server := api.NewServer(p, clearer)
	r := server.NewRouter()

	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET    /api/health")
	log.Println("  GET    /api/dates/:weekend")
	log.Println("  POST   /api/search")
	log.Println("  POST   /api/search/:category")
	log.Println("  DELETE /api/cache")

	httpServer := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		_ = httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// buildStore picks the cache backend. Redis when configured, otherwise an
// in-process store so repeated local searches still hit the cache.
func buildStore(cfg config.Config) (cache.Store, api.CacheClearer) {
	if cfg.RedisAddr == "" {
		log.Println("[Cache] REDIS_ADDR not set, using in-memory cache")
		return cache.NewMemoryStore(), nil
	}
	redisStore := cache.NewRedisStore(cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return redisStore, redisStore
}

// buildDeps wires the configured providers. A missing API key leaves its
// slot nil, which the pipeline treats as "source not present".
func buildDeps(cfg config.Config, store cache.Store) pipeline.Deps {
	deps := pipeline.Deps{
		Store: store,
		Feeds: providers.NewCityFeeds(),
	}

	if tm := providers.NewTicketmaster(cfg.TicketmasterAPIKey); tm.Enabled() {
		deps.Events = tm
	} else {
		log.Println("TICKETMASTER_API_KEY not set, structured event search disabled")
	}

	if places := providers.NewGooglePlaces(cfg.GooglePlacesKey); places.Enabled() {
		deps.Places = places
	} else {
		log.Println("GOOGLE_PLACES_KEY not set, structured place search disabled")
	}

	extractor := extraction.NewCohereExtractor(cfg.CohereAPIKey, cfg.CohereModel)
	if extractor != nil {
		deps.Extractor = extractor
	} else {
		log.Println("COHERE_API_KEY not set, web extraction disabled (structured results only)")
	}

	if tavily := providers.NewTavily(cfg.TavilyAPIKey); tavily.Enabled() {
		deps.Web = tavily
		if extractor != nil {
			deps.Neighborhoods = providers.NewNeighborhoodFinder(tavily, extractor)
		}
	} else {
		log.Println("TAVILY_API_KEY not set, web search disabled")
	}

	return deps
}

func buildArchiver(ctx context.Context, cfg config.Config) *archive.Archiver {
	if cfg.S3Bucket == "" {
		return nil
	}
	archiver, err := archive.New(ctx, archive.S3Config{
		Bucket:       cfg.S3Bucket,
		Prefix:       cfg.S3Prefix,
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Printf("Warning: failed to init S3 archiver: %v (archiving disabled)", err)
		return nil
	}
	log.Printf("[Archive] Storing search results in s3://%s", cfg.S3Bucket)
	return archiver
}

// startConsumer attaches the Kafka intake when brokers are configured.
func startConsumer(ctx context.Context, cfg config.Config, p *pipeline.Pipeline, archiver *archive.Archiver) {
	if len(cfg.KafkaBrokers) == 0 {
		return
	}

	handler := &queue.SearchHandler{Pipeline: p}
	if archiver != nil {
		handler.Sink = archiver
	}

	consumer, err := queue.NewConsumer(queue.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaGroupID,
		Handler: handler,
	})
	if err != nil {
		log.Printf("Warning: failed to create Kafka consumer: %v (queue intake disabled)", err)
		return
	}

	if err := consumer.Start(ctx); err != nil {
		log.Printf("Warning: Kafka consumer failed to start: %v", err)
		return
	}

	go func() {
		<-ctx.Done()
		_ = consumer.Close()
	}()
}
