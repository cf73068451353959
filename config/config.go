package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds everything read from the environment. Values are optional;
// a missing key disables the feature it configures rather than failing
// startup.
type Config struct {
	Port string

	TicketmasterAPIKey string
	GooglePlacesKey    string
	TavilyAPIKey       string
	CohereAPIKey       string
	CohereModel        string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool
}

// FromEnv builds a Config from environment variables. Callers should load
// a .env file first if they want one (main does, via godotenv).
func FromEnv() Config {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		TicketmasterAPIKey: os.Getenv("TICKETMASTER_API_KEY"),
		GooglePlacesKey:    os.Getenv("GOOGLE_PLACES_KEY"),
		TavilyAPIKey:       os.Getenv("TAVILY_API_KEY"),
		CohereAPIKey:       os.Getenv("COHERE_API_KEY"),
		CohereModel:        os.Getenv("COHERE_MODEL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "weekender.search-requests"),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "weekender"),
		S3Bucket:           strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:           strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:          strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3UsePathStyle:     strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		cfg.S3Prefix = strings.Trim(prefix, "/") + "/"
	}

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
