package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tripweaver/layover-engine/internal/cache"
	"github.com/tripweaver/layover-engine/internal/commission"
	"github.com/tripweaver/layover-engine/internal/engine"
	"github.com/tripweaver/layover-engine/internal/handler"
	"github.com/tripweaver/layover-engine/internal/providers"
	"github.com/tripweaver/layover-engine/internal/ratelimit"
	"github.com/tripweaver/layover-engine/internal/scoring"
)

type Config struct {
	Port           string
	CacheEnabled   bool
	RedisHost      string
	RedisPort      string
	RedisTTL       time.Duration
	SearchTimeout  time.Duration
	MaxConcurrency int
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	cfg := loadConfig()
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	inspiration, err := providers.NewInspirationSource()
	if err != nil {
		log.Fatalf("Failed to initialize inspiration source: %v", err)
	}
	trending, err := providers.NewTrendingSource()
	if err != nil {
		log.Fatalf("Failed to initialize trending source: %v", err)
	}
	experiences, err := providers.NewExperienceFeed()
	if err != nil {
		log.Fatalf("Failed to initialize experience feed: %v", err)
	}
	weather, err := providers.NewStaticWeather()
	if err != nil {
		log.Fatalf("Failed to initialize weather table: %v", err)
	}

	sources := []providers.Source{inspiration, trending, experiences}
	log.Printf("Initialized %d candidate sources", len(sources))

	rateLimiter := ratelimit.NewSourceLimiterWithDefaults()
	rateLimiter.SetSourceLimit("inspiration", 20, 30)
	rateLimiter.SetSourceLimit("trending", 15, 25)
	rateLimiter.SetSourceLimit("experiences", 10, 20)

	fetcher := providers.NewFetcher(sources, providers.FetcherConfig{
		Timeout:    cfg.SearchTimeout,
		MaxRetries: 3,
		RetryDelays: []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
		},
		RateLimiter: rateLimiter,
	})

	var candidateCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		candidateCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		candidateCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}

	eng := engine.New(engine.Config{
		Fetcher:        fetcher,
		Experiences:    experiences,
		Weather:        weather,
		Scoring:        scoring.DefaultConfig(),
		Commission:     commission.DefaultConfig(),
		Cache:          candidateCache,
		MaxConcurrency: cfg.MaxConcurrency,
	})

	layoverHandler := handler.NewLayoverHandler(eng)

	api := e.Group("/api/v1")
	api.POST("/layovers/discover", layoverHandler.Discover)
	api.POST("/layovers/book", layoverHandler.Book)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting layover engine server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		CacheEnabled:   getEnvBool("CACHE_ENABLED", true),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisTTL:       getEnvDuration("REDIS_TTL", 2*time.Minute),
		SearchTimeout:  getEnvDuration("SEARCH_TIMEOUT", 2*time.Second),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 8),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
