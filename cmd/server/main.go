package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nutrilog/backend/config"
	httpDelivery "github.com/nutrilog/backend/internal/delivery/http"
	"github.com/nutrilog/backend/internal/domain"
	"github.com/nutrilog/backend/internal/infrastructure/cache"
	"github.com/nutrilog/backend/internal/infrastructure/llm"
	"github.com/nutrilog/backend/internal/infrastructure/postgres"
	"github.com/nutrilog/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting NutriLog Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Database
	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	catalogRepo := postgres.NewCatalogRepo(db)
	mealRepo := postgres.NewMealRepo(db)

	// Cache backend
	var cacheRepo domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		cacheRepo = redisCache
	default:
		memoryCache := cache.NewMemoryCache()
		defer memoryCache.Close()
		cacheRepo = memoryCache
	}
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Text-generation provider. Without a key the server runs in
	// deterministic-only mode and escalations fail with 503.
	var generator domain.TextGenerator
	if cfg.LLM.APIKey != "" {
		client, err := llm.NewClient(llm.Config{
			APIKey:            cfg.LLM.APIKey,
			BaseURL:           cfg.LLM.BaseURL,
			Model:             cfg.LLM.Model,
			Timeout:           cfg.LLM.Timeout,
			RequestsPerMinute: cfg.LLM.RequestsPerMinute,
		})
		if err != nil {
			log.Fatalf("Failed to create LLM client: %v", err)
		}
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
			log.Printf("LLM client debug mode enabled")
		}
		generator = client
		log.Printf("LLM provider configured: %s (model: %s)", cfg.LLM.BaseURL, cfg.LLM.Model)
	} else {
		log.Printf("WARNING: no LLM API key configured - only pattern-based parsing will work")
	}

	// Parsing pipeline
	parseService := usecase.NewParseService(
		catalogRepo,
		cacheRepo,
		generator,
		usecase.ParseServiceConfig{
			CatalogLimit:       cfg.Parser.CatalogLimit,
			GenerativeTimeout:  cfg.LLM.Timeout,
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Parser.EnableDebugLogging,
		},
	)

	log.Printf("Parser: catalog limit=%d, debug=%v",
		cfg.Parser.CatalogLimit, cfg.Parser.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(parseService, catalogRepo, mealRepo)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
