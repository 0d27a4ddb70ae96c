package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/klydo/finder/config"
	httpDelivery "github.com/klydo/finder/internal/delivery/http"
	"github.com/klydo/finder/internal/infrastructure/cache"
	"github.com/klydo/finder/internal/infrastructure/serpapi"
	"github.com/klydo/finder/internal/registry"
	"github.com/klydo/finder/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the matching HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Printf("Starting klydo-finder v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	searcher := serpapi.NewClient(serpapi.Config{
		APIKey:   cfg.SerpAPI.APIKey,
		BaseURL:  cfg.SerpAPI.BaseURL,
		Country:  cfg.SerpAPI.Country,
		Language: cfg.SerpAPI.Language,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		searcher.SetDebug(true)
		log.Printf("Search client debug mode enabled")
	}

	reg := registry.New()
	extractor := usecase.NewExtractor(reg, usecase.ExtractorConfig{
		MarketplaceSimilarityFloor: cfg.Matching.MarketplaceSimilarityFloor,
		BrandSiteSimilarityFloor:   cfg.Matching.BrandSiteSimilarityFloor,
		RankPenalty:                cfg.Matching.RankPenalty,
		DebugLogging:               cfg.Matching.Debug,
	})
	orchestrator := usecase.NewOrchestrator(searcher, extractor, reg, usecase.OrchestratorConfig{
		SearchDelay:  cfg.Matching.SearchDelay,
		DebugLogging: cfg.Matching.Debug,
	})

	matchService := usecase.NewMatchService(
		orchestrator,
		cache.NewMemoryCache(),
		usecase.MatchServiceConfig{CacheTTL: cfg.Cache.TTL},
	)

	handler := httpDelivery.NewHandler(matchService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	return router.Run(addr)
}
