package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/klydo/finder/config"
	"github.com/klydo/finder/internal/infrastructure/catalog"
	"github.com/klydo/finder/internal/infrastructure/serpapi"
	"github.com/klydo/finder/internal/registry"
	"github.com/klydo/finder/internal/usecase"
)

var runOutput string

var runCmd = &cobra.Command{
	Use:   "run [catalog.csv]",
	Short: "Match a product catalog against shopping sites",
	Long: `Reads a catalog CSV, runs the two-pass visual search over every
product, and writes one output row per product with a URL and price column
for each allowed site.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "results.csv", "output CSV path")
	rootCmd.AddCommand(runCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	products, err := catalog.ReadProducts(args[0])
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("catalog %s contains no products", args[0])
	}

	log.Printf("Processing %d products from %q", len(products), products[0].Brand)

	searcher := serpapi.NewClient(serpapi.Config{
		APIKey:   cfg.SerpAPI.APIKey,
		BaseURL:  cfg.SerpAPI.BaseURL,
		Country:  cfg.SerpAPI.Country,
		Language: cfg.SerpAPI.Language,
		Debug:    cfg.Matching.Debug,
	})

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

	results := orchestrator.Run(cmd.Context(), products)

	reporter := usecase.NewCoverageReporter(cfg.Matching.CoverageThreshold)
	reporter.Log(reporter.Report(results))

	allowedSites := reg.AllowedSites(products[0].Brand)
	if err := catalog.WriteResults(runOutput, results, allowedSites, cfg.Matching.CanonicalBaseURL); err != nil {
		return err
	}

	log.Printf("Wrote %d result rows to %s", len(results), runOutput)
	return nil
}
