package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klydo/finder/config"
	"github.com/klydo/finder/internal/domain"
	"github.com/klydo/finder/internal/infrastructure/catalog"
	"github.com/klydo/finder/internal/infrastructure/pricefetch"
)

var (
	pricesOutput string
	pricesForce  bool
)

var pricesCmd = &cobra.Command{
	Use:   "prices [results.csv]",
	Short: "Fetch listed prices for matched product URLs",
	Long: `Reads a results CSV, visits every site URL whose price column is
missing or invalid, extracts the listed price from the page, and writes the
updated CSV. With --force every URL is re-fetched.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrices,
}

func init() {
	pricesCmd.Flags().StringVarP(&pricesOutput, "output", "o", "updated.csv", "output CSV path")
	pricesCmd.Flags().BoolVar(&pricesForce, "force", false, "re-fetch prices for all URLs")
	rootCmd.AddCommand(pricesCmd)
}

func runPrices(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	header, rows, err := catalog.ReadTable(args[0])
	if err != nil {
		return err
	}

	pairs := urlPricePairs(header)
	if len(pairs) == 0 {
		return fmt.Errorf("%s has no <site>_url/<site>_price column pairs", args[0])
	}

	fetcher := pricefetch.NewFetcher(pricefetch.Config{
		MaxRetries: cfg.Pricing.MaxRetries,
		Timeout:    cfg.Pricing.Timeout,
		RetryPause: cfg.Pricing.RetryPause,
		Debug:      cfg.Pricing.Debug,
	})

	ctx := cmd.Context()
	updated := 0

	for i, row := range rows {
		log.Printf("[PRICE] [%d/%d] %s", i+1, len(rows), row["product_title"])

		for _, pair := range pairs {
			url := strings.TrimSpace(row[pair.urlColumn])
			if url == "" || url == domain.URLNotFound {
				continue
			}
			if !pricefetch.ShouldUpdate(row[pair.priceColumn], pricesForce) {
				continue
			}

			price, err := fetcher.FetchPrice(ctx, url)
			if err != nil {
				row[pair.priceColumn] = domain.PriceNotAvailable
				continue
			}
			row[pair.priceColumn] = price
			updated++
		}
	}

	if err := catalog.WriteTable(pricesOutput, header, rows); err != nil {
		return err
	}

	log.Printf("[PRICE] Updated %d price(s) across %d rows; wrote %s", updated, len(rows), pricesOutput)
	return nil
}

type columnPair struct {
	urlColumn   string
	priceColumn string
}

// urlPricePairs finds <site>_url columns with a matching <site>_price
// column, in header order.
func urlPricePairs(header []string) []columnPair {
	have := make(map[string]bool, len(header))
	for _, name := range header {
		have[name] = true
	}

	var pairs []columnPair
	for _, name := range header {
		if !strings.HasSuffix(name, "_url") {
			continue
		}
		site := strings.TrimSuffix(name, "_url")
		if site == "klydo" {
			continue
		}
		if priceColumn := site + "_price"; have[priceColumn] {
			pairs = append(pairs, columnPair{urlColumn: name, priceColumn: priceColumn})
		}
	}
	return pairs
}
