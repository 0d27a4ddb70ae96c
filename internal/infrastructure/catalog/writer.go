package catalog

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/klydo/finder/internal/domain"
)

// WriteResults writes matching results as a CSV with one row per product.
// Site price and url columns follow the allowed-site order so every row
// shares one header. baseURL is the canonical storefront prefix for the
// product's own listing url.
func WriteResults(path string, results []*domain.ProductResult, allowedSites []string, baseURL string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(resultHeader(allowedSites)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write(resultRow(result, allowedSites, baseURL)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func resultHeader(allowedSites []string) []string {
	header := []string{colStyleID, colBrand, colTitle, colGender, colCategory, "klydo_price"}
	for _, site := range allowedSites {
		header = append(header, site+"_price")
	}
	header = append(header, "klydo_url")
	for _, site := range allowedSites {
		header = append(header, site+"_url")
	}
	return header
}

func resultRow(result *domain.ProductResult, allowedSites []string, baseURL string) []string {
	product := result.Product

	row := []string{
		product.StyleID,
		product.Brand,
		product.Title,
		product.Gender,
		product.Category,
		product.ReferencePrice,
	}
	for _, site := range allowedSites {
		row = append(row, sitePriceCell(result.Sites[site]))
	}
	row = append(row, fmt.Sprintf("%s/product/%s", baseURL, product.StyleID))
	for _, site := range allowedSites {
		row = append(row, siteURLCell(result.Sites[site]))
	}
	return row
}

// sitePriceCell maps an internal site result to its price column value.
// A found listing that showed no price reads "Check site for price" so the
// sheet never shows the internal not-displayed marker.
func sitePriceCell(site domain.SiteResult) string {
	if site.URL == "" {
		return domain.PriceNotAvailable
	}
	if site.Found() && site.Price == domain.PriceNotDisplayed {
		return domain.PriceCheckSite
	}
	return site.Price
}

func siteURLCell(site domain.SiteResult) string {
	if site.URL == "" {
		return domain.URLNotFound
	}
	return site.URL
}

// WriteTable writes an arbitrary header-plus-row-maps CSV, preserving the
// original column order. Counterpart of ReadTable.
func WriteTable(path string, header []string, rows []map[string]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, name := range header {
			record[i] = row[name]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
