package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klydo/finder/internal/domain"
)

// Input catalog column names.
const (
	colStyleID        = "style_id"
	colBrand          = "brand"
	colTitle          = "product_title"
	colGender         = "gender"
	colCategory       = "category"
	colReferencePrice = "min_price_rupees"
	colImageURL       = "first_image_url"
)

// ReadProducts loads a product catalog CSV. Columns are resolved by header
// name, so extra columns and arbitrary ordering are tolerated. Rows missing
// the style_id, brand, and product_title columns entirely are an error;
// empty cell values are not.
func ReadProducts(path string) ([]domain.Product, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}
	index := headerIndex(header)

	for _, required := range []string{colStyleID, colBrand, colTitle} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("catalog is missing required column %q", required)
		}
	}

	var products []domain.Product
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}

		products = append(products, domain.Product{
			StyleID:        cell(record, index, colStyleID),
			Brand:          cell(record, index, colBrand),
			Title:          cell(record, index, colTitle),
			Gender:         cell(record, index, colGender),
			Category:       cell(record, index, colCategory),
			ReferencePrice: cell(record, index, colReferencePrice),
			ImageURL:       cell(record, index, colImageURL),
		})
	}

	return products, nil
}

// ReadTable loads an arbitrary CSV into header order plus per-row maps.
// Used for re-pricing files whose site columns we do not know up front.
func ReadTable(path string) ([]string, []map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	header = stripBOMHeader(header)

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

func headerIndex(header []string) map[string]int {
	header = stripBOMHeader(header)
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	return index
}

// stripBOMHeader removes a UTF-8 byte order mark from the first header cell.
// Spreadsheet exports routinely carry one.
func stripBOMHeader(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header
}

func cell(record []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
