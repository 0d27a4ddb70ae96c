package usecase

import (
	"log"
	"strings"

	"github.com/klydo/finder/internal/domain"
)

// SiteCoverage summarises how often one site resolved across a run.
type SiteCoverage struct {
	SiteKey        string  `json:"siteKey"`
	FoundCount     int     `json:"foundCount"`
	TotalCount     int     `json:"totalCount"`
	Ratio          float64 `json:"ratio"`
	BelowThreshold bool    `json:"belowThreshold"`
}

// CoverageReporter computes per-site coverage over a finished run.
// Read-only; a ratio exactly at the threshold meets it.
type CoverageReporter struct {
	threshold float64
}

// NewCoverageReporter creates a reporter. A zero threshold falls back to
// the default 0.50.
func NewCoverageReporter(threshold float64) *CoverageReporter {
	if threshold <= 0 {
		threshold = 0.50
	}
	return &CoverageReporter{threshold: threshold}
}

// Report computes coverage per site over the final results. A site's total
// is the number of products that listed it as allowed, so mixed-brand runs
// don't punish brand sites for products that never searched them.
func (r *CoverageReporter) Report(results []*domain.ProductResult) []SiteCoverage {
	var order []string
	found := make(map[string]int)
	total := make(map[string]int)

	for _, result := range results {
		for _, siteKey := range result.AllowedSites {
			if _, seen := total[siteKey]; !seen {
				order = append(order, siteKey)
			}
			total[siteKey]++
			if result.Sites[siteKey].Found() {
				found[siteKey]++
			}
		}
	}

	coverage := make([]SiteCoverage, 0, len(order))
	for _, siteKey := range order {
		ratio := 0.0
		if total[siteKey] > 0 {
			ratio = float64(found[siteKey]) / float64(total[siteKey])
		}
		coverage = append(coverage, SiteCoverage{
			SiteKey:        siteKey,
			FoundCount:     found[siteKey],
			TotalCount:     total[siteKey],
			Ratio:          ratio,
			BelowThreshold: ratio < r.threshold,
		})
	}
	return coverage
}

// Log prints the coverage report in the run summary format.
func (r *CoverageReporter) Log(coverage []SiteCoverage) {
	log.Printf("[COVERAGE] final coverage report (threshold %.0f%%)", r.threshold*100)
	for _, site := range coverage {
		status := "ok"
		if site.BelowThreshold {
			status = "NEEDS ATTENTION"
		}
		log.Printf("[COVERAGE] %s: %d/%d (%.0f%%) %s",
			strings.ToUpper(strings.ReplaceAll(site.SiteKey, "_", " ")),
			site.FoundCount, site.TotalCount, site.Ratio*100, status)
	}
}
