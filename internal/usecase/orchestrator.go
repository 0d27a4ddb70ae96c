package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/klydo/finder/internal/domain"
	"github.com/klydo/finder/internal/registry"
)

// PassState tracks orchestrator progress through the two search passes.
type PassState int

const (
	StateNotStarted PassState = iota
	StatePass1Running
	StatePass1Done
	StatePass2Running
	StateDone
)

func (s PassState) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StatePass1Running:
		return "Pass1Running"
	case StatePass1Done:
		return "Pass1Done"
	case StatePass2Running:
		return "Pass2Running"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// OrchestratorConfig holds orchestrator tunables.
type OrchestratorConfig struct {
	// SearchDelay separates successive provider calls. Courtesy toward the
	// provider's rate limits, not a correctness mechanism.
	SearchDelay time.Duration
	// DebugLogging enables per-product trace logs.
	DebugLogging bool
}

// Orchestrator drives the two-pass search over all products: a pure image
// pass first, then an image+query pass for sites still missing. Strictly
// sequential; a failed provider call degrades to zero matches and the run
// continues.
type Orchestrator struct {
	searcher  domain.VisualSearcher
	extractor *Extractor
	registry  *registry.Registry

	delay time.Duration
	debug bool
	state PassState
}

// NewOrchestrator creates an orchestrator. A zero delay falls back to the
// default 1s between provider calls.
func NewOrchestrator(
	searcher domain.VisualSearcher,
	extractor *Extractor,
	reg *registry.Registry,
	config OrchestratorConfig,
) *Orchestrator {
	delay := config.SearchDelay
	if delay <= 0 {
		delay = time.Second
	}

	return &Orchestrator{
		searcher:  searcher,
		extractor: extractor,
		registry:  reg,
		delay:     delay,
		debug:     config.DebugLogging,
		state:     StateNotStarted,
	}
}

// State returns the current pass state.
func (o *Orchestrator) State() PassState {
	return o.state
}

// Run executes both passes over the products and returns one result per
// product, in input order. Results are read-only after Run returns.
func (o *Orchestrator) Run(ctx context.Context, products []domain.Product) []*domain.ProductResult {
	results := make([]*domain.ProductResult, 0, len(products))

	o.state = StatePass1Running
	log.Printf("[PASS1] pure image search over %d products", len(products))

	for idx, product := range products {
		result := domain.NewProductResult(product, o.registry.AllowedSites(product.Brand))
		results = append(results, result)

		if product.ImageURL == "" {
			log.Printf("[PASS1] %d/%d %s: no image, skipping search", idx+1, len(products), product.StyleID)
			continue
		}

		matches := o.search(ctx, product.ImageURL, "")
		o.apply(result, matches, result.AllowedSites)

		log.Printf("[PASS1] %d/%d %s: found on %d/%d site(s)",
			idx+1, len(products), product.StyleID, result.FoundCount(), len(result.AllowedSites))

		if idx < len(products)-1 {
			o.pause()
		}
	}

	o.state = StatePass1Done
	o.state = StatePass2Running
	log.Printf("[PASS2] image+query search for missing sites")

	for idx, result := range results {
		missing := result.MissingSites()
		if len(missing) == 0 {
			continue
		}
		if result.Product.ImageURL == "" {
			continue
		}

		query := buildPass2Query(result.Product)
		if o.debug {
			log.Printf("[PASS2] %s: missing %v, query %q", result.Product.StyleID, missing, query)
		}

		matches := o.search(ctx, result.Product.ImageURL, query)
		pass2 := o.extractOnly(matches, result.Product, missing)

		// Only fill gaps: a site resolved in pass 1 is never touched.
		for _, siteKey := range missing {
			if siteResult, ok := pass2[siteKey]; ok && siteResult.Found() {
				result.Sites[siteKey] = siteResult
			}
		}

		if idx < len(results)-1 {
			o.pause()
		}
	}

	o.state = StateDone
	return results
}

// MatchProduct runs the same two-pass strategy for a single product
// (serve mode).
func (o *Orchestrator) MatchProduct(ctx context.Context, product domain.Product) (*domain.ProductResult, error) {
	if product.ImageURL == "" {
		return nil, domain.ErrNoImage
	}

	result := domain.NewProductResult(product, o.registry.AllowedSites(product.Brand))

	matches := o.search(ctx, product.ImageURL, "")
	o.apply(result, matches, result.AllowedSites)

	if missing := result.MissingSites(); len(missing) > 0 {
		o.pause()
		matches = o.search(ctx, product.ImageURL, buildPass2Query(product))
		pass2 := o.extractOnly(matches, product, missing)
		for _, siteKey := range missing {
			if siteResult, ok := pass2[siteKey]; ok && siteResult.Found() {
				result.Sites[siteKey] = siteResult
			}
		}
	}

	return result, nil
}

// search invokes the provider, degrading any failure to zero matches.
func (o *Orchestrator) search(ctx context.Context, imageURL, query string) []domain.Match {
	var matches []domain.Match
	var err error

	if query == "" {
		matches, err = o.searcher.SearchImage(ctx, imageURL)
	} else {
		matches, err = o.searcher.SearchImageWithQuery(ctx, imageURL, query)
	}
	if err != nil {
		log.Printf("[SEARCH] provider error, treating as zero matches: %v", err)
		return nil
	}
	return matches
}

// apply extracts candidates into the result for the given sites.
func (o *Orchestrator) apply(result *domain.ProductResult, matches []domain.Match, sites []string) {
	extracted, _, _ := o.extractor.Extract(matches, result.Product.Brand, sites, result.Product.Title)
	for siteKey, siteResult := range extracted {
		result.Sites[siteKey] = siteResult
	}
}

// extractOnly runs extraction restricted to the given sites without
// mutating any result.
func (o *Orchestrator) extractOnly(matches []domain.Match, product domain.Product, sites []string) map[string]domain.SiteResult {
	extracted, _, _ := o.extractor.Extract(matches, product.Brand, sites, product.Title)
	return extracted
}

func (o *Orchestrator) pause() {
	time.Sleep(o.delay)
}

// buildPass2Query builds the compound text query for the second pass:
// brand + gender + category + first detected title color, skipping empty
// parts.
func buildPass2Query(product domain.Product) string {
	parts := []string{product.Brand, product.Gender, product.Category}

	if colors := ExtractColors(product.Title); len(colors) > 0 {
		parts = append(parts, colors[0])
	}

	var nonEmpty []string
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " ")
}
