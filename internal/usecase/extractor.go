package usecase

import (
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/klydo/finder/internal/domain"
	"github.com/klydo/finder/internal/registry"
)

// ExtractorConfig holds the tunable thresholds for candidate extraction.
// The values are unexplained constants carried over from field calibration;
// change them from measurements, not intuition.
type ExtractorConfig struct {
	// MarketplaceSimilarityFloor is the minimum title similarity for
	// marketplace candidates.
	MarketplaceSimilarityFloor float64
	// BrandSiteSimilarityFloor is the higher bar for brand-owned sites,
	// which list many near-duplicate variants of the same garment.
	BrandSiteSimilarityFloor float64
	// RankPenalty is the per-rank-position similarity penalty used when
	// selecting among brand-site candidates.
	RankPenalty float64
	// DebugLogging enables per-match trace logs.
	DebugLogging bool
}

// Extractor turns raw visual matches into one validated, scored result per
// allowed site.
type Extractor struct {
	registry  *registry.Registry
	verifier  *BrandVerifier
	validator *URLValidator

	marketplaceFloor float64
	brandSiteFloor   float64
	rankPenalty      float64
	debug            bool
}

// NewExtractor creates an extractor with the given configuration. Zero
// thresholds fall back to the calibrated defaults (5 / 15 / 5).
func NewExtractor(reg *registry.Registry, config ExtractorConfig) *Extractor {
	marketplaceFloor := config.MarketplaceSimilarityFloor
	if marketplaceFloor <= 0 {
		marketplaceFloor = 5
	}
	brandSiteFloor := config.BrandSiteSimilarityFloor
	if brandSiteFloor <= 0 {
		brandSiteFloor = 15
	}
	rankPenalty := config.RankPenalty
	if rankPenalty <= 0 {
		rankPenalty = 5
	}

	return &Extractor{
		registry:         reg,
		verifier:         NewBrandVerifier(reg),
		validator:        NewURLValidator(),
		marketplaceFloor: marketplaceFloor,
		brandSiteFloor:   brandSiteFloor,
		rankPenalty:      rankPenalty,
		debug:            config.DebugLogging,
	}
}

// Extract filters and scores matches against the allowed sites, then picks
// one best candidate per site. Returns the per-site results, the number of
// sites resolved, and the number of matches rejected by brand verification.
func (e *Extractor) Extract(
	matches []domain.Match,
	targetBrand string,
	allowedSites []string,
	originalTitle string,
) (map[string]domain.SiteResult, int, int) {
	results := make(map[string]domain.SiteResult, len(allowedSites))
	for _, siteKey := range allowedSites {
		results[siteKey] = domain.SiteResult{
			URL:   domain.URLNotFound,
			Price: domain.PriceNotAvailable,
		}
	}

	if len(matches) == 0 {
		return results, 0, 0
	}

	allowed := make(map[string]bool, len(allowedSites))
	for _, siteKey := range allowedSites {
		allowed[siteKey] = true
	}

	candidates := make(map[string][]domain.Candidate, len(allowedSites))
	rejected := 0

	for _, match := range matches {
		if match.Link == "" {
			continue
		}

		siteKey, ok := e.registry.IdentifySite(match.Link)
		if !ok || !allowed[siteKey] {
			continue
		}

		if !e.verifier.Verify(match, targetBrand, siteKey) {
			rejected++
			if e.debug {
				log.Printf("[MATCH] rank %d: brand mismatch for %q on %s", match.Rank, targetBrand, siteKey)
			}
			continue
		}

		if !e.validator.IsValidProductURL(match.Link) {
			if e.debug {
				log.Printf("[MATCH] rank %d: rejected non-product URL %s", match.Rank, match.Link)
			}
			continue
		}

		similarity := TitleSimilarity(originalTitle, match.Title)

		floor := e.brandSiteFloor
		if e.registry.IsPrimary(siteKey) {
			floor = e.marketplaceFloor
		}
		if similarity < floor {
			if e.debug {
				log.Printf("[MATCH] rank %d: similarity %.0f below floor %.0f on %s", match.Rank, similarity, floor, siteKey)
			}
			continue
		}

		candidates[siteKey] = append(candidates[siteKey], domain.Candidate{
			SiteKey:    siteKey,
			URL:        match.Link,
			Price:      priceFromPayload(match.Price),
			VisualRank: match.Rank,
			Similarity: similarity,
			Title:      match.Title,
		})
	}

	found := 0
	for _, siteKey := range allowedSites {
		siteCandidates := candidates[siteKey]
		if len(siteCandidates) == 0 {
			continue
		}

		best := e.selectBest(siteCandidates, siteKey)
		results[siteKey] = domain.SiteResult{URL: best.URL, Price: best.Price}
		found++

		if e.debug {
			log.Printf("[MATCH] %s: rank #%d | similarity %.0f%% | %s", strings.ToUpper(siteKey), best.VisualRank, best.Similarity, best.URL)
		}
	}

	return results, found, rejected
}

// priceSentinelValues are payload strings that mean "no usable price".
var priceSentinelValues = map[string]bool{"": true, "N/A": true, "null": true}

// priceFromPayload extracts a numeric price string from the decoded
// payload, or the "price not displayed" sentinel when nothing parses.
// A formatted display value wins over the pre-extracted number.
func priceFromPayload(payload domain.PricePayload) string {
	switch payload.Kind {
	case domain.PriceStructured:
		if !priceSentinelValues[payload.Display] {
			if cleaned, ok := cleanDisplayPrice(payload.Display); ok {
				return cleaned
			}
		}
		if payload.HasExtracted {
			return payload.ExtractedString()
		}
	case domain.PriceDisplay:
		if !priceSentinelValues[payload.Display] {
			if cleaned, ok := cleanDisplayPrice(payload.Display); ok {
				return cleaned
			}
		}
	}
	return domain.PriceNotDisplayed
}

// cleanDisplayPrice strips currency symbols and locale noise from a
// formatted price value ("₹1,299*", "Rs. 660") and validates the remainder
// parses as a non-negative number.
func cleanDisplayPrice(value string) (string, bool) {
	var b strings.Builder
	for _, c := range strings.ToLower(value) {
		switch c {
		case '₹', 'r', 's', 'i', 'n', '.', ',', '*':
			continue
		}
		if c == ' ' || c == '\t' || c == ' ' {
			continue
		}
		b.WriteRune(c)
	}

	cleaned := b.String()
	if cleaned == "" {
		return "", false
	}
	for _, c := range cleaned {
		if c < '0' || c > '9' {
			return "", false
		}
	}

	parsed, err := decimal.NewFromString(cleaned)
	if err != nil || parsed.IsNegative() {
		return "", false
	}
	return cleaned, true
}
