package domain

// Output sentinels. Downstream tooling (the price re-fetcher) pattern-matches
// on these exact strings, so they are part of the contract.
const (
	URLNotFound       = "Not Found"
	PriceNotAvailable = "Product not available on site"
	PriceCheckSite    = "Check site for price"
	PriceNotDisplayed = "Price not displayed in listing"
)

// SiteResult is the resolved (url, price) pair for one site.
type SiteResult struct {
	URL   string `json:"url"`
	Price string `json:"price"`
}

// Found reports whether the site resolved to a real product URL.
func (r SiteResult) Found() bool {
	return r.URL != URLNotFound
}

// ProductResult holds one SiteResult per allowed site for a product.
// The key set of Sites equals AllowedSites exactly and never changes after
// construction; pass 2 may overwrite entries but never add or remove keys.
type ProductResult struct {
	Product      Product               `json:"product"`
	AllowedSites []string              `json:"allowedSites"`
	Sites        map[string]SiteResult `json:"sites"`
}

// NewProductResult creates a result with every allowed site initialised to
// the "Not Found" / "not available" sentinels.
func NewProductResult(product Product, allowedSites []string) *ProductResult {
	sites := make(map[string]SiteResult, len(allowedSites))
	for _, key := range allowedSites {
		sites[key] = SiteResult{
			URL:   URLNotFound,
			Price: PriceNotAvailable,
		}
	}
	return &ProductResult{
		Product:      product,
		AllowedSites: allowedSites,
		Sites:        sites,
	}
}

// MissingSites returns the allowed sites still unresolved, in allowed-site
// order.
func (r *ProductResult) MissingSites() []string {
	var missing []string
	for _, key := range r.AllowedSites {
		if !r.Sites[key].Found() {
			missing = append(missing, key)
		}
	}
	return missing
}

// FoundCount returns how many allowed sites resolved to a product URL.
func (r *ProductResult) FoundCount() int {
	count := 0
	for _, key := range r.AllowedSites {
		if r.Sites[key].Found() {
			count++
		}
	}
	return count
}
