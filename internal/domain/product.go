package domain

// Product represents one catalog entry to find across shopping sites.
// Immutable once loaded from the catalog.
type Product struct {
	StyleID        string `json:"styleId"`
	Brand          string `json:"brand"`
	Title          string `json:"productTitle"`
	Gender         string `json:"gender,omitempty"`
	Category       string `json:"category,omitempty"`
	ReferencePrice string `json:"referencePrice,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

// Match is a single ranked result from the visual search provider.
// Rank is 1-based in provider order.
type Match struct {
	Rank   int          `json:"rank"`
	Title  string       `json:"title"`
	Link   string       `json:"link"`
	Source string       `json:"source"`
	Price  PricePayload `json:"price"`
}

// Candidate is a match that survived site resolution, brand verification,
// and URL validation for one product/site, with its similarity score.
type Candidate struct {
	SiteKey    string  `json:"siteKey"`
	URL        string  `json:"url"`
	Price      string  `json:"price"`
	VisualRank int     `json:"visualRank"`
	Similarity float64 `json:"similarity"`
	Title      string  `json:"title"`
}

// MatchRequest is a single-product matching request (serve mode).
type MatchRequest struct {
	StyleID  string `json:"styleId,omitempty"`
	Brand    string `json:"brand" binding:"required"`
	Title    string `json:"productTitle" binding:"required"`
	Gender   string `json:"gender,omitempty"`
	Category string `json:"category,omitempty"`
	ImageURL string `json:"imageUrl" binding:"required"`
}
