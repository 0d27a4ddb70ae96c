package domain

import (
	"context"
	"time"
)

// VisualSearcher defines the interface for the external visual search
// provider. Match ordering is rank-significant and must be preserved.
type VisualSearcher interface {
	SearchImage(ctx context.Context, imageURL string) ([]Match, error)
	SearchImageWithQuery(ctx context.Context, imageURL, query string) ([]Match, error)
}

// PriceFetcher defines the interface for the price-lookup collaborator that
// scrapes a product page for its current price.
type PriceFetcher interface {
	FetchPrice(ctx context.Context, url string) (string, error)
}

// ResultCache defines the interface for caching matched product results
// (serve mode only; batch runs always hit the provider fresh).
type ResultCache interface {
	Get(ctx context.Context, key string) (*ProductResult, error)
	Set(ctx context.Context, key string, result *ProductResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
