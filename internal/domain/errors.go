package domain

import "errors"

var (
	// ErrProviderUnavailable is returned when the visual search provider
	// cannot be reached or keeps failing after retries
	ErrProviderUnavailable = errors.New("visual search provider unavailable")

	// ErrNoImage is returned when a product has no image reference to search
	ErrNoImage = errors.New("product has no image reference")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when a result is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrPriceNotFound is returned when no price could be extracted from a
	// product page
	ErrPriceNotFound = errors.New("price not found on page")

	// ErrPageUnavailable is returned when a product page cannot be fetched
	ErrPageUnavailable = errors.New("product page unavailable")
)
