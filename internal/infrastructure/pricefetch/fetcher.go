package pricefetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/klydo/finder/internal/domain"
	"golang.org/x/time/rate"
)

// userAgents is rotated across fetch attempts so a retry does not present
// the same browser fingerprint that was just refused.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Edge/120.0.0.0",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
}

// invalidPriceValues are sentinels a stored price column can hold instead of
// a number. A stored value in this set means the price still needs fetching.
var invalidPriceValues = map[string]struct{}{
	"Check site for price":          {},
	"Product not available on site": {},
	"Not Found":                     {},
	"N/A":                           {},
	"":                              {},
	"Error":                         {},
}

// Config carries the tunables for the page fetcher.
type Config struct {
	MaxRetries int
	Timeout    time.Duration
	RetryPause time.Duration
	Debug      bool
}

// Fetcher downloads product pages and extracts listed prices from the raw
// HTML. It implements domain.PriceFetcher.
type Fetcher struct {
	httpClient  *http.Client
	maxRetries  int
	retryPause  time.Duration
	rateLimiter *rate.Limiter
	debug       bool
}

// NewFetcher creates a page fetcher with user-agent rotation and retries.
func NewFetcher(config Config) *Fetcher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryPause <= 0 {
		config.RetryPause = time.Second
	}

	// One page per second keeps us under every storefront's radar.
	limiter := rate.NewLimiter(rate.Limit(1), 1)

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		maxRetries:  config.MaxRetries,
		retryPause:  config.RetryPause,
		rateLimiter: limiter,
		debug:       config.Debug,
	}
}

// FetchPrice downloads the page at url and returns the listed price in whole
// rupees. It returns domain.ErrPageUnavailable when the page cannot be
// fetched and domain.ErrPriceNotFound when the page carries no usable price.
func (f *Fetcher) FetchPrice(ctx context.Context, url string) (string, error) {
	if url == "" || url == domain.URLNotFound {
		return "", fmt.Errorf("%w: no product url", domain.ErrPageUnavailable)
	}

	html, err := f.fetchPage(ctx, url)
	if err != nil {
		return "", err
	}

	price := ExtractPrice(html, url)
	if price == "" {
		f.debugLog("no price found in page %s", url)
		return "", fmt.Errorf("%w: %s", domain.ErrPriceNotFound, url)
	}

	f.debugLog("extracted price %s from %s", price, url)
	return price, nil
}

// fetchPage downloads a page, rotating user agents across attempts.
func (f *Fetcher) fetchPage(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		if err := f.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrPageUnavailable, err)
		}
		req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrPageUnavailable, err)
			f.debugLog("attempt %d/%d failed for %s: %v", attempt, f.maxRetries, url, err)
			f.pause(attempt)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrPageUnavailable, resp.StatusCode)
			f.debugLog("attempt %d/%d for %s: status %d", attempt, f.maxRetries, url, resp.StatusCode)
			f.pause(attempt)
			continue
		}
		if readErr != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrPageUnavailable, readErr)
			f.pause(attempt)
			continue
		}

		return string(body), nil
	}

	return "", lastErr
}

// pause sleeps between attempts, except after the last one.
func (f *Fetcher) pause(attempt int) {
	if attempt < f.maxRetries {
		time.Sleep(f.retryPause)
	}
}

func (f *Fetcher) debugLog(format string, args ...interface{}) {
	if f.debug {
		log.Printf("[PRICE] "+format, args...)
	}
}

// ShouldUpdate reports whether a stored price value needs a fresh fetch.
// Numeric values are kept unless force is set.
func ShouldUpdate(price string, force bool) bool {
	if force {
		return true
	}
	_, invalid := invalidPriceValues[price]
	return invalid
}
