package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/klydo/finder/internal/domain"
	"golang.org/x/time/rate"
)

const maxErrorBodyBytes = 512

// Client handles communication with the SerpAPI Google Lens engine.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	country     string
	language    string
	rateLimiter *rate.Limiter
	debug       bool
}

// Config carries the tunables for the SerpAPI client.
type Config struct {
	APIKey   string
	BaseURL  string
	Country  string
	Language string
	Debug    bool
}

// lensResponse mirrors the slice of the Google Lens payload we consume.
type lensResponse struct {
	VisualMatches []visualMatch `json:"visual_matches"`
}

type visualMatch struct {
	Title  string              `json:"title"`
	Link   string              `json:"link"`
	Source string              `json:"source"`
	Price  domain.PricePayload `json:"price"`
}

// NewClient creates a new SerpAPI client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://serpapi.com/search"
	}
	if config.Country == "" {
		config.Country = "in"
	}
	if config.Language == "" {
		config.Language = "en"
	}

	// SerpAPI developer plans cap out around 100 searches per hour,
	// so 100/3600 ≈ 0.028 requests/sec.
	limiter := rate.NewLimiter(rate.Limit(0.028), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      config.APIKey,
		baseURL:     config.BaseURL,
		country:     config.Country,
		language:    config.Language,
		rateLimiter: limiter,
		debug:       config.Debug,
	}
}

// SetDebug toggles verbose request logging.
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// SearchImage runs a visual-only Google Lens search for the given image.
func (c *Client) SearchImage(ctx context.Context, imageURL string) ([]domain.Match, error) {
	return c.search(ctx, imageURL, "")
}

// SearchImageWithQuery runs a Google Lens search narrowed by a text query.
func (c *Client) SearchImageWithQuery(ctx context.Context, imageURL, query string) ([]domain.Match, error) {
	return c.search(ctx, imageURL, query)
}

func (c *Client) search(ctx context.Context, imageURL, query string) ([]domain.Match, error) {
	if imageURL == "" {
		return nil, domain.ErrNoImage
	}

	params := url.Values{}
	params.Add("engine", "google_lens")
	params.Add("url", imageURL)
	if query != "" {
		params.Add("q", query)
	}
	params.Add("api_key", c.apiKey)
	params.Add("country", c.country)
	params.Add("hl", c.language)
	params.Add("no_cache", "true")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[LENS] Rate limiter error: %v", err)
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[LENS] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[LENS] API error (attempt %d) - Status: %d, Body: %s",
				attempt, resp.StatusCode, limitBody(body, maxErrorBodyBytes))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
			if !retryableStatus(resp.StatusCode) {
				return nil, lastErr
			}
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var lens lensResponse
		if err := json.Unmarshal(body, &lens); err != nil {
			log.Printf("[LENS] JSON decode error: %v", err)
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		matches := make([]domain.Match, 0, len(lens.VisualMatches))
		for i, vm := range lens.VisualMatches {
			matches = append(matches, domain.Match{
				Rank:   i + 1,
				Title:  vm.Title,
				Link:   vm.Link,
				Source: vm.Source,
				Price:  vm.Price,
			})
		}

		c.debugLog("%d visual matches for image %q (query %q)", len(matches), imageURL, query)
		return matches, nil
	}

	log.Printf("[LENS] All retries failed for image %q", imageURL)
	return nil, lastErr
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "klydo-finder/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	return resp, nil
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[LENS] "+format, args...)
	}
}

// retryableStatus reports whether a non-200 status is worth another attempt.
// 5xx and 429 are transient; other 4xx responses will not improve on retry.
func retryableStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// limitBody truncates a response body for log output.
func limitBody(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
