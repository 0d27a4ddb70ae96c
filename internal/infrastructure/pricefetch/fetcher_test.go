package pricefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klydo/finder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(Config{RetryPause: time.Millisecond})
}

func TestNewFetcher_Defaults(t *testing.T) {
	fetcher := NewFetcher(Config{})

	assert.Equal(t, 3, fetcher.maxRetries)
	assert.Equal(t, time.Second, fetcher.retryPause)
	assert.NotNil(t, fetcher.httpClient)
	assert.NotNil(t, fetcher.rateLimiter)
}

func TestFetchPrice_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`<html><body><span>₹1,299</span></body></html>`))
	}))
	defer server.Close()

	fetcher := newTestFetcher()

	price, err := fetcher.FetchPrice(context.Background(), server.URL+"/p/hoodie")

	require.NoError(t, err)
	assert.Equal(t, "1299", price)
}

func TestFetchPrice_EmptyURL(t *testing.T) {
	fetcher := newTestFetcher()

	_, err := fetcher.FetchPrice(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrPageUnavailable)

	_, err = fetcher.FetchPrice(context.Background(), domain.URLNotFound)
	assert.ErrorIs(t, err, domain.ErrPageUnavailable)
}

func TestFetchPrice_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	agents := map[string]struct{}{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		agents[r.Header.Get("User-Agent")] = struct{}{}
		if attempts < 3 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`<span>Rs. 849</span>`))
	}))
	defer server.Close()

	fetcher := newTestFetcher()

	price, err := fetcher.FetchPrice(context.Background(), server.URL+"/p/tee")

	require.NoError(t, err)
	assert.Equal(t, "849", price)
	assert.Equal(t, 3, attempts)
}

func TestFetchPrice_AllAttemptsFail(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := newTestFetcher()

	_, err := fetcher.FetchPrice(context.Background(), server.URL+"/p/gone")

	assert.ErrorIs(t, err, domain.ErrPageUnavailable)
	assert.Equal(t, 3, attempts)
}

func TestFetchPrice_NoPriceInPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>Sold out</h1></body></html>`))
	}))
	defer server.Close()

	fetcher := newTestFetcher()

	_, err := fetcher.FetchPrice(context.Background(), server.URL+"/p/soldout")

	assert.ErrorIs(t, err, domain.ErrPriceNotFound)
}
