package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/klydo/finder/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// MatchServiceConfig holds configuration for the match service.
type MatchServiceConfig struct {
	CacheTTL time.Duration
}

// MatchService serves single-product match lookups with caching in front
// of the orchestrator (serve mode). Batch runs bypass it and always hit
// the provider fresh.
type MatchService struct {
	orchestrator *Orchestrator
	cache        domain.ResultCache
	cacheTTL     time.Duration
}

// NewMatchService creates a match service with dependencies.
func NewMatchService(orchestrator *Orchestrator, cache domain.ResultCache, config MatchServiceConfig) *MatchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &MatchService{
		orchestrator: orchestrator,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// Match resolves one product across its allowed sites.
// Flow: check cache -> run both search passes -> cache -> return.
func (s *MatchService) Match(ctx context.Context, request *domain.MatchRequest) (*domain.ProductResult, error) {
	if request == nil || request.Brand == "" || request.Title == "" {
		return nil, domain.ErrInvalidRequest
	}
	if request.ImageURL == "" {
		return nil, fmt.Errorf("%w: image url is required", domain.ErrInvalidRequest)
	}

	cacheKey := s.generateCacheKey(request)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	product := domain.Product{
		StyleID:  request.StyleID,
		Brand:    request.Brand,
		Title:    request.Title,
		Gender:   request.Gender,
		Category: request.Category,
		ImageURL: request.ImageURL,
	}

	result, err := s.orchestrator.MatchProduct(ctx, product)
	if err != nil {
		if errors.Is(err, domain.ErrNoImage) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
		log.Printf("[MATCH] cache write failed for %q: %v", cacheKey, err)
	}

	return result, nil
}

// generateCacheKey creates a normalized cache key from the request.
// Format: "match:{normalized_brand}:{normalized_title}"
func (s *MatchService) generateCacheKey(request *domain.MatchRequest) string {
	return fmt.Sprintf("match:%s:%s", normalizeForCacheKey(request.Brand), normalizeForCacheKey(request.Title))
}

// normalizeForCacheKey lowercases a string and strips special characters
// so spelling noise collapses to one key.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
