package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klydo/finder/internal/domain"
)

// Matcher resolves a single product across its allowed shopping sites.
type Matcher interface {
	Match(ctx context.Context, request *domain.MatchRequest) (*domain.ProductResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matcher Matcher
}

// NewHandler creates a new HTTP handler
func NewHandler(matcher Matcher) *Handler {
	return &Handler{matcher: matcher}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "klydo-finder",
		"version": "1.0.0",
	})
}

// MatchProduct handles single-product matching requests
func (h *Handler) MatchProduct(c *gin.Context) {
	if h.matcher == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Matching service not configured",
		})
		return
	}

	var request domain.MatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.matcher.Match(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProviderUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Visual search provider unavailable"})
	default:
		log.Printf("[HTTP] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
