package usecase

import (
	"testing"

	"github.com/klydo/finder/internal/domain"
	"github.com/klydo/finder/internal/registry"
)

func TestSelectBest_Marketplace(t *testing.T) {
	e := NewExtractor(registry.New(), ExtractorConfig{})

	t.Run("minimum visual rank wins", func(t *testing.T) {
		candidates := []domain.Candidate{
			{URL: "u7", VisualRank: 7, Similarity: 100},
			{URL: "u2", VisualRank: 2, Similarity: 10},
			{URL: "u4", VisualRank: 4, Similarity: 90},
		}
		best := e.selectBest(candidates, "myntra")
		if best.URL != "u2" {
			t.Errorf("best = %q, want u2 (lowest rank, similarity ignored)", best.URL)
		}
	})

	t.Run("tie resolves to first seen", func(t *testing.T) {
		candidates := []domain.Candidate{
			{URL: "first", VisualRank: 3},
			{URL: "second", VisualRank: 3},
		}
		best := e.selectBest(candidates, "slikk")
		if best.URL != "first" {
			t.Errorf("best = %q, want first", best.URL)
		}
	})
}

func TestSelectBest_BrandSite(t *testing.T) {
	e := NewExtractor(registry.New(), ExtractorConfig{})

	t.Run("similarity minus rank penalty wins", func(t *testing.T) {
		candidates := []domain.Candidate{
			{URL: "ranked-first", VisualRank: 1, Similarity: 40},  // 40 - 5 = 35
			{URL: "better-match", VisualRank: 3, Similarity: 95},  // 95 - 15 = 80
			{URL: "distant-match", VisualRank: 9, Similarity: 99}, // 99 - 45 = 54
		}
		best := e.selectBest(candidates, "bewakoof")
		if best.URL != "better-match" {
			t.Errorf("best = %q, want better-match", best.URL)
		}
	})

	t.Run("tie resolves to first seen", func(t *testing.T) {
		candidates := []domain.Candidate{
			{URL: "first", VisualRank: 1, Similarity: 50},  // 45
			{URL: "second", VisualRank: 2, Similarity: 55}, // 45
		}
		best := e.selectBest(candidates, "bearhouse")
		if best.URL != "first" {
			t.Errorf("best = %q, want first on equal score", best.URL)
		}
	})

	t.Run("custom rank penalty respected", func(t *testing.T) {
		custom := NewExtractor(registry.New(), ExtractorConfig{RankPenalty: 1})
		candidates := []domain.Candidate{
			{URL: "near", VisualRank: 1, Similarity: 50}, // 49
			{URL: "far", VisualRank: 10, Similarity: 60}, // 50
		}
		best := custom.selectBest(candidates, "bewakoof")
		if best.URL != "far" {
			t.Errorf("best = %q, want far with rank penalty 1", best.URL)
		}
	})
}
