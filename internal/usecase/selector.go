package usecase

import "github.com/klydo/finder/internal/domain"

// selectBest picks exactly one candidate for a site. Marketplaces trust the
// provider's own visual ranking; brand sites trade rank for textual
// similarity because their catalogs are full of color/size variants that
// differ mainly in title. Ties resolve to the earliest candidate seen.
func (e *Extractor) selectBest(candidates []domain.Candidate, siteKey string) domain.Candidate {
	if e.registry.IsPrimary(siteKey) {
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.VisualRank < best.VisualRank {
				best = c
			}
		}
		return best
	}

	best := candidates[0]
	bestScore := best.Similarity - float64(best.VisualRank)*e.rankPenalty
	for _, c := range candidates[1:] {
		score := c.Similarity - float64(c.VisualRank)*e.rankPenalty
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}
