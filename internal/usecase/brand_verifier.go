package usecase

import (
	"strings"

	"github.com/klydo/finder/internal/domain"
	"github.com/klydo/finder/internal/registry"
)

// minVariantLength guards against tiny brand fragments ("co", "in")
// matching everywhere.
const minVariantLength = 2

// BrandVerifier checks that a match actually belongs to the target brand.
// Presence on the brand's own site counts as verification by itself;
// marketplace listings must carry the brand somewhere in title, link, or
// source.
type BrandVerifier struct {
	registry *registry.Registry
}

// NewBrandVerifier creates a verifier over the given site registry.
func NewBrandVerifier(reg *registry.Registry) *BrandVerifier {
	return &BrandVerifier{registry: reg}
}

// Verify reports whether the match passes relaxed brand verification for
// the resolved site.
func (v *BrandVerifier) Verify(match domain.Match, targetBrand, siteKey string) bool {
	if siteKey != "" && !v.registry.IsPrimary(siteKey) {
		return true
	}

	combined := strings.ToLower(match.Title) + " " + strings.ToLower(match.Link) + " " + strings.ToLower(match.Source)

	for _, variation := range brandVariations(targetBrand) {
		if len(variation) > minVariantLength && strings.Contains(combined, variation) {
			return true
		}
	}
	return false
}

// brandVariations builds the spelling variants checked against marketplace
// listings: joined/hyphenated/underscored forms, the raw name, the
// concatenated multi-word form, the name with a leading "the" dropped, and
// hand-coded aliases for brands known to appear under nicknames.
func brandVariations(targetBrand string) []string {
	targetLower := strings.ToLower(targetBrand)
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(targetLower))

	variations := []string{
		strings.ReplaceAll(targetLower, " ", ""),
		strings.ReplaceAll(targetLower, " ", "-"),
		strings.ReplaceAll(targetLower, " ", "_"),
		targetLower,
	}

	if len(words) > 1 {
		variations = append(variations, strings.Join(words, ""))

		if words[0] == "the" {
			withoutThe := strings.Join(words[1:], " ")
			variations = append(variations, withoutThe, strings.ReplaceAll(withoutThe, " ", ""))
		}
	}

	if strings.Contains(targetLower, "bear") {
		variations = append(variations,
			"bear", "bearhouse", "bear house", "thebearhouse", "the bear house",
			"bearcompany", "bear company", "thebearcompany", "the bear company",
		)
	}

	if strings.Contains(targetLower, "bewakoof") {
		variations = append(variations, "bewakoof", "bwkf")
	}

	if strings.Contains(targetLower, "indian") && strings.Contains(targetLower, "garage") {
		variations = append(variations, "indiangarage", "indian garage", "tigc")
	}

	return variations
}
