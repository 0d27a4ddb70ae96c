package usecase

import (
	"testing"

	"github.com/klydo/finder/internal/domain"
	"github.com/klydo/finder/internal/registry"
)

func TestVerify_BrandSiteAlwaysPasses(t *testing.T) {
	v := NewBrandVerifier(registry.New())

	match := domain.Match{
		Title:  "Some completely unrelated listing",
		Link:   "https://thebearhouse.com/products/shirt",
		Source: "thebearhouse.com",
	}

	for _, siteKey := range []string{"bewakoof", "bearhouse", "bearcompany", "sassafras", "indian_garage_co", "mydesignation"} {
		if !v.Verify(match, "Totally Different Brand", siteKey) {
			t.Errorf("brand site %q must pass verification unconditionally", siteKey)
		}
	}
}

func TestVerify_Marketplace(t *testing.T) {
	v := NewBrandVerifier(registry.New())

	t.Run("brand in title passes", func(t *testing.T) {
		match := domain.Match{Title: "Bewakoof Men Navy Hoodie", Link: "https://www.myntra.com/x/buy", Source: "myntra"}
		if !v.Verify(match, "Bewakoof", "myntra") {
			t.Error("brand present in title should pass")
		}
	})

	t.Run("brand in link passes", func(t *testing.T) {
		match := domain.Match{Title: "Navy Hoodie", Link: "https://www.myntra.com/bewakoof-hoodie/123/buy", Source: "myntra"}
		if !v.Verify(match, "Bewakoof", "myntra") {
			t.Error("brand present in link should pass")
		}
	})

	t.Run("missing brand fails", func(t *testing.T) {
		match := domain.Match{Title: "Roadster Navy Hoodie", Link: "https://www.myntra.com/roadster/123/buy", Source: "myntra"}
		if v.Verify(match, "Bewakoof", "myntra") {
			t.Error("listing without the brand should fail")
		}
	})

	t.Run("multi-word brand matches concatenated form", func(t *testing.T) {
		match := domain.Match{Title: "bearhouse checked shirt", Link: "https://www.myntra.com/x/buy", Source: "myntra"}
		if !v.Verify(match, "Bear House", "myntra") {
			t.Error("concatenated multi-word brand should match")
		}
	})

	t.Run("leading the is dropped", func(t *testing.T) {
		match := domain.Match{Title: "Indian Garage Co Slim Shirt", Link: "https://www.myntra.com/x/buy", Source: "myntra"}
		if !v.Verify(match, "The Indian Garage Co", "myntra") {
			t.Error("brand without leading 'the' should match")
		}
	})

	t.Run("hand-coded alias matches", func(t *testing.T) {
		match := domain.Match{Title: "BWKF Oversized Tee", Link: "https://www.myntra.com/x/buy", Source: "myntra"}
		if !v.Verify(match, "Bewakoof", "myntra") {
			t.Error("bwkf alias should match for Bewakoof")
		}

		match = domain.Match{Title: "TIGC Slim Fit Shirt", Link: "https://www.myntra.com/x/buy", Source: "myntra"}
		if !v.Verify(match, "The Indian Garage Company", "myntra") {
			t.Error("tigc alias should match")
		}
	})

	t.Run("variants of two chars or fewer are ignored", func(t *testing.T) {
		match := domain.Match{Title: "ab cd ef", Link: "https://www.myntra.com/ab/buy", Source: ""}
		if v.Verify(match, "AB", "myntra") {
			t.Error("two-character brand variant must not match")
		}
	})
}
