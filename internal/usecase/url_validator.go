package usecase

import (
	"regexp"
	"strings"
)

// nonProductMarkers are URL fragments that indicate category, collection,
// search, or otherwise non-product pages on any site. Checked before any
// site-specific rule fires.
var nonProductMarkers = []string{
	"/collections/", "/collection/", "/category/", "/categories/",
	"/search", "?search=", "/s?", "/find/",
	"/brand/", "/brands/", "/sale/", "/deals/",
	"/all-products", "/shop?",
	"/filter", "/sort=",
	"?page=", "&page=",
	"/men/", "/women/", "/kids/", "/unisex/",
	"/clothing/", "/accessories/", "/footwear/",
}

// categorySlugRegex matches bewakoof slugs that name a garment category and
// end in a short numeric id (e.g. "mens-blue-hoodies-16"), which are
// category listings, not products.
var categorySlugRegex = regexp.MustCompile(
	`(?:hoodies|tshirts|shirts|jeans|dresses|kurtas|pants|shorts|jackets|sweaters|sweatshirts|tops|bottoms|skirts|trousers)-\d{1,3}$`,
)

// siteURLRule binds a set of domain substrings to a site-specific
// product-page check. Rules are evaluated in order; the first domain match
// decides.
type siteURLRule struct {
	domains []string
	accept  func(urlLower string) bool
}

// URLValidator decides whether a URL points at an actual product page.
// It is a strict filter: rejecting a real product URL is tolerated,
// accepting a category page is not.
type URLValidator struct {
	rules []siteURLRule
}

// NewURLValidator creates a validator with the per-site rule table.
func NewURLValidator() *URLValidator {
	return &URLValidator{
		rules: []siteURLRule{
			{domains: []string{"bewakoof.com"}, accept: acceptBewakoof},
			{domains: []string{"myntra.com"}, accept: acceptMyntra},
			{domains: []string{"slikk.club"}, accept: acceptSlikk},
			{domains: []string{"mydesignation.com"}, accept: acceptShopifyProducts},
			{domains: []string{"sassafras.in"}, accept: acceptShopifyProducts},
			{domains: []string{"bearhouse", "bearcompany", "thebearhouse"}, accept: acceptBearBrands},
			{domains: []string{"tigc.in"}, accept: acceptShopifyProducts},
		},
	}
}

// IsValidProductURL reports whether the URL passes the global non-product
// filter and the matching site rule (or the generic fallback).
func (v *URLValidator) IsValidProductURL(rawURL string) bool {
	urlLower := strings.ToLower(rawURL)

	for _, marker := range nonProductMarkers {
		if strings.Contains(urlLower, marker) {
			return false
		}
	}

	for _, rule := range v.rules {
		for _, domain := range rule.domains {
			if strings.Contains(urlLower, domain) {
				return rule.accept(urlLower)
			}
		}
	}

	return acceptGeneric(urlLower)
}

// acceptBewakoof validates bewakoof URLs by slug shape. Product slugs are
// long and carry a 5+ digit trailing id; category slugs are short with a
// 1-3 digit id.
func acceptBewakoof(urlLower string) bool {
	if !strings.Contains(urlLower, "/p/") {
		return strings.Contains(urlLower, "/product/") || strings.Contains(urlLower, "/buy")
	}

	idx := strings.LastIndex(urlLower, "/p/")
	slug := strings.Trim(urlLower[idx+len("/p/"):], "/")

	if categorySlugRegex.MatchString(slug) {
		return false
	}

	words := strings.Split(slug, "-")
	if len(words) < 4 {
		return false
	}

	lastSegment := words[len(words)-1]
	if isAllDigits(lastSegment) {
		// Category ids are short (16, 24, ...); product ids run 5+ digits.
		if len(lastSegment) < 5 {
			return false
		}
	} else if len(words) < 6 {
		return false
	}

	return true
}

func acceptMyntra(urlLower string) bool {
	return strings.Contains(urlLower, "/buy") || strings.Contains(urlLower, "/p/")
}

// acceptSlikk is permissive: a non-trivial remainder after /shop or
// /product confirms a product page, but anything else still passes.
func acceptSlikk(urlLower string) bool {
	for _, token := range []string{"/shop", "/product"} {
		if strings.Contains(urlLower, token) {
			parts := strings.SplitN(urlLower, token, 2)
			if len(parts) > 1 && len(strings.Trim(parts[1], "/")) > 1 {
				return true
			}
		}
	}
	return true
}

func acceptShopifyProducts(urlLower string) bool {
	return strings.Contains(urlLower, "/products/")
}

func acceptBearBrands(urlLower string) bool {
	return strings.Contains(urlLower, "/products/") || strings.Contains(urlLower, "/product/")
}

// acceptGeneric accepts unrecognised domains only when the URL splits into
// at least 3 non-empty, non-query segments.
func acceptGeneric(urlLower string) bool {
	count := 0
	for _, segment := range strings.Split(urlLower, "/") {
		if segment != "" && !strings.HasPrefix(segment, "?") {
			count++
		}
	}
	return count >= 3
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
