package pricefetch

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Listed apparel prices fall inside this band; anything outside it is a SKU
// id, a view counter, or a paise amount that leaked into a price field.
var (
	minReasonablePrice = decimal.NewFromInt(100)
	maxReasonablePrice = decimal.NewFromInt(100000)
)

// genericPricePatterns are tried in order against the raw HTML. JSON price
// fields come first: structured data is more trustworthy than display text.
var genericPricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)"price"[:\s]+["']?(\d+)[.\d]*["']?`),
	regexp.MustCompile(`(?i)₹\s*(\d[\d,]*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)Rs\.?\s*(\d[\d,]*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)INR\s*(\d[\d,]*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)price["\s:]+(\d[\d,]+)`),
}

// fallbackPricePattern catches any rupee-prefixed number once the targeted
// patterns have failed.
var fallbackPricePattern = regexp.MustCompile(`(?:₹|Rs)\s?([\d,]+)`)

// fractionSuffix recognizes a paise fraction at the end of a price string.
var fractionSuffix = regexp.MustCompile(`^(\d+)\.\d{1,2}$`)

// siteSelectorClasses maps a domain substring to the CSS classes its
// storefront renders prices under, most specific first.
var siteSelectorClasses = []struct {
	domain  string
	classes []string
}{
	{"myntra", []string{"pdp-price", "pdp-discount-container", "product-price", "price-value"}},
	{"tigc.in", []string{"money", "price", "product-price"}},
	{"slikk", []string{"font-semibold", "price", "product-price"}},
	{"bewakoof", []string{"productPrice", "discountedPriceText", "sellingPrice", "price", "product-price"}},
	{"sassafras", []string{"money", "price-item--sale", "price-item--regular", "product-price", "price"}},
	{"bearhouse", []string{"money", "price-item--sale", "price-item--regular", "product-price", "price"}},
	{"mydesignation", []string{"product-price", "price", "selling-price", "final-price"}},
}

// ExtractPrice pulls a price out of raw product-page HTML. Strategies are
// tried in order of reliability: generic patterns over the raw text, then
// class-scoped site selectors, then a loose rupee-number fallback. Returns
// the cleaned whole-rupee price, or "" when nothing usable was found.
func ExtractPrice(html, url string) string {
	if price := extractGeneric(html); price != "" {
		return price
	}
	if price := extractSiteSpecific(html, url); price != "" {
		return price
	}
	return extractFallback(html)
}

// extractGeneric scans the raw HTML with the generic price patterns and
// returns the first candidate inside the reasonable range.
func extractGeneric(html string) string {
	for _, pattern := range genericPricePatterns {
		for _, match := range pattern.FindAllStringSubmatch(html, -1) {
			candidate := strings.NewReplacer(",", "", " ", "").Replace(match[1])
			value, err := decimal.NewFromString(candidate)
			if err != nil {
				continue
			}
			if value.GreaterThanOrEqual(minReasonablePrice) && value.LessThanOrEqual(maxReasonablePrice) {
				return CleanPrice(candidate)
			}
		}
	}
	return ""
}

// extractSiteSpecific emulates per-site CSS class selectors with regexes
// over the raw HTML: find an element carrying a known price class and read
// its text content.
func extractSiteSpecific(html, url string) string {
	urlLower := strings.ToLower(url)
	for _, site := range siteSelectorClasses {
		if !strings.Contains(urlLower, site.domain) {
			continue
		}
		for _, class := range site.classes {
			pattern := regexp.MustCompile(`class="[^"]*\b` + regexp.QuoteMeta(class) + `\b[^"]*"[^>]*>\s*([^<]+)`)
			for _, match := range pattern.FindAllStringSubmatch(html, -1) {
				text := strings.TrimSpace(match[1])
				if !containsDigit(text) {
					continue
				}
				if price := CleanPrice(text); price != "" {
					return price
				}
			}
		}
		break
	}
	return ""
}

// extractFallback accepts any rupee-marked number still inside the
// reasonable range.
func extractFallback(html string) string {
	for _, match := range fallbackPricePattern.FindAllStringSubmatch(html, -1) {
		if price := CleanPrice(match[1]); price != "" {
			return price
		}
	}
	return ""
}

// CleanPrice normalizes a raw price string to whole rupees. It strips
// currency markers and separators, drops a trailing paise fraction, and
// corrects values that were stored in paise. Returns "" when the input does
// not clean to a number in the reasonable range.
func CleanPrice(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	// A short trailing fraction is a paise display ("1299.00"); any other
	// dot placement is separator noise bleeding in from "Rs." or ellipses.
	if m := fractionSuffix.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
	} else {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	if cleaned == "" {
		return ""
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return ""
	}

	// Shopify stores often embed amounts in paise (129900 for ₹1299).
	if value.GreaterThan(decimal.NewFromInt(10000)) && value.Mod(decimal.NewFromInt(100)).IsZero() {
		rupees := value.Div(decimal.NewFromInt(100))
		if rupees.GreaterThanOrEqual(minReasonablePrice) && rupees.LessThanOrEqual(maxReasonablePrice) {
			value = rupees
		}
	}

	if value.LessThan(minReasonablePrice) || value.GreaterThan(maxReasonablePrice) {
		return ""
	}

	return value.String()
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
