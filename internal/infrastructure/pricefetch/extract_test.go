package pricefetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain number", "1299", "1299"},
		{"rupee symbol", "₹1,299", "1299"},
		{"rs prefix", "Rs. 999", "999"},
		{"trailing paise", "1299.00", "1299"},
		{"nonzero paise dropped", "1299.50", "1299"},
		{"paise amount corrected", "129900", "1299"},
		{"divisible amount corrected", "99000", "990"},
		{"below range", "99", ""},
		{"above range", "9999999", ""},
		{"empty", "", ""},
		{"no digits", "price", ""},
		{"rs dot bleeds into digits", "Rs.999", "999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanPrice(tt.input))
		})
	}
}

func TestExtractPrice_JSONField(t *testing.T) {
	html := `<script>{"name":"Hoodie","price": "1499", "currency":"INR"}</script>`

	assert.Equal(t, "1499", ExtractPrice(html, "https://example.com/p/x"))
}

func TestExtractPrice_RupeeSymbol(t *testing.T) {
	html := `<div class="offer">₹ 2,199.00 only</div>`

	assert.Equal(t, "2199", ExtractPrice(html, "https://example.com/p/x"))
}

func TestExtractPrice_RsPrefix(t *testing.T) {
	html := `<span>Rs. 849</span>`

	assert.Equal(t, "849", ExtractPrice(html, "https://example.com/p/x"))
}

func TestExtractPrice_SkipsUnreasonableValues(t *testing.T) {
	// First JSON price is a view counter; the second is the real price.
	html := `{"price": "7"} <p>₹1,099</p>`

	assert.Equal(t, "1099", ExtractPrice(html, "https://example.com/p/x"))
}

func TestExtractPrice_SiteSpecificSelector(t *testing.T) {
	// No generic pattern fires: the amount carries no currency marker and
	// no price-labelled field.
	html := `<span class="pdp-price strike">1999</span>`

	assert.Equal(t, "1999", ExtractPrice(html, "https://www.myntra.com/hoodie/1/buy"))
}

func TestExtractPrice_ShopifyPaiseSelector(t *testing.T) {
	html := `<span class="money">129900</span>`

	assert.Equal(t, "1299", ExtractPrice(html, "https://www.sassafras.in/products/blue-shirt"))
}

func TestExtractPrice_Fallback(t *testing.T) {
	html := `<body>limited offer ₹649 grab now</body>`

	// Unknown domain, no generic "price" markers beyond the rupee pattern.
	assert.Equal(t, "649", ExtractPrice(html, "https://unknown.example.com/a/b/c"))
}

func TestExtractPrice_NothingFound(t *testing.T) {
	html := `<html><body><h1>Page not found</h1></body></html>`

	assert.Equal(t, "", ExtractPrice(html, "https://www.myntra.com/hoodie/1/buy"))
}

func TestShouldUpdate(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		force    bool
		expected bool
	}{
		{"numeric value kept", "1299", false, false},
		{"force overrides numeric", "1299", true, true},
		{"empty", "", false, true},
		{"not found sentinel", "Not Found", false, true},
		{"unavailable sentinel", "Product not available on site", false, true},
		{"check site sentinel", "Check site for price", false, true},
		{"n/a", "N/A", false, true},
		{"error", "Error", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldUpdate(tt.price, tt.force))
		})
	}
}
