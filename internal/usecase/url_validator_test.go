package usecase

import "testing"

func TestIsValidProductURL_GlobalRejects(t *testing.T) {
	v := NewURLValidator()

	rejected := []string{
		"https://www.myntra.com/men/tshirts/buy",
		"https://www.bewakoof.com/collections/hoodies",
		"https://slikk.club/search?q=hoodie",
		"https://thebearhouse.com/products/shirt?page=2",
		"https://sassafras.in/sale/products/dress",
		"https://example.com/clothing/item/123",
	}

	for _, url := range rejected {
		if v.IsValidProductURL(url) {
			t.Errorf("IsValidProductURL(%q) = true, want false (non-product marker)", url)
		}
	}
}

func TestIsValidProductURL_Bewakoof(t *testing.T) {
	v := NewURLValidator()

	cases := []struct {
		name string
		url  string
		want bool
	}{
		{
			name: "category slug with short id rejected",
			url:  "https://www.bewakoof.com/p/mens-blue-hoodies-16",
			want: false,
		},
		{
			name: "product slug with long id accepted",
			url:  "https://www.bewakoof.com/p/mens-navy-oversized-hoodie-102345",
			want: true,
		},
		{
			name: "too few words rejected",
			url:  "https://www.bewakoof.com/p/navy-hoodie-102345",
			want: false,
		},
		{
			name: "numeric id under 5 digits rejected",
			url:  "https://www.bewakoof.com/p/mens-navy-oversized-hoodie-1234",
			want: false,
		},
		{
			name: "no numeric id needs six words",
			url:  "https://www.bewakoof.com/p/mens-navy-oversized-solid-cotton-hoodie",
			want: true,
		},
		{
			name: "no numeric id with five words rejected",
			url:  "https://www.bewakoof.com/p/mens-navy-oversized-cotton-hoodie",
			want: false,
		},
		{
			name: "no /p/ but /buy accepted",
			url:  "https://www.bewakoof.com/buy/some-item",
			want: true,
		},
		{
			name: "no /p/ and no product token rejected",
			url:  "https://www.bewakoof.com/new-arrivals",
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.IsValidProductURL(tc.url); got != tc.want {
				t.Errorf("IsValidProductURL(%q) = %v, want %v", tc.url, got, tc.want)
			}
		})
	}
}

func TestIsValidProductURL_Myntra(t *testing.T) {
	v := NewURLValidator()

	if !v.IsValidProductURL("https://www.myntra.com/tshirts/roadster/solid-tee/12345/buy") {
		t.Error("myntra /buy URL should be accepted")
	}
	if !v.IsValidProductURL("https://www.myntra.com/p/12345") {
		t.Error("myntra /p/ URL should be accepted")
	}
	if v.IsValidProductURL("https://www.myntra.com/roadster-tshirts") {
		t.Error("myntra URL without /buy or /p/ should be rejected")
	}
}

func TestIsValidProductURL_Slikk(t *testing.T) {
	v := NewURLValidator()

	if !v.IsValidProductURL("https://slikk.club/shop/oversized-hoodie-navy") {
		t.Error("slikk /shop URL with slug should be accepted")
	}
	// Permissive default for this site.
	if !v.IsValidProductURL("https://slikk.club/some-landing") {
		t.Error("slikk URL without tokens should still be accepted")
	}
}

func TestIsValidProductURL_BrandSites(t *testing.T) {
	v := NewURLValidator()

	cases := []struct {
		url  string
		want bool
	}{
		{"https://mydesignation.com/products/malayali-tee", true},
		{"https://mydesignation.com/pages/about", false},
		{"https://sassafras.in/products/floral-dress", true},
		{"https://sassafras.in/dresses-floral", false},
		{"https://thebearhouse.com/products/checked-shirt", true},
		{"https://bearcompany.in/product/oxford-shirt", true},
		{"https://thebearhouse.com/lookbook", false},
		{"https://www.tigc.in/products/slim-shirt", true},
		{"https://www.tigc.in/shirts", false},
	}

	for _, tc := range cases {
		if got := v.IsValidProductURL(tc.url); got != tc.want {
			t.Errorf("IsValidProductURL(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestIsValidProductURL_GenericFallback(t *testing.T) {
	v := NewURLValidator()

	if !v.IsValidProductURL("https://shop.example.com/item/blue-shirt") {
		t.Error("unknown domain with enough segments should be accepted")
	}
	if v.IsValidProductURL("https://example.com") {
		t.Error("bare domain should be rejected")
	}
}
