// Package registry holds the static shopping-site catalog and resolves
// brands and URLs to site keys.
package registry

import (
	"net/url"
	"strings"
)

// Site is one registered shopping site. Patterns are domain substrings;
// more specific patterns must come before generic ones in the site list.
type Site struct {
	Key      string
	Patterns []string
	Primary  bool
}

// Registry is the static site catalog plus the brand alias table.
// Never mutated after construction.
type Registry struct {
	sites   []Site
	byKey   map[string]Site
	aliases map[string]string
}

// defaultSites lists the two primary marketplaces first, then brand-owned
// sites. Order matters for URL identification: first pattern match wins.
var defaultSites = []Site{
	{Key: "myntra", Patterns: []string{"myntra.com"}, Primary: true},
	{Key: "slikk", Patterns: []string{"slikk.club"}, Primary: true},
	{Key: "bewakoof", Patterns: []string{"bewakoof.com"}},
	{Key: "sassafras", Patterns: []string{"sassafras.in"}},
	{Key: "indian_garage_co", Patterns: []string{"tigc.in"}},
	{Key: "bearhouse", Patterns: []string{"thebearhouse.com", "bearhouseindia.com", "thebearhouse.in"}},
	{Key: "bearcompany", Patterns: []string{"bearcompany.in", "thebearcompany.com"}},
	{Key: "mydesignation", Patterns: []string{"mydesignation.com"}},
}

// defaultBrandAliases maps normalised brand-name spellings to a site key.
var defaultBrandAliases = map[string]string{
	"bewakoof":               "bewakoof",
	"sassafras":              "sassafras",
	"indiangarageco":         "indian_garage_co",
	"indiangaragecompany":    "indian_garage_co",
	"theindiangaragecompany": "indian_garage_co",
	"theindiangaragecom":     "indian_garage_co",
	"theindiangarageco":      "indian_garage_co",
	"theindiangarage":        "indian_garage_co",
	"bearhouse":              "bearhouse",
	"thebearhouse":           "bearhouse",
	"bearhouseindia":         "bearhouse",
	"thebearhouseindia":      "bearhouse",
	"bearcompany":            "bearcompany",
	"thebearcompany":         "bearcompany",
	"bear":                   "bearcompany",
	"bearco":                 "bearcompany",
	"mydesignation":          "mydesignation",
	"designation":            "mydesignation",
}

// New creates a registry with the default site catalog and alias table.
func New() *Registry {
	byKey := make(map[string]Site, len(defaultSites))
	for _, site := range defaultSites {
		byKey[site.Key] = site
	}
	return &Registry{
		sites:   defaultSites,
		byKey:   byKey,
		aliases: defaultBrandAliases,
	}
}

// AllowedSites returns the site keys to search for a brand: always the
// primary marketplaces, plus the brand's own site when the brand is known.
// Unknown brands simply get only the primaries.
func (r *Registry) AllowedSites(brandName string) []string {
	var allowed []string
	for _, site := range r.sites {
		if site.Primary {
			allowed = append(allowed, site.Key)
		}
	}

	normalized := normalizeBrand(brandName)
	if key, ok := r.aliases[normalized]; ok {
		if _, exists := r.byKey[key]; exists && !contains(allowed, key) {
			allowed = append(allowed, key)
		}
	}
	return allowed
}

// IdentifySite resolves a URL to a registered site key, or ok=false when no
// pattern matches. Patterns are checked in registry order against the
// www-stripped domain and the full lowercased URL.
func (r *Registry) IdentifySite(rawURL string) (string, bool) {
	domain := extractDomain(rawURL)
	urlLower := strings.ToLower(rawURL)

	for _, site := range r.sites {
		for _, pattern := range site.Patterns {
			if strings.Contains(domain, pattern) || strings.Contains(urlLower, pattern) {
				return site.Key, true
			}
		}
	}
	return "", false
}

// IsPrimary reports whether the site key is one of the primary marketplaces.
func (r *Registry) IsPrimary(siteKey string) bool {
	return r.byKey[siteKey].Primary
}

// Keys returns all site keys in registry order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.sites))
	for _, site := range r.sites {
		keys = append(keys, site.Key)
	}
	return keys
}

// normalizeBrand lowercases a brand name and strips spaces, hyphens, and
// underscores so spelling variants collapse to one alias key.
func normalizeBrand(name string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "_", "")
	return replacer.Replace(strings.ToLower(name))
}

// extractDomain returns the lowercased hostname with a leading "www."
// stripped, or "" when the URL does not parse.
func extractDomain(rawURL string) string {
	parsed, err := url.Parse(strings.ToLower(rawURL))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
