package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex pattern for performance
var wordRegex = regexp.MustCompile(`\w+`)

// Color match adjustments applied on top of keyword overlap.
const (
	colorMatchBonus      = 15.0
	colorMismatchPenalty = 20.0
)

// titleStopWords are ignored when extracting title keywords.
var titleStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "with": true, "for": true, "on": true, "in": true,
	"at": true, "to": true, "buy": true, "shop": true, "online": true,
}

// colorVocabulary is the fixed set of color tokens recognised in titles.
var colorVocabulary = []string{
	"black", "white", "blue", "red", "green", "yellow", "pink", "purple",
	"orange", "brown", "grey", "gray", "beige", "navy", "olive", "maroon",
	"silver", "gold", "cream", "khaki", "tan", "teal", "burgundy", "mint",
	"lavender", "coral", "peach", "mustard", "charcoal", "rose",
}

// TitleSimilarity scores how well a found listing title matches the
// original product title, on a 0-100 scale. The base score is the fraction
// of the original title's keywords present in the found title; a matching
// color adds a bonus, a conflicting color subtracts a penalty.
func TitleSimilarity(originalTitle, foundTitle string) float64 {
	if originalTitle == "" || foundTitle == "" {
		return 0
	}

	origKeywords := titleKeywords(originalTitle)
	if len(origKeywords) == 0 {
		return 0
	}
	foundKeywords := titleKeywords(foundTitle)

	common := 0
	for keyword := range origKeywords {
		if foundKeywords[keyword] {
			common++
		}
	}
	score := float64(common) / float64(len(origKeywords)) * 100

	origColors := ExtractColors(originalTitle)
	foundColors := ExtractColors(foundTitle)

	if len(origColors) > 0 {
		if anyColorIn(origColors, foundColors) {
			score += colorMatchBonus
		} else if len(foundColors) > 0 {
			score -= colorMismatchPenalty
		}
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// ExtractColors returns the color tokens found in a title, in vocabulary
// order. The first entry is used to sharpen the pass-2 text query.
func ExtractColors(title string) []string {
	titleLower := strings.ToLower(title)

	var found []string
	for _, color := range colorVocabulary {
		if strings.Contains(titleLower, color) {
			found = append(found, color)
		}
	}
	return found
}

// titleKeywords extracts the lowercase word tokens of a title minus stop
// words.
func titleKeywords(title string) map[string]bool {
	words := wordRegex.FindAllString(strings.ToLower(title), -1)

	keywords := make(map[string]bool, len(words))
	for _, word := range words {
		if !titleStopWords[word] {
			keywords[word] = true
		}
	}
	return keywords
}

func anyColorIn(colors, in []string) bool {
	set := make(map[string]bool, len(in))
	for _, c := range in {
		set[c] = true
	}
	for _, c := range colors {
		if set[c] {
			return true
		}
	}
	return false
}
