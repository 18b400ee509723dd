// Package textparse extracts prices, dates and condition labels from raw
// page text. The source markup is inconsistent, so these are first-match
// heuristics with fixed fallbacks rather than a grammar.
package textparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns are tried in order; the first match wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`\$(\d+\.\d{2})`),
	regexp.MustCompile(`\$(\d+)`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`[A-Za-z]+ \d{1,2}, \d{4}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}`),
	regexp.MustCompile(`[A-Za-z]+ \d{1,2}`),
}

// Condition vocabulary in canonical casing. Longer tokens sit before their
// substrings so "Near Mint" never resolves to "Mint" and "Non-Foil" never
// resolves to "Foil".
var conditions = []string{
	"Near Mint", "Lightly Played", "Moderately Played", "Heavily Played",
	"Damaged", "Mint",
	"NM", "LP", "MP", "HP", "DMG",
	"Japanese", "English",
	"Non-Foil", "Foil", "Non-Holo", "Holo",
}

// ExtractPrice returns the first currency-prefixed amount in text with
// thousands separators stripped, or 0 when no such token exists.
func ExtractPrice(text string) float64 {
	for _, pattern := range pricePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		return price
	}
	return 0.0
}

// ExtractDate returns the first date-shaped substring verbatim, with no
// normalization across formats, or "Unknown Date" when none match.
func ExtractDate(text string) string {
	for _, pattern := range datePatterns {
		if m := pattern.FindString(text); m != "" {
			return m
		}
	}
	return "Unknown Date"
}

// ExtractCondition returns the first vocabulary label found in text,
// case-insensitively, cased as the vocabulary spells it.
func ExtractCondition(text string) string {
	lower := strings.ToLower(text)
	for _, condition := range conditions {
		if strings.Contains(lower, strings.ToLower(condition)) {
			return condition
		}
	}
	return "Unknown Condition"
}
