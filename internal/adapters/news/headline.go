package news

import (
	"strings"
	"unicode/utf8"
)

// minHeadlineLength rejects truncated fragments and navigation crumbs
const minHeadlineLength = 20

// garbageKeywords marks navigation and boilerplate text that scrapers
// pick up alongside real headlines. Shared by the aggregator and the
// repositories so filter policy cannot drift between them.
var garbageKeywords = []string{
	"skip to", "main content", "latin america", "europe & middle east",
	"united states", "world markets", "latest news", "sign in",
	"subscribe", "menu", "navigation", "footer", "header",
	"cookie", "privacy", "terms of", "contact us", "marketwatch",
}

// IsValidHeadline reports whether headline looks like a real news
// article title rather than scraped page furniture
func IsValidHeadline(headline string) bool {
	if utf8.RuneCountInString(headline) < minHeadlineLength {
		return false
	}

	lower := strings.ToLower(headline)
	for _, keyword := range garbageKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}

	return true
}
