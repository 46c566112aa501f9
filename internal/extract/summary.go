package extract

import (
	"regexp"
	"strings"
)

// maxSummaryLen bounds stored article summaries.
const maxSummaryLen = 200

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// CleanSummary strips markup from a feed summary and truncates it to a
// bounded length. An empty result falls back to the title.
func CleanSummary(raw, title string) string {
	text := htmlTagPattern.ReplaceAllString(raw, "")
	text = strings.Join(strings.Fields(text), " ")

	if text == "" {
		return title
	}
	// Truncate on a rune boundary; a byte slice could split a
	// multibyte character and leave invalid UTF-8.
	if runes := []rune(text); len(runes) > maxSummaryLen {
		text = string(runes[:maxSummaryLen]) + "..."
	}
	return text
}

// SourceName derives a display name from a feed URL.
func SourceName(feedURL string) string {
	lower := strings.ToLower(feedURL)
	switch {
	case strings.Contains(lower, "coindesk"):
		return "CoinDesk"
	case strings.Contains(lower, "cointelegraph"):
		return "Cointelegraph"
	case strings.Contains(lower, "reuters"):
		return "Reuters"
	case strings.Contains(lower, "bloomberg"):
		return "Bloomberg"
	default:
		return "Unknown Source"
	}
}
