// Package extract holds the pluggable text-extraction strategies used
// during ingestion: amount and sector parsing for filings, sentiment
// classification for articles, and feed-summary cleanup. None of them
// are authoritative; callers must tolerate replacement implementations.
package extract

import (
	"strings"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
)

// SentimentClassifier tags an article as Bullish, Bearish or Neutral.
type SentimentClassifier interface {
	Classify(title, summary string) string
}

// KeywordSentiment is the default classifier: counts bullish vs bearish
// keyword hits over the lowercased title+summary.
type KeywordSentiment struct {
	bullish []string
	bearish []string
}

// NewKeywordSentiment creates the default keyword classifier.
func NewKeywordSentiment() *KeywordSentiment {
	return &KeywordSentiment{
		bullish: []string{"surge", "rally", "gain", "approve", "adoption", "upgrade", "success"},
		bearish: []string{"crash", "drop", "fall", "reject", "hack", "scam", "fraud"},
	}
}

// Classify returns the sentiment with the higher keyword count;
// ties are Neutral.
func (k *KeywordSentiment) Classify(title, summary string) string {
	text := strings.ToLower(title + " " + summary)

	var bullishCount, bearishCount int
	for _, w := range k.bullish {
		if strings.Contains(text, w) {
			bullishCount++
		}
	}
	for _, w := range k.bearish {
		if strings.Contains(text, w) {
			bearishCount++
		}
	}

	switch {
	case bullishCount > bearishCount:
		return domain.SentimentBullish
	case bearishCount > bullishCount:
		return domain.SentimentBearish
	default:
		return domain.SentimentNeutral
	}
}

// Verify interface compliance at compile time.
var _ SentimentClassifier = (*KeywordSentiment)(nil)
