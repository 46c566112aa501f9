package domain

import "time"

// Sentiment classification for an article.
const (
	SentimentBullish = "Bullish"
	SentimentBearish = "Bearish"
	SentimentNeutral = "Neutral"
)

// Article represents a news article ingested from a feed.
// Corresponds to the articles table. Immutable once created;
// the canonical URL is the natural key.
type Article struct {
	ID          int64
	Title       string
	Summary     string
	Sentiment   string
	Source      string
	URL         string // natural key
	PublishedAt time.Time
	Premium     bool
	CreatedAt   time.Time
}
