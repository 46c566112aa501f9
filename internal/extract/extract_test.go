package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
)

func TestKeywordSentiment(t *testing.T) {
	c := NewKeywordSentiment()

	tests := []struct {
		name    string
		title   string
		summary string
		want    string
	}{
		{"bullish", "Bitcoin ETF Approved", "Markets surge on adoption news", domain.SentimentBullish},
		{"bearish", "Exchange Hack", "Prices crash after the scam unravels", domain.SentimentBearish},
		{"neutral", "Weekly Market Recap", "A quiet week in digital assets", domain.SentimentNeutral},
		{"tie is neutral", "Rally Fizzles", "Early gain erased by late drop and fall", domain.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.title, tt.summary)
			if got != tt.want {
				t.Errorf("Classify(%q, %q) = %s, want %s", tt.title, tt.summary, got, tt.want)
			}
		})
	}
}

func TestRegexAmount(t *testing.T) {
	e := NewRegexAmount()

	tests := []struct {
		text string
		want int64
		ok   bool
	}{
		{"raised $25,000,000 in Series B", 25_000_000, true},
		{"a $5M round", 5_000_000, true},
		{"secured $1.5 million from investors", 1_500_000, true},
		{"$2 billion valuation", 2_000_000_000, true},
		{"$750k seed", 750_000, true},
		{"no amount mentioned here", 0, false},
	}

	for _, tt := range tests {
		got, ok := e.Extract(tt.text)
		if ok != tt.ok {
			t.Errorf("Extract(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("Extract(%q) = %s, want %d", tt.text, got, tt.want)
		}
	}
}

func TestKeywordSector(t *testing.T) {
	e := NewKeywordSector()

	if got := e.Extract("A machine learning platform for hospitals"); got != "AI/ML" {
		t.Errorf("Extract = %s, want AI/ML", got)
	}
	if got := e.Extract("Next-generation payments infrastructure"); got != "Fintech" {
		t.Errorf("Extract = %s, want Fintech", got)
	}
	if got := e.Extract("Family-owned bakery expansion"); got != "Unknown" {
		t.Errorf("Extract = %s, want Unknown", got)
	}
}

func TestCleanSummary(t *testing.T) {
	got := CleanSummary("<p>Hello <b>world</b></p>", "Title")
	if got != "Hello world" {
		t.Errorf("CleanSummary = %q", got)
	}

	long := strings.Repeat("a", 300)
	got = CleanSummary(long, "Title")
	if len(got) != maxSummaryLen+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("long summary not truncated: len=%d", len(got))
	}

	if got := CleanSummary("", "Fallback Title"); got != "Fallback Title" {
		t.Errorf("empty summary should fall back to title, got %q", got)
	}
}

func TestCleanSummaryTruncatesOnRuneBoundary(t *testing.T) {
	multibyte := strings.Repeat("€", 250)
	got := CleanSummary(multibyte, "Title")

	if !utf8.ValidString(got) {
		t.Fatalf("truncated summary is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != maxSummaryLen+3 {
		t.Errorf("rune count = %d, want %d", n, maxSummaryLen+3)
	}
	if !strings.HasSuffix(got, "€...") {
		t.Errorf("unexpected tail: %q", got[len(got)-12:])
	}
}

func TestSourceName(t *testing.T) {
	if got := SourceName("https://www.coindesk.com/arc/outboundfeeds/rss/"); got != "CoinDesk" {
		t.Errorf("SourceName = %s", got)
	}
	if got := SourceName("https://cointelegraph.com/rss"); got != "Cointelegraph" {
		t.Errorf("SourceName = %s", got)
	}
	if got := SourceName("https://example.com/feed"); got != "Unknown Source" {
		t.Errorf("SourceName = %s", got)
	}
}
