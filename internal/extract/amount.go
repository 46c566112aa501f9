package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountExtractor pulls a raised amount out of free filing text.
// Returns false when no amount can be found.
type AmountExtractor interface {
	Extract(text string) (decimal.Decimal, bool)
}

// SectorExtractor tags a filing with a sector from free text.
// Returns "Unknown" when nothing matches.
type SectorExtractor interface {
	Extract(text string) string
}

// amountPattern matches "$25,000,000", "$25M", "$1.5 million",
// "$500k" and similar.
var amountPattern = regexp.MustCompile(`(?i)\$\s*([\d,]+(?:\.\d+)?)\s*(million|billion|m|b|k)?`)

// RegexAmount is the default amount extractor.
type RegexAmount struct{}

// NewRegexAmount creates the default regex-based amount extractor.
func NewRegexAmount() *RegexAmount {
	return &RegexAmount{}
}

// Extract parses the first dollar amount in text, scaling suffixes
// (k, m/million, b/billion) to whole units.
func (RegexAmount) Extract(text string) (decimal.Decimal, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}

	raw := strings.ReplaceAll(m[1], ",", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}

	switch strings.ToLower(m[2]) {
	case "k":
		amount = amount.Mul(decimal.NewFromInt(1_000))
	case "m", "million":
		amount = amount.Mul(decimal.NewFromInt(1_000_000))
	case "b", "billion":
		amount = amount.Mul(decimal.NewFromInt(1_000_000_000))
	}

	return amount, true
}

// sectorKeywords maps lowercase markers to sector tags, checked in order.
var sectorKeywords = []struct {
	marker string
	sector string
}{
	{"artificial intelligence", "AI/ML"},
	{"machine learning", "AI/ML"},
	{" ai ", "AI/ML"},
	{"biotech", "Biotech"},
	{"healthcare", "Healthcare"},
	{"pharma", "Healthcare"},
	{"fintech", "Fintech"},
	{"payments", "Fintech"},
	{"saas", "SaaS"},
	{"software", "SaaS"},
	{"e-commerce", "E-commerce"},
	{"ecommerce", "E-commerce"},
	{"crypto", "Crypto"},
	{"blockchain", "Crypto"},
	{"technology", "Technology"},
}

// KeywordSector is the default sector extractor.
type KeywordSector struct{}

// NewKeywordSector creates the default keyword-based sector extractor.
func NewKeywordSector() *KeywordSector {
	return &KeywordSector{}
}

// Extract returns the first matching sector tag, or "Unknown".
func (KeywordSector) Extract(text string) string {
	lower := " " + strings.ToLower(text) + " "
	for _, kw := range sectorKeywords {
		if strings.Contains(lower, kw.marker) {
			return kw.sector
		}
	}
	return "Unknown"
}

// Verify interface compliance at compile time.
var (
	_ AmountExtractor = (*RegexAmount)(nil)
	_ SectorExtractor = (*KeywordSector)(nil)
)
