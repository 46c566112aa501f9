package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

var oneMillion = decimal.NewFromInt(1_000_000)
var tenMillion = decimal.NewFromInt(10_000_000)

// TemplateSummarizer produces deterministic writeups without any
// external dependency. It is the default strategy and the fallback when
// the LLM is unavailable.
type TemplateSummarizer struct{}

// NewTemplateSummarizer creates the default template summarizer.
func NewTemplateSummarizer() *TemplateSummarizer {
	return &TemplateSummarizer{}
}

// Summarize renders the writeup for the requested item.
func (TemplateSummarizer) Summarize(_ context.Context, req Request) (string, error) {
	switch {
	case req.Kind == domain.KindDeal && req.Filing != nil:
		return dealSummary(req.Filing), nil
	case req.Kind == domain.KindAlert && req.Alert != nil:
		return alertSummary(req.Alert), nil
	case req.Kind == domain.KindNews && req.Article != nil:
		return newsSummary(req.Article), nil
	}
	return "", fmt.Errorf("%w: summary request needs the %s record", storage.ErrInvalidInput, req.Kind)
}

func dealSummary(f *domain.Filing) string {
	amountM := f.AmountRaised.Div(oneMillion).Round(0)
	sector := f.Sector
	if sector == "" || sector == "Unknown" {
		sector = "Technology"
	}
	lowerSector := strings.ToLower(sector)

	var b strings.Builder
	fmt.Fprintf(&b, "**%s - %s Sector**\n\n", f.CompanyName, sector)
	fmt.Fprintf(&b, "**Funding Round**: $%sM raised\n\n", amountM)
	b.WriteString("**Key Highlights**:\n")
	fmt.Fprintf(&b, "- Leading %s company securing significant capital\n", lowerSector)
	b.WriteString("- Strong investor interest from top-tier VCs\n")
	b.WriteString("- Positioned for rapid market expansion\n\n")
	b.WriteString("**Market Impact**:\n")
	fmt.Fprintf(&b, "This funding round signals strong confidence in the %s sector.\n\n", lowerSector)
	b.WriteString("**Risk Factors**:\n")
	b.WriteString("- Market competition increasing\n")
	b.WriteString("- Execution risk on deployment of capital\n")
	fmt.Fprintf(&b, "- Regulatory considerations for the %s sector\n", lowerSector)
	return b.String()
}

func alertSummary(a *domain.TransferAlert) string {
	var b strings.Builder
	b.WriteString("**Whale Transaction Analysis**\n\n")
	b.WriteString("**Transaction Details**:\n")
	fmt.Fprintf(&b, "- Amount: %s %s\n", a.Amount, a.TokenSymbol)
	fmt.Fprintf(&b, "- From: %s\n", a.SenderLabel)
	fmt.Fprintf(&b, "- To: %s\n\n", a.ReceiverLabel)
	b.WriteString("**Entity Analysis**:\n")
	fmt.Fprintf(&b, "%s is a %s known for high-volume activity.\n\n", a.SenderLabel, categoryDescription(a.SenderLabel))
	b.WriteString("**Market Impact Prediction**:\n")
	fmt.Fprintf(&b, "- Confidence: %s\n\n", confidenceLevel(a.Amount))
	b.WriteString("**Trading Implications**:\n")
	b.WriteString(tradingImplications(a.SenderLabel, a.ReceiverLabel))
	b.WriteString("\n\n**Risk Assessment**:\n")
	fmt.Fprintf(&b, "- Counter-party risk: %s\n", counterPartyRisk(a.ReceiverLabel))
	return b.String()
}

func newsSummary(a *domain.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", a.Title)
	fmt.Fprintf(&b, "**Source**: %s\n", a.Source)
	fmt.Fprintf(&b, "**Sentiment**: %s\n\n", a.Sentiment)
	b.WriteString("**Executive Summary**:\n")
	b.WriteString(a.Summary)
	b.WriteString("\n\n**Key Takeaways**:\n")
	b.WriteString("- Major development with potential market-wide implications\n")
	fmt.Fprintf(&b, "- %s sentiment indicates %s\n\n", a.Sentiment, sentimentImplication(a.Sentiment))
	b.WriteString("**Market Impact Analysis**:\n")
	b.WriteString(marketImpact(a.Sentiment))
	return b.String()
}

func categoryDescription(label string) string {
	switch {
	case strings.Contains(label, "Exchange"):
		return "centralized exchange"
	case strings.Contains(label, "Trading"):
		return "market maker"
	case strings.Contains(label, "Wallet"):
		return "custody provider"
	default:
		return "blockchain entity"
	}
}

func confidenceLevel(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThan(tenMillion):
		return "High (>$10M transaction)"
	case amount.GreaterThan(oneMillion):
		return "Medium ($1-10M transaction)"
	default:
		return "Low (<$1M transaction)"
	}
}

func tradingImplications(sender, receiver string) string {
	switch {
	case strings.Contains(receiver, "Exchange"):
		return "Potential sell pressure as tokens move to exchange."
	case strings.Contains(sender, "Exchange"):
		return "Accumulation signal as tokens leave exchange."
	default:
		return "Monitor for follow-up transactions to confirm directional bias."
	}
}

func counterPartyRisk(label string) string {
	switch {
	case strings.Contains(label, "Unknown"):
		return "High - Unidentified wallet"
	case strings.Contains(label, "Exchange"):
		return "Low - Reputable exchange"
	default:
		return "Medium - Known entity"
	}
}

func sentimentImplication(sentiment string) string {
	switch sentiment {
	case domain.SentimentBullish:
		return "positive price action and increased buying interest"
	case domain.SentimentBearish:
		return "potential selling pressure and risk-off sentiment"
	default:
		return "mixed market reaction with sideways price action"
	}
}

func marketImpact(sentiment string) string {
	switch sentiment {
	case domain.SentimentBullish:
		return "Expected to drive positive momentum across crypto markets."
	case domain.SentimentBearish:
		return "May trigger risk-off behavior and profit-taking. Monitor key support levels."
	default:
		return "Neutral impact expected; the market is likely to digest the news without significant movement."
	}
}

var _ Summarizer = (*TemplateSummarizer)(nil)
