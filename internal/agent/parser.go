// Package agent parses natural-language terminal commands into
// structured actions using keyword matching.
package agent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
)

// ActionUnknown marks a command the parser could not classify.
const ActionUnknown = "unknown"

// defaultMaxCost caps per-item spend for auto-unlock rules, in USDC.
var defaultMaxCost = decimal.NewFromFloat(1.0)

// unlockCosts is the per-kind unlock price quoted back to the user.
var unlockCosts = map[domain.ItemKind]decimal.Decimal{
	domain.KindDeal:  decimal.NewFromFloat(0.50),
	domain.KindAlert: decimal.NewFromFloat(0.25),
	domain.KindNews:  decimal.NewFromFloat(0.10),
}

// Filter narrows which items an auto-unlock rule applies to.
type Filter struct {
	Type      domain.ItemKind `json:"type,omitempty"`
	MinAmount int64           `json:"minAmount,omitempty"`
	Sector    string          `json:"sector,omitempty"`
	Keyword   string          `json:"keyword,omitempty"`
}

// Command is the structured form of a parsed terminal command.
type Command struct {
	Action   string           `json:"action"`
	Filter   *Filter          `json:"filter,omitempty"`
	ItemType domain.ItemKind  `json:"itemType,omitempty"`
	ItemID   string           `json:"itemId,omitempty"`
	Token    string           `json:"token,omitempty"`
	Amount   float64          `json:"amount,omitempty"`
	Cost     *decimal.Decimal `json:"cost,omitempty"`
	MaxCost  *decimal.Decimal `json:"maxCost,omitempty"`
}

var (
	amountFilterPattern = regexp.MustCompile(`(\$|over |above )(\d+)([km])?`)
	swapAmountPattern   = regexp.MustCompile(`(\d+\.?\d*)\s*(eth|usdc|btc)`)
)

// Parser turns free-text commands into Commands.
type Parser struct{}

// NewParser creates a keyword-matching command parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse classifies a command. An unrecognized command yields
// ActionUnknown, never an error.
func (Parser) Parse(command string) Command {
	lower := strings.ToLower(command)

	switch {
	case strings.Contains(lower, "auto") || strings.Contains(lower, "unlock all"):
		return parseAutoUnlock(lower)
	case strings.Contains(lower, "copy") || strings.Contains(lower, "buy") || strings.Contains(lower, "swap"):
		return parseSwap(lower)
	case strings.Contains(lower, "summarize") || strings.Contains(lower, "summary") || strings.Contains(lower, "analyze"):
		return parseSummarize(lower)
	case strings.Contains(lower, "status") || strings.Contains(lower, "balance") || strings.Contains(lower, "show agent"):
		return Command{Action: domain.AgentActionShowStatus}
	case strings.Contains(lower, "unlock"):
		return parseUnlock(lower)
	}
	return Command{Action: ActionUnknown}
}

func parseAutoUnlock(lower string) Command {
	maxCost := defaultMaxCost
	cmd := Command{
		Action:  domain.AgentActionAutoUnlock,
		Filter:  &Filter{},
		MaxCost: &maxCost,
	}

	switch {
	case strings.Contains(lower, "deal"):
		cmd.Filter.Type = domain.KindDeal
	case strings.Contains(lower, "alert") || strings.Contains(lower, "whale"):
		cmd.Filter.Type = domain.KindAlert
	case strings.Contains(lower, "news"):
		cmd.Filter.Type = domain.KindNews
	}

	if m := amountFilterPattern.FindStringSubmatch(lower); m != nil {
		amount, err := strconv.ParseInt(m[2], 10, 64)
		if err == nil {
			switch m[3] {
			case "k":
				amount *= 1_000
			case "m":
				amount *= 1_000_000
			}
			cmd.Filter.MinAmount = amount
		}
	}

	switch {
	case strings.Contains(lower, "ai"):
		cmd.Filter.Sector = "AI"
	case strings.Contains(lower, "fintech"):
		cmd.Filter.Sector = "Fintech"
	case strings.Contains(lower, "crypto"):
		cmd.Filter.Sector = "Crypto"
	}

	switch {
	case strings.Contains(lower, "binance"):
		cmd.Filter.Keyword = "Binance"
	case strings.Contains(lower, "coinbase"):
		cmd.Filter.Keyword = "Coinbase"
	}

	return cmd
}

func parseSwap(lower string) Command {
	cmd := Command{Action: domain.AgentActionSwap}

	switch {
	case strings.Contains(lower, "eth"):
		cmd.Token = "ETH"
	case strings.Contains(lower, "usdc"):
		cmd.Token = "USDC"
	case strings.Contains(lower, "btc"):
		cmd.Token = "BTC"
	}

	if m := swapAmountPattern.FindStringSubmatch(lower); m != nil {
		if amount, err := strconv.ParseFloat(m[1], 64); err == nil {
			cmd.Amount = amount
		}
	}

	if strings.Contains(lower, "last") || strings.Contains(lower, "latest") {
		cmd.ItemType = domain.KindAlert
		cmd.ItemID = "latest"
	}

	return cmd
}

func parseSummarize(lower string) Command {
	cmd := Command{Action: domain.AgentActionSummarize}

	switch {
	case strings.Contains(lower, "deal"):
		cmd.ItemType = domain.KindDeal
	case strings.Contains(lower, "alert"):
		cmd.ItemType = domain.KindAlert
	case strings.Contains(lower, "news"):
		cmd.ItemType = domain.KindNews
	}

	if strings.Contains(lower, "latest") || strings.Contains(lower, "last") {
		cmd.ItemID = "latest"
	}

	return cmd
}

func parseUnlock(lower string) Command {
	cmd := Command{Action: domain.AgentActionUnlock}

	switch {
	case strings.Contains(lower, "deal"):
		cmd.ItemType = domain.KindDeal
	case strings.Contains(lower, "alert"):
		cmd.ItemType = domain.KindAlert
	case strings.Contains(lower, "news"):
		cmd.ItemType = domain.KindNews
	}

	cost := unlockCosts[domain.KindDeal] // default
	if c, ok := unlockCosts[cmd.ItemType]; ok {
		cost = c
	}
	cmd.Cost = &cost

	return cmd
}

// CostFor returns the unlock price for an item kind.
func CostFor(kind domain.ItemKind) decimal.Decimal {
	return unlockCosts[kind]
}
