package agent

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
)

func TestParseAutoUnlock(t *testing.T) {
	p := NewParser()

	cmd := p.Parse("Auto-unlock all deals over $5m in fintech")
	assert.Equal(t, domain.AgentActionAutoUnlock, cmd.Action)
	require.NotNil(t, cmd.Filter)
	assert.Equal(t, domain.KindDeal, cmd.Filter.Type)
	assert.Equal(t, int64(5_000_000), cmd.Filter.MinAmount)
	assert.Equal(t, "Fintech", cmd.Filter.Sector)
	require.NotNil(t, cmd.MaxCost)
	assert.True(t, cmd.MaxCost.Equal(decimal.NewFromFloat(1.0)))
}

func TestParseAutoUnlockAmountSuffixes(t *testing.T) {
	p := NewParser()

	cmd := p.Parse("auto unlock whale alerts above 500k from binance")
	assert.Equal(t, domain.AgentActionAutoUnlock, cmd.Action)
	assert.Equal(t, domain.KindAlert, cmd.Filter.Type)
	assert.Equal(t, int64(500_000), cmd.Filter.MinAmount)
	assert.Equal(t, "Binance", cmd.Filter.Keyword)
}

func TestParseSwap(t *testing.T) {
	p := NewParser()

	cmd := p.Parse("copy the last whale trade and buy 2.5 ETH")
	assert.Equal(t, domain.AgentActionSwap, cmd.Action)
	assert.Equal(t, "ETH", cmd.Token)
	assert.Equal(t, 2.5, cmd.Amount)
	assert.Equal(t, domain.KindAlert, cmd.ItemType)
	assert.Equal(t, "latest", cmd.ItemID)
}

func TestParseSummarize(t *testing.T) {
	p := NewParser()

	cmd := p.Parse("summarize the latest news")
	assert.Equal(t, domain.AgentActionSummarize, cmd.Action)
	assert.Equal(t, domain.KindNews, cmd.ItemType)
	assert.Equal(t, "latest", cmd.ItemID)
}

func TestParseShowStatus(t *testing.T) {
	p := NewParser()

	assert.Equal(t, domain.AgentActionShowStatus, p.Parse("show my balance").Action)
	assert.Equal(t, domain.AgentActionShowStatus, p.Parse("agent status").Action)
}

func TestParseDirectUnlockCosts(t *testing.T) {
	p := NewParser()

	tests := []struct {
		command string
		kind    domain.ItemKind
		cost    float64
	}{
		{"unlock this deal", domain.KindDeal, 0.50},
		{"unlock the whale alert", domain.KindAlert, 0.25},
		{"unlock that news item", domain.KindNews, 0.10},
	}

	for _, tt := range tests {
		cmd := p.Parse(tt.command)
		assert.Equal(t, domain.AgentActionUnlock, cmd.Action, tt.command)
		assert.Equal(t, tt.kind, cmd.ItemType, tt.command)
		require.NotNil(t, cmd.Cost, tt.command)
		assert.True(t, cmd.Cost.Equal(decimal.NewFromFloat(tt.cost)), tt.command)
	}
}

func TestParseUnknown(t *testing.T) {
	p := NewParser()
	assert.Equal(t, ActionUnknown, p.Parse("make me a sandwich").Action)
}
