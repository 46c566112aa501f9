package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agent action types recorded in the audit log.
const (
	AgentActionAutoUnlock = "auto_unlock"
	AgentActionSummarize  = "summarize"
	AgentActionUnlock     = "unlock"
	AgentActionShowStatus = "show_status"
	AgentActionSwap       = "swap"
)

// AgentAction is an append-only audit entry for an agent-initiated
// operation. Corresponds to the agent_actions table. Recording an action
// never blocks a grant decision.
type AgentAction struct {
	ID          string // uuid
	UserWallet  string
	ActionType  string
	ItemKind    *ItemKind
	ItemID      *int64
	RuleMatched *string
	Cost        decimal.Decimal
	Success     bool
	CreatedAt   time.Time
}
