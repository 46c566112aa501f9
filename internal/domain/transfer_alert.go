package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferAlert represents a large-value on-chain transfer that crossed
// the per-token alert threshold. Corresponds to the transfer_alerts table.
// Sender/receiver labels are resolved once at insert time and frozen into
// the row; they are never re-derived. The transaction hash is the natural key.
type TransferAlert struct {
	ID              int64
	TxHash          string // natural key
	SenderAddress   string
	SenderLabel     string
	ReceiverAddress string
	ReceiverLabel   string
	TokenSymbol     string
	TokenAddress    string
	Amount          decimal.Decimal
	PoolAddress     *string // DEX pool, if the token is tradeable
	Tradeable       bool
	ObservedAt      time.Time
	Premium         bool
	CreatedAt       time.Time
}
