package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote represents the latest market snapshot for a symbol.
// Corresponds to the quotes table. Unlike every other record kind this
// one is replaced in place on each fetch (upsert, latest-wins); no
// history is retained.
type Quote struct {
	Symbol    string // natural key
	Price     decimal.Decimal
	Change24h float64 // percent
	Volume24h float64
	UpdatedAt time.Time
}
