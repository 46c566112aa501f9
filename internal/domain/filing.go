package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Filing represents a private-placement filing discovered from an
// external filing feed. Corresponds to the filings table.
// Rows are immutable once created; the filing URL is the natural key.
type Filing struct {
	ID           int64
	CompanyName  string
	AmountRaised decimal.Decimal
	FilingURL    string // natural key
	Sector       string
	FiledAt      time.Time
	Premium      bool
	CreatedAt    time.Time
}
