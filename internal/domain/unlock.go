package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnlockRecord proves that a user paid to unlock a specific item.
// Corresponds to the user_unlocks table. Append-only; the
// (user, item kind, item id) tuple is the natural key and its existence
// is the access-granted proof for the paid path.
type UnlockRecord struct {
	ID         int64
	UserWallet string // lowercase
	ItemKind   ItemKind
	ItemID     int64
	TxHash     string
	AmountPaid decimal.Decimal
	UnlockedAt time.Time
}

// GateUse proves that a free unlock was consumed for a specific item.
// Distinct from UnlockRecord (paid path) and from the per-user cooldown
// timestamp on LedgerBalance (global, not per-item).
type GateUse struct {
	ID         int64
	UserWallet string // lowercase
	ItemKind   ItemKind
	ItemID     int64
	UsedAt     time.Time
}

// NFTReceipt records a minted on-chain receipt for a successful paid
// unlock. One-to-one with a mint; the token id is the natural key.
type NFTReceipt struct {
	TokenID    int64 // natural key
	UserWallet string
	ItemKind   ItemKind
	ItemID     int64
	PricePaid  decimal.Decimal
	TxHash     string
	MintedAt   time.Time
}
