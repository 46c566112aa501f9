package domain

import (
	"strings"
	"time"
)

// NormalizeWallet canonicalizes a user wallet to its lowercase form.
// EVM addresses are case-insensitive, so checksummed and lowercase
// spellings of the same wallet must resolve to the same ledger,
// unlock and gate-use rows.
func NormalizeWallet(wallet string) string {
	return strings.ToLower(wallet)
}

// LedgerBalance is the per-user loyalty balance row.
// Invariant: Balance == TotalEarned - TotalSpent at all times, and the
// balance never goes negative — spends that would overdraw are rejected
// at the store boundary. Mutated only through LedgerStore's atomic
// operations; callers never read-modify-write this row.
type LedgerBalance struct {
	UserWallet     string // natural key, lowercase
	Balance        int64
	TotalEarned    int64
	TotalSpent     int64
	LastFreeUnlock *time.Time // nil until the first free unlock
	UpdatedAt      time.Time
}

// FreeUnlockPolicy gates the free-unlock path: a balance floor and a
// per-user cooldown window between consecutive free unlocks.
type FreeUnlockPolicy struct {
	MinBalance int64
	Cooldown   time.Duration
}

// FreeUnlockOutcome is the result of an atomic free-unlock attempt.
type FreeUnlockOutcome int

const (
	// FreeUnlockConsumed means the cooldown was stamped and a gate-use
	// row was written in the same transaction.
	FreeUnlockConsumed FreeUnlockOutcome = iota

	// FreeUnlockLowBalance means the balance is below the policy floor.
	FreeUnlockLowBalance

	// FreeUnlockCooldown means the cooldown window has not elapsed.
	FreeUnlockCooldown

	// FreeUnlockAlreadyUsed means a gate-use row already exists for the
	// requested item.
	FreeUnlockAlreadyUsed
)

// String returns a human-readable outcome name for logs.
func (o FreeUnlockOutcome) String() string {
	switch o {
	case FreeUnlockConsumed:
		return "consumed"
	case FreeUnlockLowBalance:
		return "low_balance"
	case FreeUnlockCooldown:
		return "cooldown"
	case FreeUnlockAlreadyUsed:
		return "already_used"
	default:
		return "unknown"
	}
}
