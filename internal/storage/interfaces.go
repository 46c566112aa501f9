package storage

import (
	"context"
	"time"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
)

// FilingStore provides access to filings storage.
type FilingStore interface {
	// Insert adds a new filing and sets its ID.
	// Returns ErrDuplicateKey if the filing URL exists.
	Insert(ctx context.Context, f *domain.Filing) error

	// Recent retrieves up to limit filings ordered by filed_at DESC,
	// newest id first on ties.
	Recent(ctx context.Context, limit int) ([]*domain.Filing, error)

	// GetByID retrieves a filing by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id int64) (*domain.Filing, error)
}

// TransferAlertStore provides access to transfer_alerts storage.
type TransferAlertStore interface {
	// Insert adds a new alert and sets its ID.
	// Returns ErrDuplicateKey if the tx hash exists.
	Insert(ctx context.Context, a *domain.TransferAlert) error

	// Recent retrieves up to limit alerts ordered by observed_at DESC.
	Recent(ctx context.Context, limit int) ([]*domain.TransferAlert, error)

	// GetByID retrieves an alert by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id int64) (*domain.TransferAlert, error)
}

// ArticleStore provides access to articles storage.
type ArticleStore interface {
	// Insert adds a new article and sets its ID.
	// Returns ErrDuplicateKey if the URL exists.
	Insert(ctx context.Context, a *domain.Article) error

	// Recent retrieves up to limit articles ordered by published_at DESC.
	Recent(ctx context.Context, limit int) ([]*domain.Article, error)

	// GetByID retrieves an article by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
}

// QuoteStore provides access to quotes storage. Quotes are the one
// record kind that is replaced, not deduplicated: Upsert is last-write-wins.
type QuoteStore interface {
	// Upsert replaces the row for the quote's symbol wholesale and
	// refreshes its updated_at timestamp.
	Upsert(ctx context.Context, q *domain.Quote) error

	// GetBySymbol retrieves the latest quote for a symbol.
	// Returns ErrNotFound if not exists.
	GetBySymbol(ctx context.Context, symbol string) (*domain.Quote, error)

	// All retrieves all quotes ordered by symbol ASC.
	All(ctx context.Context) ([]*domain.Quote, error)
}

// KnownAddressStore provides access to known_addresses reference data.
// Addresses are canonicalized to lowercase before storage and lookup.
type KnownAddressStore interface {
	// Upsert inserts or replaces a known address. Idempotent.
	Upsert(ctx context.Context, a *domain.KnownAddress) error

	// Get retrieves the entry for an address (case-insensitive).
	// Returns ErrNotFound if not exists.
	Get(ctx context.Context, address string) (*domain.KnownAddress, error)
}

// UnlockStore provides access to user_unlocks storage (paid path).
type UnlockStore interface {
	// Insert adds a new unlock record and sets its ID. Returns
	// ErrDuplicateKey if (user, item kind, item id) exists.
	Insert(ctx context.Context, u *domain.UnlockRecord) error

	// Exists reports whether the user has a paid unlock for the item.
	Exists(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64) (bool, error)

	// ByUser retrieves all unlocks for a user ordered by unlocked_at DESC.
	ByUser(ctx context.Context, userWallet string) ([]*domain.UnlockRecord, error)
}

// GateUseStore provides read access to gate_uses storage (free path).
// Gate-use rows are written only by LedgerStore.ConsumeFreeUnlock so that
// the cooldown stamp and the gate-use row commit together.
type GateUseStore interface {
	// Exists reports whether the user has consumed a free unlock for the item.
	Exists(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64) (bool, error)

	// ByUser retrieves all gate uses for a user ordered by used_at DESC.
	ByUser(ctx context.Context, userWallet string) ([]*domain.GateUse, error)
}

// NFTReceiptStore provides access to nft_receipts storage.
type NFTReceiptStore interface {
	// Insert adds a minted receipt. Returns ErrDuplicateKey if the
	// token id exists.
	Insert(ctx context.Context, r *domain.NFTReceipt) error

	// ByUser retrieves all receipts for a user ordered by minted_at DESC.
	ByUser(ctx context.Context, userWallet string) ([]*domain.NFTReceipt, error)
}

// AgentActionStore provides access to the agent_actions audit log.
type AgentActionStore interface {
	// Insert appends an audit entry. Returns ErrDuplicateKey if the
	// action ID exists.
	Insert(ctx context.Context, a *domain.AgentAction) error

	// RecentByUser retrieves up to limit actions for a user ordered by
	// created_at DESC.
	RecentByUser(ctx context.Context, userWallet string, limit int) ([]*domain.AgentAction, error)
}

// LedgerStore provides atomic access to per-user loyalty balances.
// This is the system's one shared-mutable-state hazard: all mutation goes
// through these operations, never through a caller-side read-then-write.
type LedgerStore interface {
	// Adjust atomically applies balance += earn - spend, total_earned += earn,
	// total_spent += spend, creating the row if absent. Concurrent adjusts
	// for the same user serialize. Returns ErrInsufficientBalance if the
	// spend would overdraw; the row is left untouched in that case.
	Adjust(ctx context.Context, userWallet string, earn, spend int64, now time.Time) (*domain.LedgerBalance, error)

	// Get retrieves the balance row. Returns ErrNotFound if the user has
	// never been touched.
	Get(ctx context.Context, userWallet string) (*domain.LedgerBalance, error)

	// ConsumeFreeUnlock atomically checks the free-unlock policy, stamps
	// last_free_unlock, and writes the gate-use row for the item — all in
	// one transaction, so a grant is never recorded without the cooldown
	// stamp or vice versa. Two concurrent calls for the same user cannot
	// both consume.
	ConsumeFreeUnlock(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64, policy domain.FreeUnlockPolicy, now time.Time) (domain.FreeUnlockOutcome, error)
}

// IngestRunStore records job poll outcomes for pipeline analytics.
type IngestRunStore interface {
	// Insert appends an ingest-run row.
	Insert(ctx context.Context, r *domain.IngestRun) error

	// RecentByJob retrieves up to limit runs for a job ordered by
	// started_at DESC.
	RecentByJob(ctx context.Context, job string, limit int) ([]*domain.IngestRun, error)
}
