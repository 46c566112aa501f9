// Package ledger implements the loyalty economy on top of the atomic
// ledger store: unlock rewards, the free-unlock policy, holder tiers and
// batch reward bonuses.
package ledger

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// Loyalty economy constants.
const (
	// RewardPerUnlock is credited after each successful paid unlock.
	RewardPerUnlock = 10

	// MinFreeUnlockBalance is the balance floor for the free-unlock path.
	MinFreeUnlockBalance = 100

	// FreeUnlockCooldown is the per-user window between free unlocks.
	FreeUnlockCooldown = 24 * time.Hour
)

// DefaultPolicy is the production free-unlock policy.
var DefaultPolicy = domain.FreeUnlockPolicy{
	MinBalance: MinFreeUnlockBalance,
	Cooldown:   FreeUnlockCooldown,
}

// Service wraps the ledger store with loyalty semantics. All balance
// mutation still happens inside the store's atomic operations.
type Service struct {
	store  storage.LedgerStore
	policy domain.FreeUnlockPolicy
	logger *log.Logger
	now    func() time.Time
}

// Options configures a Service.
type Options struct {
	Store  storage.LedgerStore
	Policy domain.FreeUnlockPolicy // zero value means DefaultPolicy
	Logger *log.Logger
	Now    func() time.Time // injectable clock for tests
}

// New creates a new loyalty service.
func New(opts Options) *Service {
	policy := opts.Policy
	if policy.MinBalance == 0 && policy.Cooldown == 0 {
		policy = DefaultPolicy
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		store:  opts.Store,
		policy: policy,
		logger: logger,
		now:    now,
	}
}

// AwardUnlockReward credits the per-unlock reward to a user.
func (s *Service) AwardUnlockReward(ctx context.Context, userWallet string) (*domain.LedgerBalance, error) {
	userWallet = domain.NormalizeWallet(userWallet)
	row, err := s.store.Adjust(ctx, userWallet, RewardPerUnlock, 0, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("award unlock reward: %w", err)
	}
	s.logger.Printf("[ledger] awarded %d to %s (balance %d)", RewardPerUnlock, userWallet, row.Balance)
	return row, nil
}

// Earn credits points to a user.
func (s *Service) Earn(ctx context.Context, userWallet string, points int64) (*domain.LedgerBalance, error) {
	return s.store.Adjust(ctx, domain.NormalizeWallet(userWallet), points, 0, s.now().UTC())
}

// Spend debits points from a user. Returns storage.ErrInsufficientBalance
// if the spend would overdraw.
func (s *Service) Spend(ctx context.Context, userWallet string, points int64) (*domain.LedgerBalance, error) {
	return s.store.Adjust(ctx, domain.NormalizeWallet(userWallet), 0, points, s.now().UTC())
}

// CanUseFreeUnlock reports free-unlock eligibility. Pure read, no side
// effect; the authoritative check happens inside UseFreeUnlock.
func (s *Service) CanUseFreeUnlock(ctx context.Context, userWallet string) (bool, error) {
	row, err := s.store.Get(ctx, domain.NormalizeWallet(userWallet))
	if err != nil {
		if err == storage.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("read ledger: %w", err)
	}
	if row.Balance < s.policy.MinBalance {
		return false, nil
	}
	if row.LastFreeUnlock != nil && s.now().UTC().Sub(*row.LastFreeUnlock) < s.policy.Cooldown {
		return false, nil
	}
	return true, nil
}

// UseFreeUnlock atomically consumes a free unlock for an item,
// stamping the cooldown and writing the gate-use row in one transaction.
func (s *Service) UseFreeUnlock(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64) (domain.FreeUnlockOutcome, error) {
	userWallet = domain.NormalizeWallet(userWallet)
	outcome, err := s.store.ConsumeFreeUnlock(ctx, userWallet, kind, itemID, s.policy, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("use free unlock: %w", err)
	}
	s.logger.Printf("[ledger] free unlock %s/%d for %s: %s", kind, itemID, userWallet, outcome)
	return outcome, nil
}

// Stats is the loyalty snapshot served to users.
type Stats struct {
	Balance        int64
	TotalEarned    int64
	TotalSpent     int64
	Tier           Tier
	CanFreeUnlock  bool
	NextFreeUnlock *time.Time // nil when available now
}

// Stats assembles the loyalty snapshot for a user. A user with no
// ledger row gets zeroed stats, not an error.
func (s *Service) Stats(ctx context.Context, userWallet string) (*Stats, error) {
	row, err := s.store.Get(ctx, domain.NormalizeWallet(userWallet))
	if err != nil {
		if err == storage.ErrNotFound {
			return &Stats{Tier: TierFor(0)}, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	stats := &Stats{
		Balance:     row.Balance,
		TotalEarned: row.TotalEarned,
		TotalSpent:  row.TotalSpent,
		Tier:        TierFor(row.Balance),
	}

	eligible := row.Balance >= s.policy.MinBalance
	if row.LastFreeUnlock != nil {
		next := row.LastFreeUnlock.Add(s.policy.Cooldown)
		if s.now().UTC().Before(next) {
			eligible = false
			stats.NextFreeUnlock = &next
		}
	}
	stats.CanFreeUnlock = eligible

	return stats, nil
}
