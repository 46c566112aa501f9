// Package unlock grants access to gated items through the paid and free
// paths and keeps the agent action audit log.
package unlock

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/ledger"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// Mode selects the unlock path.
type Mode string

const (
	ModePaid Mode = "paid"
	ModeFree Mode = "free"
)

// Decision is the outcome of an access request.
type Decision string

const (
	Granted           Decision = "granted"
	AlreadyOwned      Decision = "already_owned"
	InsufficientFunds Decision = "insufficient_funds"
	CooldownActive    Decision = "cooldown_active"
)

// Item prices in USDC by kind.
var itemPrices = map[domain.ItemKind]decimal.Decimal{
	domain.KindDeal:  decimal.NewFromFloat(0.50),
	domain.KindAlert: decimal.NewFromFloat(0.25),
	domain.KindNews:  decimal.NewFromFloat(0.10),
}

// PriceFor returns the unlock price for an item kind.
func PriceFor(kind domain.ItemKind) decimal.Decimal {
	return itemPrices[kind]
}

// Minter mints an on-chain receipt for a paid unlock. Implementations
// talk to the chain; mint failures never revoke an already-granted unlock.
type Minter interface {
	Mint(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64, pricePaid decimal.Decimal) (*domain.NFTReceipt, error)
}

// EventPublisher emits unlock-granted events. Publish failures are
// logged, never surfaced to the requester.
type EventPublisher interface {
	PublishUnlockGranted(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64, mode string) error
}

// Service implements access requests over the unlock, gate-use, receipt
// and agent-action stores plus the loyalty ledger.
type Service struct {
	unlocks  storage.UnlockStore
	gates    storage.GateUseStore
	receipts storage.NFTReceiptStore
	actions  storage.AgentActionStore
	loyalty  *ledger.Service
	minter   Minter          // optional
	events   EventPublisher  // optional
	logger   *log.Logger
	now      func() time.Time
}

// Options configures a Service. Minter and Events are optional.
type Options struct {
	Unlocks  storage.UnlockStore
	Gates    storage.GateUseStore
	Receipts storage.NFTReceiptStore
	Actions  storage.AgentActionStore
	Loyalty  *ledger.Service
	Minter   Minter
	Events   EventPublisher
	Logger   *log.Logger
	Now      func() time.Time
}

// New creates a new unlock service.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		unlocks:  opts.Unlocks,
		gates:    opts.Gates,
		receipts: opts.Receipts,
		actions:  opts.Actions,
		loyalty:  opts.Loyalty,
		minter:   opts.Minter,
		events:   opts.Events,
		logger:   logger,
		now:      now,
	}
}

// Request is an access request for a gated item.
type Request struct {
	UserWallet string
	ItemKind   domain.ItemKind
	ItemID     int64
	Mode       Mode
	TxHash     string // paid path: the payment transaction, not validated here
}

// Result carries the decision plus paid-path artifacts.
type Result struct {
	Decision Decision
	Unlock   *domain.UnlockRecord // set when a paid unlock was written
	Receipt  *domain.NFTReceipt   // set when a mint succeeded
}

// RequestAccess decides whether the user may access the item and records
// the grant. Repeating a request for an item the user already holds is
// not an error: it returns AlreadyOwned.
func (s *Service) RequestAccess(ctx context.Context, req Request) (*Result, error) {
	if req.UserWallet == "" || !req.ItemKind.Valid() {
		return nil, fmt.Errorf("%w: wallet and valid item kind required", storage.ErrInvalidInput)
	}
	req.UserWallet = domain.NormalizeWallet(req.UserWallet)

	switch req.Mode {
	case ModePaid:
		return s.requestPaid(ctx, req)
	case ModeFree:
		return s.requestFree(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", storage.ErrInvalidInput, req.Mode)
	}
}

func (s *Service) requestPaid(ctx context.Context, req Request) (*Result, error) {
	owned, err := s.alreadyOwns(ctx, req.UserWallet, req.ItemKind, req.ItemID)
	if err != nil {
		return nil, err
	}
	if owned {
		return &Result{Decision: AlreadyOwned}, nil
	}

	price := PriceFor(req.ItemKind)
	rec := &domain.UnlockRecord{
		UserWallet: req.UserWallet,
		ItemKind:   req.ItemKind,
		ItemID:     req.ItemID,
		TxHash:     req.TxHash,
		AmountPaid: price,
		UnlockedAt: s.now().UTC(),
	}
	if err := s.unlocks.Insert(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			// Lost a race with a concurrent request for the same item.
			return &Result{Decision: AlreadyOwned}, nil
		}
		return nil, fmt.Errorf("record unlock: %w", err)
	}

	result := &Result{Decision: Granted, Unlock: rec}

	if _, err := s.loyalty.AwardUnlockReward(ctx, req.UserWallet); err != nil {
		// The unlock stands; the missed reward is logged, not fatal.
		s.logger.Printf("[unlock] reward credit failed for %s: %v", req.UserWallet, err)
	}

	if s.minter != nil {
		receipt, err := s.minter.Mint(ctx, req.UserWallet, req.ItemKind, req.ItemID, price)
		if err != nil {
			s.logger.Printf("[unlock] mint failed for %s %s/%d: %v", req.UserWallet, req.ItemKind, req.ItemID, err)
		} else if err := s.receipts.Insert(ctx, receipt); err != nil {
			s.logger.Printf("[unlock] receipt insert failed for token %d: %v", receipt.TokenID, err)
		} else {
			result.Receipt = receipt
		}
	}

	s.publish(ctx, req, string(ModePaid))
	return result, nil
}

func (s *Service) requestFree(ctx context.Context, req Request) (*Result, error) {
	// A paid unlock for the same item also counts as ownership.
	owned, err := s.unlocks.Exists(ctx, req.UserWallet, req.ItemKind, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("check unlocks: %w", err)
	}
	if owned {
		return &Result{Decision: AlreadyOwned}, nil
	}

	outcome, err := s.loyalty.UseFreeUnlock(ctx, req.UserWallet, req.ItemKind, req.ItemID)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case domain.FreeUnlockConsumed:
		s.publish(ctx, req, string(ModeFree))
		return &Result{Decision: Granted}, nil
	case domain.FreeUnlockAlreadyUsed:
		return &Result{Decision: AlreadyOwned}, nil
	case domain.FreeUnlockLowBalance:
		return &Result{Decision: InsufficientFunds}, nil
	case domain.FreeUnlockCooldown:
		return &Result{Decision: CooldownActive}, nil
	default:
		return nil, fmt.Errorf("unexpected free-unlock outcome %d", outcome)
	}
}

// HasAccess reports whether the user holds the item through either path.
func (s *Service) HasAccess(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64) (bool, error) {
	return s.alreadyOwns(ctx, domain.NormalizeWallet(userWallet), kind, itemID)
}

func (s *Service) alreadyOwns(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64) (bool, error) {
	owned, err := s.unlocks.Exists(ctx, userWallet, kind, itemID)
	if err != nil {
		return false, fmt.Errorf("check unlocks: %w", err)
	}
	if owned {
		return true, nil
	}
	used, err := s.gates.Exists(ctx, userWallet, kind, itemID)
	if err != nil {
		return false, fmt.Errorf("check gate uses: %w", err)
	}
	return used, nil
}

func (s *Service) publish(ctx context.Context, req Request, mode string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishUnlockGranted(ctx, req.UserWallet, req.ItemKind, req.ItemID, mode); err != nil {
		s.logger.Printf("[unlock] publish failed for %s %s/%d: %v", req.UserWallet, req.ItemKind, req.ItemID, err)
	}
}

// RecordAgentAction appends an audit entry for an agent-initiated
// operation. Failures are logged and swallowed so that auditing never
// blocks a grant.
func (s *Service) RecordAgentAction(ctx context.Context, a domain.AgentAction) {
	a.UserWallet = domain.NormalizeWallet(a.UserWallet)
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}
	if err := s.actions.Insert(ctx, &a); err != nil {
		s.logger.Printf("[unlock] agent action audit failed for %s: %v", a.UserWallet, err)
	}
}
