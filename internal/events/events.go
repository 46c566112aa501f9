// Package events publishes domain events for downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
)

// Topics for published events.
const (
	TopicFilingStored  = "microterm.filing_stored"
	TopicAlertStored   = "microterm.alert_stored"
	TopicUnlockGranted = "microterm.unlock_granted"
)

// UnlockGrantedEvent is emitted after an access grant.
type UnlockGrantedEvent struct {
	UserWallet string          `json:"userWallet"`
	ItemKind   domain.ItemKind `json:"itemKind"`
	ItemID     int64           `json:"itemId"`
	Mode       string          `json:"mode"`
	GrantedAt  time.Time       `json:"grantedAt"`
}

// Publisher emits domain events. Implementations must be safe for
// concurrent use; publish failures are the caller's to log and ignore.
type Publisher interface {
	PublishFilingStored(ctx context.Context, f *domain.Filing) error
	PublishAlertStored(ctx context.Context, a *domain.TransferAlert) error
	PublishUnlockGranted(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64, mode string) error
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishFilingStored(context.Context, *domain.Filing) error { return nil }
func (NopPublisher) PublishAlertStored(context.Context, *domain.TransferAlert) error {
	return nil
}
func (NopPublisher) PublishUnlockGranted(context.Context, string, domain.ItemKind, int64, string) error {
	return nil
}

var _ Publisher = NopPublisher{}
