// Package summary generates analyst-style writeups for unlocked items.
// The Summarizer is a strategy: a deterministic template implementation
// by default, an OpenAI-backed one when an API key is configured.
// Results are cached per item.
package summary

import (
	"context"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
)

// Request identifies the item to summarize and carries its record.
// Exactly one of Filing/Alert/Article is set, matching Kind.
type Request struct {
	Kind    domain.ItemKind
	ItemID  int64
	Filing  *domain.Filing
	Alert   *domain.TransferAlert
	Article *domain.Article
}

// Summarizer produces a writeup for an item.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
}
