// Package stub provides fixed in-memory sources for tests and seeding.
package stub

import (
	"context"

	"github.com/AmrendraTheCoder/microTerm/internal/ingest"
)

// FilingSource returns fixed filing candidates.
// Implements ingest.FilingSource.
type FilingSource struct {
	Candidates []*ingest.FilingCandidate
	Err        error
}

// Fetch returns copies of the configured candidates, or the configured error.
func (s *FilingSource) Fetch(_ context.Context) ([]*ingest.FilingCandidate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*ingest.FilingCandidate, len(s.Candidates))
	for i, c := range s.Candidates {
		candidateCopy := *c
		out[i] = &candidateCopy
	}
	return out, nil
}

// TransferSource returns fixed transfer candidates.
// Implements ingest.TransferSource.
type TransferSource struct {
	Candidates []*ingest.TransferCandidate
	Err        error
}

// Fetch returns copies of the configured candidates, or the configured error.
func (s *TransferSource) Fetch(_ context.Context) ([]*ingest.TransferCandidate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*ingest.TransferCandidate, len(s.Candidates))
	for i, c := range s.Candidates {
		candidateCopy := *c
		out[i] = &candidateCopy
	}
	return out, nil
}

// ArticleSource returns fixed article candidates.
// Implements ingest.ArticleSource.
type ArticleSource struct {
	Candidates []*ingest.ArticleCandidate
	Err        error
}

// Fetch returns copies of the configured candidates, or the configured error.
func (s *ArticleSource) Fetch(_ context.Context) ([]*ingest.ArticleCandidate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*ingest.ArticleCandidate, len(s.Candidates))
	for i, c := range s.Candidates {
		candidateCopy := *c
		out[i] = &candidateCopy
	}
	return out, nil
}

// QuoteSource returns fixed quote candidates.
// Implements ingest.QuoteSource.
type QuoteSource struct {
	Candidates []*ingest.QuoteCandidate
	Err        error
}

// Fetch returns copies of the configured candidates, or the configured error.
func (s *QuoteSource) Fetch(_ context.Context) ([]*ingest.QuoteCandidate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*ingest.QuoteCandidate, len(s.Candidates))
	for i, c := range s.Candidates {
		candidateCopy := *c
		out[i] = &candidateCopy
	}
	return out, nil
}
