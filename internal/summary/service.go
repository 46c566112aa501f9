package summary

import (
	"context"
	"log"
	"time"
)

// defaultTTL bounds how long a generated summary is reused.
const defaultTTL = 24 * time.Hour

// Service wraps a Summarizer with a per-item cache. A cache hit skips
// the strategy entirely; cache failures degrade to regeneration.
type Service struct {
	summarizer Summarizer
	cache      Cache
	ttl        time.Duration
	logger     *log.Logger
}

// ServiceOptions configures a summary Service.
type ServiceOptions struct {
	Summarizer Summarizer
	Cache      Cache         // default: MemoryCache
	TTL        time.Duration // default: 24h
	Logger     *log.Logger
}

// NewService creates a cached summary service.
func NewService(opts ServiceOptions) *Service {
	cache := opts.Cache
	if cache == nil {
		cache = NewMemoryCache()
	}
	ttl := opts.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		summarizer: opts.Summarizer,
		cache:      cache,
		ttl:        ttl,
		logger:     logger,
	}
}

// Summarize returns the cached writeup for the item, generating and
// caching it on a miss.
func (s *Service) Summarize(ctx context.Context, req Request) (string, error) {
	key := cacheKey(req.Kind, req.ItemID)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Printf("[summary] cache read failed for %s: %v", key, err)
	} else if ok {
		return cached, nil
	}

	text, err := s.summarizer.Summarize(ctx, req)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, text, s.ttl); err != nil {
		s.logger.Printf("[summary] cache write failed for %s: %v", key, err)
	}
	return text, nil
}
