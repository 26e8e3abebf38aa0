package summary

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTTL is the freshness window for a cached Summary.
const DefaultTTL = 60 * time.Second

// RowSource produces the current raw contents of the signup sheet.
type RowSource interface {
	FetchRows(ctx context.Context) ([][]string, error)
}

type cacheEntry struct {
	summary   Summary
	fetchedAt time.Time
}

// Service answers summary requests with at most one sheet fetch per
// freshness window. A single cache slot is overwritten on every successful
// aggregation and left untouched when a fetch fails.
type Service struct {
	source RowSource
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	entry *cacheEntry
}

func NewService(source RowSource, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// GetSummary returns the cached Summary while it is fresh, otherwise
// fetches and aggregates the sheet. The lock is held across the whole miss
// path, so concurrent callers coalesce into a single fetch per window.
// A fetch failure propagates to the caller; stale data is not served.
func (s *Service) GetSummary(ctx context.Context) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry != nil && s.now().Sub(s.entry.fetchedAt) < s.ttl {
		log.Debug().
			Time("fetched_at", s.entry.fetchedAt).
			Msg("Serving cached summary")
		return s.entry.summary, nil
	}

	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		return Summary{}, err
	}

	now := s.now()
	result := Aggregate(rows, now)
	s.entry = &cacheEntry{summary: result, fetchedAt: now}

	log.Info().
		Int("total", result.Total).
		Int("marketing_yes", result.MarketingYes).
		Int("unknown", result.UnknownCount).
		Msg("Refreshed summary cache")

	return result, nil
}
