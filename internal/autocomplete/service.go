package autocomplete

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/calmate/storefront/pkg/geocode"
	"github.com/calmate/storefront/pkg/logger"
	"github.com/calmate/storefront/pkg/metrics"
)

const (
	defaultMinQueryLen = 4
	defaultDebounce    = 500 * time.Millisecond
)

type searcher interface {
	Search(ctx context.Context, query string) ([]geocode.Suggestion, error)
}

// Service resolves partial street addresses into suggestions. Lookups are
// debounced per session and degrade to an empty list when the geocoder is
// unreachable, so a typing user never sees an error.
type Service interface {
	Suggest(ctx context.Context, sessionID, query string) ([]geocode.Suggestion, error)
}

type service struct {
	geocoder    searcher
	logg        *logger.Logger
	stats       *metrics.AutocompleteMetrics
	minQueryLen int
	debounce    time.Duration

	mu     sync.Mutex
	latest map[string]uint64
}

// Option tweaks the service.
type Option func(*service)

// WithMinQueryLen overrides the minimum rune count before lookups fire.
func WithMinQueryLen(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.minQueryLen = n
		}
	}
}

// WithDebounce overrides the settle delay before a lookup is dispatched.
func WithDebounce(d time.Duration) Option {
	return func(s *service) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

// WithMetrics attaches query counters.
func WithMetrics(stats *metrics.AutocompleteMetrics) Option {
	return func(s *service) {
		s.stats = stats
	}
}

// NewService builds the autocomplete service.
func NewService(geocoder searcher, logg *logger.Logger, opts ...Option) (Service, error) {
	if geocoder == nil {
		return nil, fmt.Errorf("geocoder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &service{
		geocoder:    geocoder,
		logg:        logg,
		minQueryLen: defaultMinQueryLen,
		debounce:    defaultDebounce,
		latest:      map[string]uint64{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Suggest waits out the debounce window and then queries the geocoder, unless
// the session has issued a newer query in the meantime. Queries shorter than
// the minimum clear the suggestion list immediately.
func (s *service) Suggest(ctx context.Context, sessionID, query string) ([]geocode.Suggestion, error) {
	if utf8.RuneCountInString(query) < s.minQueryLen {
		s.bump(sessionID)
		s.stats.IncQuery("short")
		return nil, nil
	}

	seq := s.bump(sessionID)

	if s.debounce > 0 {
		timer := time.NewTimer(s.debounce)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if s.stale(sessionID, seq) {
		s.stats.IncQuery("stale")
		return nil, nil
	}

	suggestions, err := s.geocoder.Search(ctx, query)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "query", query), "address lookup failed, suppressing suggestions")
		s.stats.IncQuery("error")
		return nil, nil
	}
	if s.stale(sessionID, seq) {
		s.stats.IncQuery("stale")
		return nil, nil
	}

	s.stats.IncQuery("hit")
	return suggestions, nil
}

// bump records a new query for the session and returns its sequence number.
func (s *service) bump(sessionID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[sessionID]++
	return s.latest[sessionID]
}

func (s *service) stale(sessionID string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[sessionID] != seq
}
