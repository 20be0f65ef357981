package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gocab/pkg/logger"
	"gocab/pkg/maps"
)

// ErrSuggestionServiceFailure marks a lookup that failed upstream, as
// opposed to one that genuinely found nothing. Both render an empty list but
// only the failure carries a retry-worthy message.
var ErrSuggestionServiceFailure = errors.New("location suggestion service failure")

// SuggestionField identifies an input channel. Pickup and drop debounce and
// discard independently; a stale pickup response never clobbers drop state.
type SuggestionField int

const (
	FieldPickup SuggestionField = iota
	FieldDrop
)

const DefaultDebounce = 300 * time.Millisecond

// SuggestionResult is delivered to the apply callback for fresh lookups.
type SuggestionResult struct {
	Query       string
	Suggestions []maps.PlaceSuggestion
	Err         error
}

// SuggestionService performs debounced place-autocomplete lookups with
// last-dispatched-wins semantics: every dispatch captures a per-field
// sequence number, and any response whose number has been superseded is
// discarded instead of applied.
type SuggestionService struct {
	provider maps.Provider
	debounce time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	seq    map[SuggestionField]uint64
	timers map[SuggestionField]*time.Timer
}

func NewSuggestionService(provider maps.Provider, debounce time.Duration, log *logger.Logger) *SuggestionService {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &SuggestionService{
		provider: provider,
		debounce: debounce,
		logger:   log,
		seq:      make(map[SuggestionField]uint64),
		timers:   make(map[SuggestionField]*time.Timer),
	}
}

// Search performs one immediate lookup, bypassing the debounce machinery.
// An empty result with nil error means no matches; a wrapped
// ErrSuggestionServiceFailure means the upstream call failed.
func (s *SuggestionService) Search(ctx context.Context, query string) ([]maps.PlaceSuggestion, error) {
	if query == "" {
		return nil, nil
	}

	suggestions, err := s.provider.AutocompletePlaces(ctx, query)
	if err != nil {
		s.logger.WithError(err).Warn("Location suggestion lookup failed")
		return nil, errors.Join(ErrSuggestionServiceFailure, err)
	}
	return suggestions, nil
}

// PlaceDetails resolves a selected suggestion into coordinates and address.
func (s *SuggestionService) PlaceDetails(ctx context.Context, placeID string) (*maps.PlaceDetails, error) {
	details, err := s.provider.GetPlaceDetails(ctx, placeID)
	if err != nil {
		s.logger.WithError(err).Warn("Place details lookup failed")
		return nil, errors.Join(ErrSuggestionServiceFailure, err)
	}
	return details, nil
}

// Lookup schedules a debounced lookup for one field and invokes apply with
// the result only if no newer lookup was dispatched for that field in the
// meantime. An empty query cancels pending work and applies an empty result
// synchronously.
func (s *SuggestionService) Lookup(ctx context.Context, field SuggestionField, query string, apply func(SuggestionResult)) {
	s.mu.Lock()
	s.seq[field]++
	id := s.seq[field]
	if timer, ok := s.timers[field]; ok {
		timer.Stop()
	}

	if query == "" {
		delete(s.timers, field)
		s.mu.Unlock()
		apply(SuggestionResult{Query: query})
		return
	}

	s.timers[field] = time.AfterFunc(s.debounce, func() {
		if s.stale(field, id) {
			return
		}

		suggestions, err := s.Search(ctx, query)

		// Re-check after the round trip: a newer keystroke may have been
		// dispatched while this request was in flight.
		if s.stale(field, id) {
			return
		}

		apply(SuggestionResult{Query: query, Suggestions: suggestions, Err: err})
	})
	s.mu.Unlock()
}

func (s *SuggestionService) stale(field SuggestionField, id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[field] != id
}
