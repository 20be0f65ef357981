package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gocab/pkg/logger"
	"gocab/pkg/maps"
)

type fakeMapsProvider struct {
	mu      sync.Mutex
	results map[string][]maps.PlaceSuggestion
	errs    map[string]error
	block   map[string]chan struct{}
	started chan string
	calls   []string
}

func newFakeMapsProvider() *fakeMapsProvider {
	return &fakeMapsProvider{
		results: make(map[string][]maps.PlaceSuggestion),
		errs:    make(map[string]error),
		block:   make(map[string]chan struct{}),
		started: make(chan string, 16),
	}
}

func (f *fakeMapsProvider) AutocompletePlaces(ctx context.Context, input string) ([]maps.PlaceSuggestion, error) {
	f.mu.Lock()
	f.calls = append(f.calls, input)
	gate := f.block[input]
	f.mu.Unlock()

	f.started <- input
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[input]; err != nil {
		return nil, err
	}
	return f.results[input], nil
}

func (f *fakeMapsProvider) RouteEstimate(ctx context.Context, origin, destination string) (*maps.RouteEstimate, error) {
	return &maps.RouteEstimate{DistanceKm: 10, Duration: 30 * time.Minute, DurationText: "30m"}, nil
}

func (f *fakeMapsProvider) GetPlaceDetails(ctx context.Context, placeID string) (*maps.PlaceDetails, error) {
	return &maps.PlaceDetails{PlaceID: placeID}, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: "stderr"})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return log
}

func collectResults() (func(SuggestionResult), <-chan SuggestionResult) {
	ch := make(chan SuggestionResult, 16)
	return func(r SuggestionResult) { ch <- r }, ch
}

func TestSearchDistinguishesEmptyFromFailure(t *testing.T) {
	provider := newFakeMapsProvider()
	provider.results["mumbai"] = []maps.PlaceSuggestion{{Description: "Mumbai Central", PlaceID: "p1"}}
	provider.errs["down"] = errors.New("upstream 500")

	svc := NewSuggestionService(provider, DefaultDebounce, testLogger(t))

	go drain(provider.started)

	got, err := svc.Search(context.Background(), "mumbai")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(got) != 1 || got[0].PlaceID != "p1" {
		t.Errorf("got %v, want the mumbai suggestion", got)
	}

	got, err = svc.Search(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("no-results query returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}

	_, err = svc.Search(context.Background(), "down")
	if !errors.Is(err, ErrSuggestionServiceFailure) {
		t.Errorf("err = %v, want ErrSuggestionServiceFailure", err)
	}
}

func TestLookupAppliesOnlyLatest(t *testing.T) {
	provider := newFakeMapsProvider()
	provider.results["pu"] = []maps.PlaceSuggestion{{Description: "Pune Junction", PlaceID: "old"}}
	provider.results["pun"] = []maps.PlaceSuggestion{{Description: "Pune Airport", PlaceID: "new"}}

	svc := NewSuggestionService(provider, 20*time.Millisecond, testLogger(t))
	apply, results := collectResults()

	go drain(provider.started)

	// Second keystroke lands before the first debounce fires; only the
	// second query may reach the provider and the UI.
	svc.Lookup(context.Background(), FieldPickup, "pu", apply)
	svc.Lookup(context.Background(), FieldPickup, "pun", apply)

	select {
	case r := <-results:
		if r.Query != "pun" {
			t.Fatalf("applied query %q, want %q", r.Query, "pun")
		}
		if len(r.Suggestions) != 1 || r.Suggestions[0].PlaceID != "new" {
			t.Errorf("applied %v, want the pun suggestion", r.Suggestions)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result applied")
	}

	select {
	case r := <-results:
		t.Fatalf("unexpected second result for query %q", r.Query)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLookupDiscardsStaleInFlightResponse(t *testing.T) {
	provider := newFakeMapsProvider()
	gate := make(chan struct{})
	provider.block["slow"] = gate
	provider.results["slow"] = []maps.PlaceSuggestion{{PlaceID: "stale"}}
	provider.results["fast"] = []maps.PlaceSuggestion{{PlaceID: "fresh"}}

	svc := NewSuggestionService(provider, time.Millisecond, testLogger(t))
	apply, results := collectResults()

	svc.Lookup(context.Background(), FieldPickup, "slow", apply)

	// Wait until the slow request is in flight, then supersede it.
	if started := <-provider.started; started != "slow" {
		t.Fatalf("first provider call was %q", started)
	}
	svc.Lookup(context.Background(), FieldPickup, "fast", apply)
	if started := <-provider.started; started != "fast" {
		t.Fatalf("second provider call was %q", started)
	}

	select {
	case r := <-results:
		if r.Query != "fast" {
			t.Fatalf("applied query %q, want %q", r.Query, "fast")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fast result never applied")
	}

	// Let the superseded request finish; its response must be dropped.
	close(gate)
	select {
	case r := <-results:
		t.Fatalf("stale response for %q was applied", r.Query)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLookupFieldsAreIndependent(t *testing.T) {
	provider := newFakeMapsProvider()
	provider.results["origin"] = []maps.PlaceSuggestion{{PlaceID: "o1"}}
	provider.results["destination"] = []maps.PlaceSuggestion{{PlaceID: "d1"}}

	svc := NewSuggestionService(provider, time.Millisecond, testLogger(t))
	apply, results := collectResults()

	go drain(provider.started)

	svc.Lookup(context.Background(), FieldPickup, "origin", apply)
	svc.Lookup(context.Background(), FieldDrop, "destination", apply)

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case r := <-results:
			seen[r.Query] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of 2 results applied", i)
		}
	}

	if !seen["origin"] || !seen["destination"] {
		t.Errorf("applied queries %v, want both fields answered", seen)
	}
}

func TestLookupEmptyQueryClearsImmediately(t *testing.T) {
	provider := newFakeMapsProvider()
	provider.results["momentary"] = []maps.PlaceSuggestion{{PlaceID: "m1"}}

	svc := NewSuggestionService(provider, 20*time.Millisecond, testLogger(t))
	apply, results := collectResults()

	go drain(provider.started)

	svc.Lookup(context.Background(), FieldPickup, "momentary", apply)
	svc.Lookup(context.Background(), FieldPickup, "", apply)

	select {
	case r := <-results:
		if r.Query != "" || len(r.Suggestions) != 0 {
			t.Fatalf("applied %+v, want immediate empty result", r)
		}
	case <-time.After(time.Second):
		t.Fatal("empty query result not applied")
	}

	select {
	case r := <-results:
		t.Fatalf("cancelled lookup for %q was applied", r.Query)
	case <-time.After(100 * time.Millisecond):
	}
}

func drain(ch <-chan string) {
	for range ch {
	}
}
