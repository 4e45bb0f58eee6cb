// Package search runs catalog searches and keeps the latest results plus a
// loading flag for the session view. Responses that arrive out of order are
// discarded so an older query can never overwrite a newer one.
package search

import (
	"context"
	"sync"

	"github.com/saidafzal264-maker/Elevon-market/internal/catalog"
)

type Searcher interface {
	Search(ctx context.Context, query string) ([]catalog.Product, error)
}

type State struct {
	searcher Searcher

	mu       sync.Mutex
	gen      uint64
	inFlight int
	results  []catalog.Product
	searched bool
}

func NewState(searcher Searcher) *State {
	return &State{searcher: searcher}
}

// Run performs a search and records the results. The loading flag is up for
// the whole round trip. If a newer Run starts before this one returns, the
// older results are dropped.
func (s *State) Run(ctx context.Context, query string) ([]catalog.Product, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.inFlight++
	s.mu.Unlock()

	results, err := s.searcher.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--

	if gen != s.gen {
		// A newer search superseded this one.
		return results, err
	}
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []catalog.Product{}
	}
	s.results = results
	s.searched = true
	return results, nil
}

func (s *State) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// Results returns the latest results and whether any search has completed.
// The bool separates "no search yet" from "searched and found nothing".
func (s *State) Results() ([]catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.searched {
		return nil, false
	}
	out := make([]catalog.Product, len(s.results))
	copy(out, s.results)
	return out, true
}

func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.results = nil
	s.searched = false
}
