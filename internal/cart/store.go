// Package cart holds the shopper's cart with durable local persistence: every
// mutation is written through to a JSON file so a restarted session picks up
// where the previous one left off.
package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Entry is one line in the cart. A product appears at most once; adding it
// again bumps the quantity.
type Entry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

// Open loads the cart stored at path. A missing file means an empty cart, and
// so does a file that fails to parse: a corrupt cart must never wedge the
// session.
func Open(path string) *Store {
	s := &Store{path: path, entries: []Entry{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return s
	}
	if entries != nil {
		s.entries = entries
	}
	return s
}

func (s *Store) Add(productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			s.entries[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.entries = append(s.entries, Entry{ProductID: productID, Quantity: quantity})
	}
	return s.persist()
}

func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// Entries returns a copy of the cart in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []Entry{}
	return s.persist()
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
