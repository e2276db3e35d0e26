// Package items is the catalogue served by weaverd. It keeps items in
// memory and exposes them as operation handlers for the embedded OpenAPI
// document.
package items

import (
	"context"
	_ "embed"
	"slices"
	"sync"
)

// Spec is the OpenAPI document describing the catalogue operations.
//
//go:embed openapi.yaml
var Spec []byte

// Item is a catalogue entry.
type Item struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Tags      []string `json:"tags,omitempty"`
	CreatedBy string   `json:"createdBy,omitempty"`
}

// Store is a concurrency-safe in-memory item store.
type Store struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]Item
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextID: 1, items: make(map[int]Item)}
}

// NextID reserves an identifier.
func (s *Store) NextID(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	return id, nil
}

// Put inserts or replaces an item.
func (s *Store) Put(_ context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

// Get returns the item with the given id.
func (s *Store) Get(_ context.Context, id int) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// Delete removes an item and reports whether it existed.
func (s *Store) Delete(_ context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	delete(s.items, id)
	return ok
}

// List returns items ordered by id, keeping only those carrying tag when
// tag is not empty.
func (s *Store) List(_ context.Context, tag string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if tag == "" || slices.Contains(item.Tags, tag) {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b Item) int { return a.ID - b.ID })
	return out
}

// Count returns the number of stored items.
func (s *Store) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// TagCount returns the number of distinct tags in use.
func (s *Store) TagCount(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, item := range s.items {
		for _, tag := range item.Tags {
			seen[tag] = struct{}{}
		}
	}
	return len(seen), nil
}
