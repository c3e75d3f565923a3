// Package store holds the application state shared by the storefront views.
package store

import (
	"errors"
	"sync"

	"github.com/ausmotors/storefront/pkg/ausmotors/dal"
)

// ErrAlreadyLoaded is returned when the catalog is set a second time
var ErrAlreadyLoaded = errors.New("catalog already loaded")

// Store is the single in-memory catalog. It is written once and read many times.
type Store struct {
	mu          sync.RWMutex
	catalog     dal.Catalog
	loaded      bool
	subscribers []func(dal.Catalog)
}

// New returns an empty store
func New() *Store {
	return &Store{}
}

// Subscribe adds a handler called after the catalog has been set
func (s *Store) Subscribe(fn func(dal.Catalog)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Set populates the collections and notifies subscribers in registration order
func (s *Store) Set(c dal.Catalog) error {
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	s.catalog = c.Copy()
	s.loaded = true
	subscribers := make([]func(dal.Catalog), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(c.Copy())
	}
	return nil
}

// Catalog returns a snapshot of the catalog and whether it has been loaded
func (s *Store) Catalog() (dal.Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Copy(), s.loaded
}

// Loaded reports whether Set has succeeded
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
