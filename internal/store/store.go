// SPDX-License-Identifier: MIT

// Package store holds the session's style documents, the active document
// and the active button color index.
package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/thatcatcamp/themecycle/internal/styles"
)

// ErrNotFound is returned when loading a key the store does not hold.
var ErrNotFound = errors.New("configuration not found")

// Applier projects a document onto the page.
type Applier interface {
	Apply(doc *styles.Document)
}

// Store maps configuration keys to documents. It is not safe for
// concurrent use; callers serialise access.
type Store struct {
	docs        map[string]*styles.Document
	order       []string
	applier     Applier
	activeKey   string
	active      *styles.Document
	activeIndex int
}

// New creates a store seeded with docs, inserted in seedOrder first and
// then any remaining keys in sorted order.
func New(docs map[string]*styles.Document, seedOrder []string, applier Applier) *Store {
	s := &Store{
		docs:    make(map[string]*styles.Document, len(docs)),
		applier: applier,
	}
	for _, key := range seedOrder {
		if doc, ok := docs[key]; ok {
			s.Add(key, doc)
		}
	}
	for _, key := range sortedKeys(docs) {
		if _, ok := s.docs[key]; !ok {
			s.Add(key, docs[key])
		}
	}
	return s
}

// Load makes key the active document, resets the color index and
// projects the document. An unknown key leaves all state unchanged.
func (s *Store) Load(key string) error {
	doc, ok := s.docs[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	s.activeKey = key
	s.active = doc
	s.activeIndex = 0
	if s.applier != nil {
		s.applier.Apply(doc)
	}
	return nil
}

// Add inserts or overwrites key. The active document is not refreshed,
// even when key is the active key; callers reload explicitly.
func (s *Store) Add(key string, doc *styles.Document) {
	if _, exists := s.docs[key]; !exists {
		s.order = append(s.order, key)
	}
	s.docs[key] = doc
}

// AddIfAbsent inserts doc only when key is unknown and reports whether it
// did.
func (s *Store) AddIfAbsent(key string, doc *styles.Document) bool {
	if _, exists := s.docs[key]; exists {
		return false
	}
	s.Add(key, doc)
	return true
}

// Get returns the document stored under key.
func (s *Store) Get(key string) (*styles.Document, bool) {
	doc, ok := s.docs[key]
	return doc, ok
}

// All returns the live key to document mapping.
func (s *Store) All() map[string]*styles.Document {
	return s.docs
}

// Keys returns every key in insertion order.
func (s *Store) Keys() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	return len(s.docs)
}

// Active returns the active key and document. Both are empty before the
// first successful Load.
func (s *Store) Active() (string, *styles.Document) {
	return s.activeKey, s.active
}

// ActiveColorIndex returns the current button color index.
func (s *Store) ActiveColorIndex() int {
	return s.activeIndex
}

// SetActiveColorIndex stores i without bounds checking.
func (s *Store) SetActiveColorIndex(i int) {
	s.activeIndex = i
}

func sortedKeys(docs map[string]*styles.Document) []string {
	keys := make([]string, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
