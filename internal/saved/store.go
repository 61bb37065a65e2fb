// Package saved keeps the user's saved queries: an ordered list of
// description/SQL pairs mirrored in full to durable storage after every
// change. Items are addressed by their current position only.
package saved

import (
	"encoding/json"
	"fmt"

	"github.com/nhath/askdb/internal/storage"
)

// StorageKey is the fixed key the whole list is persisted under
const StorageKey = "saved_queries"

// SavedQuery is a user-named shortcut to a previously generated SQL statement
type SavedQuery struct {
	Description string `json:"desc"`
	SQL         string `json:"sql"`
}

// Store owns the saved-query sequence and its storage mirror
type Store struct {
	kv      storage.KV
	queries []SavedQuery
}

// NewStore returns an empty store backed by kv. Call Load to read the mirror.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Load replaces the in-memory list with the persisted one. A missing key
// leaves the list empty.
func (s *Store) Load() error {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("load saved queries: %w", err)
	}
	if !ok {
		s.queries = nil
		return nil
	}

	var queries []SavedQuery
	if err := json.Unmarshal([]byte(raw), &queries); err != nil {
		s.queries = nil
		return fmt.Errorf("decode saved queries: %w", err)
	}
	s.queries = queries
	return nil
}

// Save appends a new entry and persists the list
func (s *Store) Save(description, sql string) error {
	prev := s.queries
	s.queries = append(s.queries[:len(s.queries):len(s.queries)], SavedQuery{Description: description, SQL: sql})
	if err := s.persist(); err != nil {
		s.queries = prev
		return err
	}
	return nil
}

// Remove deletes the entry at index. It reports false, without touching
// storage, when index is out of range.
func (s *Store) Remove(index int) (bool, error) {
	if index < 0 || index >= len(s.queries) {
		return false, nil
	}
	prev := s.queries
	next := make([]SavedQuery, 0, len(prev)-1)
	next = append(next, prev[:index]...)
	next = append(next, prev[index+1:]...)
	s.queries = next
	if err := s.persist(); err != nil {
		s.queries = prev
		return false, err
	}
	return true, nil
}

// Get returns the entry currently at index
func (s *Store) Get(index int) (SavedQuery, bool) {
	if index < 0 || index >= len(s.queries) {
		return SavedQuery{}, false
	}
	return s.queries[index], true
}

// List returns a copy of the entries in order
func (s *Store) List() []SavedQuery {
	out := make([]SavedQuery, len(s.queries))
	copy(out, s.queries)
	return out
}

// Len returns the number of saved entries
func (s *Store) Len() int {
	return len(s.queries)
}

func (s *Store) persist() error {
	queries := s.queries
	if queries == nil {
		queries = []SavedQuery{}
	}
	raw, err := json.Marshal(queries)
	if err != nil {
		return fmt.Errorf("encode saved queries: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(raw)); err != nil {
		return fmt.Errorf("persist saved queries: %w", err)
	}
	return nil
}
