package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"
)

// Compile-time contract assertion.
var _ DocumentStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory DocumentStore for tests and ephemeral runs.
// It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
	now  func() time.Time
}

// NewMemoryStore creates an empty in-memory document store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]Document),
		now:  time.Now,
	}
}

// Get unmarshals the document at key into out.
func (s *MemoryStore) Get(_ context.Context, key string, out any) error {
	s.mu.RLock()
	doc, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(doc.Value, out)
}

// Set marshals value and stores it at key, replacing any previous document.
func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[key] = Document{Key: key, Value: raw, UpdatedAt: s.now()}
	s.mu.Unlock()
	return nil
}

// SetBatch stores every document or none: marshal errors surface before any
// write happens.
func (s *MemoryStore) SetBatch(_ context.Context, docs map[string]any) error {
	marshaled := make(map[string]json.RawMessage, len(docs))
	for key, value := range docs {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		marshaled[key] = raw
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	at := s.now()
	for key, raw := range marshaled {
		s.docs[key] = Document{Key: key, Value: raw, UpdatedAt: at}
	}
	return nil
}

// ListRecent returns up to limit documents under prefix, most recent first.
// Ties break on key so the order is deterministic.
func (s *MemoryStore) ListRecent(_ context.Context, prefix string, limit int) ([]Document, error) {
	s.mu.RLock()
	matched := make([]Document, 0)
	for key, doc := range s.docs {
		if strings.HasPrefix(key, prefix) {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
		return matched[i].Key < matched[j].Key
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
