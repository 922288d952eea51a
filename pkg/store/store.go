// Package store defines the document-store collaborator the pipeline
// persists through. The production store lives in another service; the
// engine only depends on this interface.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no document.
var ErrNotFound = errors.New("store: document not found")

// Document is one stored record with its key and write time.
type Document struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DocumentStore is a key-value document store. Values are marshaled to JSON
// on write; Get unmarshals into the caller's type.
type DocumentStore interface {
	Get(ctx context.Context, key string, out any) error
	Set(ctx context.Context, key string, value any) error
	SetBatch(ctx context.Context, docs map[string]any) error
	ListRecent(ctx context.Context, prefix string, limit int) ([]Document, error)
}
