package store

import (
	"context"
	"errors"
)

// Document is a raw schemaless document keyed by field name.
type Document = map[string]interface{}

// Stored pairs a document with the id the store assigned to it.
type Stored struct {
	ID  string
	Doc Document
}

// ErrNotFound is returned by GetByID and UpdateByID when no document
// carries the requested id. DeleteByID is idempotent and never
// reports a miss.
var ErrNotFound = errors.New("document not found")

// Store is the document-store capability every handler works against.
// It offers independent per-collection operations only: no joins, no
// multi-document transactions, equality filters only.
type Store interface {
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	GetByID(ctx context.Context, collection, id string) (Document, error)
	QueryEquals(ctx context.Context, collection string, filter Document) ([]Stored, error)
	UpdateByID(ctx context.Context, collection, id string, partial Document) error
	DeleteByID(ctx context.Context, collection, id string) error
}
