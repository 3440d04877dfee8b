package store

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used by unit tests. It applies
// the same contract as MongoStore: partial updates merge fields,
// deletes are idempotent, equality filters match every filter field.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Document)}
}

func (s *MemoryStore) Insert(_ context.Context, collection string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collections[collection]
	if coll == nil {
		coll = make(map[string]Document)
		s.collections[collection] = coll
	}

	id := uuid.New().String()
	coll[id] = copyDoc(doc)
	return id, nil
}

func (s *MemoryStore) GetByID(_ context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDoc(doc), nil
}

func (s *MemoryStore) QueryEquals(_ context.Context, collection string, filter Document) ([]Stored, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Stored
	for id, doc := range s.collections[collection] {
		if matches(doc, filter) {
			results = append(results, Stored{ID: id, Doc: copyDoc(doc)})
		}
	}
	return results, nil
}

func (s *MemoryStore) UpdateByID(_ context.Context, collection, id string, partial Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range partial {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func matches(doc, filter Document) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}

func copyDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
