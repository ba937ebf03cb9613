package persistence

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/patrickmn/go-cache"
)

// DocumentStore keeps each collection as a single JSON document.
// Read leaves out untouched when the collection has never been written.
type DocumentStore interface {
	Read(ctx context.Context, collection string, out interface{}) error
	Write(ctx context.Context, collection string, in interface{}) error
}

var ActiveStore DocumentStore = NewMemoryStore()

type MemoryStore struct {
	documents *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{documents: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Read(ctx context.Context, collection string, out interface{}) error {
	v, found := s.documents.Get(collection)
	if !found {
		return nil
	}
	return json.Unmarshal(v.([]byte), out)
}

func (s *MemoryStore) Write(ctx context.Context, collection string, in interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	s.documents.Set(collection, body, cache.NoExpiration)
	return nil
}

// Flush drops every collection.
func (s *MemoryStore) Flush() {
	s.documents.Flush()
}

var txLock sync.Mutex

// Transaction serializes read-modify-write cycles over the whole-collection documents.
// Nested calls deadlock, services call it once at their entry point.
func Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	txLock.Lock()
	defer txLock.Unlock()
	return fn(ctx)
}
