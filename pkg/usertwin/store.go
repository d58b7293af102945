// pkg/usertwin/store.go

package usertwin

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDKey is the member that carries a record's id, as crudcrud does it.
const IDKey = "_id"

// Document is one stored JSON object, id included.
type Document map[string]any

// Store is an in-memory collection that keeps insertion order.
type Store struct {
	mu    sync.RWMutex
	docs  map[string]Document
	order []string
}

func NewStore() *Store {
	return &Store{docs: make(map[string]Document)}
}

// NewID returns a 24-character hex id, the shape crudcrud hands out.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

// Create stores a copy of doc under a fresh id and returns the stored copy.
// Any id the caller supplied is ignored.
func (s *Store) Create(doc Document) Document {
	stored := clone(doc)
	id := NewID()
	stored[IDKey] = id

	s.mu.Lock()
	s.docs[id] = stored
	s.order = append(s.order, id)
	s.mu.Unlock()

	return clone(stored)
}

func (s *Store) Get(id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, false
	}
	return clone(doc), true
}

// List returns copies of every document in insertion order; never nil.
func (s *Store) List() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.docs[id]))
	}
	return out
}

// Replace swaps the body of an existing document, keeping its id.
func (s *Store) Replace(id string, doc Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return false
	}
	stored := clone(doc)
	stored[IDKey] = id
	s.docs[id] = stored
	return true
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func clone(doc Document) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	return out
}
