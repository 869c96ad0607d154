package memcollection

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/five82/bookshelf/internal/collection"
)

// Store keeps documents in memory in insertion order.
type Store struct {
	mu    sync.RWMutex
	docs  map[string]collection.RawRecord
	order []string
	newID func() string
}

// NewStore constructs a Store seeded with the provided records. Seed records
// without an identifier are assigned one.
func NewStore(seed []collection.RawRecord) *Store {
	s := &Store{
		docs:  make(map[string]collection.RawRecord, len(seed)),
		newID: uuid.NewString,
	}
	for _, rec := range seed {
		s.insert(rec)
	}
	return s
}

// List returns every document in insertion order.
func (s *Store) List() []collection.RawRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]collection.RawRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	return out
}

// Get retrieves a document by its identifier.
func (s *Store) Get(id string) (collection.RawRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.docs[id]
	return rec, ok
}

// Create stores rec under a freshly assigned identifier.
func (s *Store) Create(rec collection.RawRecord) collection.RawRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.MongoID = ""
	return s.insert(rec)
}

// Update replaces the document with the given identifier if it exists.
func (s *Store) Update(id string, rec collection.RawRecord) (collection.RawRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return collection.RawRecord{}, false
	}
	rec.MongoID = id
	rec.ID = ""
	s.docs[id] = rec
	return rec, true
}

// Delete removes the document with the given identifier if it exists.
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

// Len reports the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// insert must be called with mu held (or before the store is shared).
func (s *Store) insert(rec collection.RawRecord) collection.RawRecord {
	id := strings.TrimSpace(rec.MongoID)
	if id == "" {
		id = s.newID()
	}
	rec.MongoID = id
	rec.ID = ""
	if _, exists := s.docs[id]; !exists {
		s.order = append(s.order, id)
	}
	s.docs[id] = rec
	return rec
}
