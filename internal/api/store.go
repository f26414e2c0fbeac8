package api

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NewDocumentID mints a short opaque document identity.
func NewDocumentID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

type storedDoc struct {
	id         string
	collection string
	fields     map[string]any
	createdAt  time.Time
}

// MemoryStore is the default Store when no database is configured. It is
// also the test double for the HTTP layer.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []*storedDoc
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateDocument(collection string, doc map[string]any) (string, error) {
	fields := make(map[string]any, len(doc))
	for k, v := range doc {
		fields[k] = v
	}
	d := &storedDoc{
		id:         NewDocumentID(),
		collection: collection,
		fields:     fields,
		createdAt:  time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, d)
	return d.id, nil
}

func (s *MemoryStore) GetDocuments(collection string, limit int) ([]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []map[string]any{}
	// newest first
	for i := len(s.docs) - 1; i >= 0 && len(out) < limit; i-- {
		d := s.docs[i]
		if d.collection != collection {
			continue
		}
		doc := make(map[string]any, len(d.fields)+1)
		for k, v := range d.fields {
			doc[k] = v
		}
		doc["_id"] = d.id
		out = append(out, doc)
	}
	return out, nil
}

func (s *MemoryStore) ListCollections() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, d := range s.docs {
		seen[d.collection] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Ping() error { return nil }
