package db

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "dass21.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.CreateDocument("dassassessment", map[string]any{"student_name": "Ada", "total_score": 12})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id2, err := s.CreateDocument("dassassessment", map[string]any{"student_name": "Ben", "total_score": 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	docs, err := s.GetDocuments("dassassessment", 10)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("want 2 docs, got %d", len(docs))
	}
	ids := map[any]bool{docs[0]["_id"]: true, docs[1]["_id"]: true}
	if !ids[id1] || !ids[id2] {
		t.Fatalf("missing ids in %v", docs)
	}
	// JSON round-trip turns ints into float64
	for _, d := range docs {
		if _, ok := d["total_score"].(float64); !ok {
			t.Fatalf("total_score not decoded: %v", d)
		}
	}
}

func TestSQLiteStoreLimitAndIsolation(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 4; i++ {
		if _, err := s.CreateDocument("dassassessment", map[string]any{"n": i}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := s.CreateDocument("other", map[string]any{"x": 1}); err != nil {
		t.Fatalf("create: %v", err)
	}

	docs, err := s.GetDocuments("dassassessment", 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("want 2 docs, got %d", len(docs))
	}

	names, err := s.ListCollections()
	if err != nil {
		t.Fatalf("list collections: %v", err)
	}
	if len(names) != 2 || names[0] != "dassassessment" || names[1] != "other" {
		t.Fatalf("bad collections: %v", names)
	}

	if err := s.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestSQLiteStoreEmptyCollection(t *testing.T) {
	s := newTestStore(t)
	docs, err := s.GetDocuments("dassassessment", 5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("want empty, got %v", docs)
	}
}
