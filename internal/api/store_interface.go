package api

// Store is the persistence collaborator for scored assessments. It is a
// schemaless document store: callers hand over a field map and get back an
// opaque identity string. All operations may fail; callers are expected to
// treat persistence as best-effort and never surface store errors as scoring
// failures.
type Store interface {
	// CreateDocument stores doc in the named collection and returns the
	// assigned document ID.
	CreateDocument(collection string, doc map[string]any) (string, error)
	// GetDocuments returns up to limit documents from the named collection,
	// newest first. Returned documents carry their ID in the "_id" field.
	GetDocuments(collection string, limit int) ([]map[string]any, error)
	// ListCollections returns the names of all non-empty collections.
	ListCollections() ([]string, error)
	// Ping reports whether the backing store is reachable.
	Ping() error
}

var _ Store = (*MemoryStore)(nil)
