package docstore

import "context"

// Document is one stored record together with its identifier.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is the capability set the repositories need from a document store.
// The repository layer works against any implementation of this interface;
// production uses Firestore, tests use the in-memory docstoretest fake.
//
// GetDocument reports absence via the bool, not an error, so callers can
// distinguish "not found" from a transport failure.
type Store interface {
	// StreamCollection enumerates every document of a collection. No
	// ordering is guaranteed.
	StreamCollection(ctx context.Context, collection string) ([]Document, error)

	GetDocument(ctx context.Context, collection, id string) (map[string]any, bool, error)

	// SetDocument writes a document. With merge, fields present in data
	// overwrite and fields absent are left untouched in an existing
	// document; without merge the document is replaced.
	SetDocument(ctx context.Context, collection, id string, data map[string]any, merge bool) error

	// UpdateDocument applies a partial update and fails if the document
	// does not exist.
	UpdateDocument(ctx context.Context, collection, id string, updates map[string]any) error

	DeleteDocument(ctx context.Context, collection, id string) error

	// QueryRange filters on field with inclusive low/high bounds.
	QueryRange(ctx context.Context, collection, field string, low, high any) ([]Document, error)

	// QueryEqual filters on field equality.
	QueryEqual(ctx context.Context, collection, field string, value any) ([]Document, error)

	// NewGeneratedID returns a fresh opaque document id for collections
	// without a natural key.
	NewGeneratedID(collection string) string
}
