// Package docstoretest provides an in-memory docstore.Store for tests.
// It mirrors the merge semantics of the Firestore adapter and counts
// store calls so tests can assert on cache behaviour.
package docstoretest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leanh1541989-hash/taphoa39/internal/docstore"

	"github.com/google/uuid"
)

type Store struct {
	mu   sync.Mutex
	data map[string]map[string]map[string]any

	streamCalls map[string]int
	rangeCalls  map[string]int
	equalCalls  map[string]int
	getCalls    int
	setCalls    int

	// FailWrites makes every SetDocument/UpdateDocument/DeleteDocument
	// return this error, simulating a store outage.
	FailWrites error
	// FailReads does the same for the read paths.
	FailReads error
}

func New() *Store {
	return &Store{
		data:        make(map[string]map[string]map[string]any),
		streamCalls: make(map[string]int),
		rangeCalls:  make(map[string]int),
		equalCalls:  make(map[string]int),
	}
}

var _ docstore.Store = (*Store)(nil)

// Seed writes a document directly, bypassing counters.
func (s *Store) Seed(collection, id string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.col(collection)[id] = cloneMap(data)
}

// Snapshot returns a copy of a stored document for assertions.
func (s *Store) Snapshot(collection, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.col(collection)[id]
	if !ok {
		return nil, false
	}
	return cloneMap(doc), true
}

func (s *Store) Len(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.col(collection))
}

func (s *Store) StreamCalls(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamCalls[collection]
}

func (s *Store) RangeCalls(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rangeCalls[collection]
}

func (s *Store) SetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCalls
}

func (s *Store) StreamCollection(_ context.Context, collection string) ([]docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.streamCalls[collection]++
	if s.FailReads != nil {
		return nil, s.FailReads
	}

	var docs []docstore.Document
	for id, data := range s.col(collection) {
		docs = append(docs, docstore.Document{ID: id, Data: cloneMap(data)})
	}
	return docs, nil
}

func (s *Store) GetDocument(_ context.Context, collection, id string) (map[string]any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getCalls++
	if s.FailReads != nil {
		return nil, false, s.FailReads
	}

	doc, ok := s.col(collection)[id]
	if !ok {
		return nil, false, nil
	}
	return cloneMap(doc), true, nil
}

func (s *Store) SetDocument(_ context.Context, collection, id string, data map[string]any, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCalls++
	if s.FailWrites != nil {
		return s.FailWrites
	}

	col := s.col(collection)
	existing, ok := col[id]
	if merge && ok {
		for k, v := range data {
			existing[k] = v
		}
		return nil
	}
	col[id] = cloneMap(data)
	return nil
}

func (s *Store) UpdateDocument(_ context.Context, collection, id string, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCalls++
	if s.FailWrites != nil {
		return s.FailWrites
	}

	doc, ok := s.col(collection)[id]
	if !ok {
		return fmt.Errorf("no document to update: %s/%s", collection, id)
	}
	for k, v := range updates {
		doc[k] = v
	}
	return nil
}

func (s *Store) DeleteDocument(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.col(collection), id)
	return nil
}

func (s *Store) QueryRange(_ context.Context, collection, field string, low, high any) ([]docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rangeCalls[collection]++
	if s.FailReads != nil {
		return nil, s.FailReads
	}

	var docs []docstore.Document
	for id, data := range s.col(collection) {
		v, ok := data[field]
		if !ok {
			continue
		}
		if inRange(v, low, high) {
			docs = append(docs, docstore.Document{ID: id, Data: cloneMap(data)})
		}
	}
	return docs, nil
}

func (s *Store) QueryEqual(_ context.Context, collection, field string, value any) ([]docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.equalCalls[collection]++
	if s.FailReads != nil {
		return nil, s.FailReads
	}

	var docs []docstore.Document
	for id, data := range s.col(collection) {
		if data[field] == value {
			docs = append(docs, docstore.Document{ID: id, Data: cloneMap(data)})
		}
	}
	return docs, nil
}

func (s *Store) NewGeneratedID(string) string {
	return uuid.NewString()
}

func (s *Store) col(collection string) map[string]map[string]any {
	c, ok := s.data[collection]
	if !ok {
		c = make(map[string]map[string]any)
		s.data[collection] = c
	}
	return c
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// inRange compares like Firestore does: only values of the bound's type
// participate in the filter.
func inRange(v, low, high any) bool {
	switch lo := low.(type) {
	case time.Time:
		hi, _ := high.(time.Time)
		tv, ok := v.(time.Time)
		if !ok {
			return false
		}
		return !tv.Before(lo) && !tv.After(hi)
	case string:
		hi, _ := high.(string)
		sv, ok := v.(string)
		if !ok {
			return false
		}
		return sv >= lo && sv <= hi
	default:
		return false
	}
}
