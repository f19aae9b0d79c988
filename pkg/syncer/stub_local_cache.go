package syncer

import (
	"context"

	"github.com/spendwell/spendwell/pkg/budget"
)

// StubLocalCache is an in-memory LocalCache for tests.
type StubLocalCache struct {
	data     map[string]*budget.Document
	PutCalls int
	PutErr   error
}

func NewStubLocalCache() *StubLocalCache {
	return &StubLocalCache{data: map[string]*budget.Document{}}
}

func (s *StubLocalCache) Get(ctx context.Context, docID string) (*budget.Document, error) {
	doc, ok := s.data[docID]
	if !ok {
		return nil, budget.ErrNotFound
	}
	return doc.Clone(), nil
}

func (s *StubLocalCache) Put(ctx context.Context, docID string, doc *budget.Document) error {
	s.PutCalls++
	if s.PutErr != nil {
		return s.PutErr
	}
	s.data[docID] = doc.Clone()
	return nil
}

// Seed stores a document directly, bypassing Put accounting.
func (s *StubLocalCache) Seed(docID string, doc *budget.Document) {
	s.data[docID] = doc.Clone()
}

// Cached returns the cached copy of a document, or nil.
func (s *StubLocalCache) Cached(docID string) *budget.Document {
	return s.data[docID]
}

func (s *StubLocalCache) Cleanup() {
	s.data = map[string]*budget.Document{}
	s.PutCalls = 0
	s.PutErr = nil
}
