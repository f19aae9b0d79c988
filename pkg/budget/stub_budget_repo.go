package budget

import (
	"context"
)

// StubRepo is an in-memory Repo used by tests.
type StubRepo struct {
	data      map[string]*Document
	SaveErr   error
	SaveCalls int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[string]*Document{}}
}

func (s *StubRepo) Load(ctx context.Context, docID string) (*Document, error) {
	doc, ok := s.data[docID]
	if !ok {
		return nil, ErrNotFound
	}
	return doc.Clone(), nil
}

func (s *StubRepo) Save(ctx context.Context, docID string, doc *Document) error {
	s.SaveCalls++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.data[docID] = doc.Clone()
	return nil
}

// Seed stores a document directly, bypassing Save accounting.
func (s *StubRepo) Seed(docID string, doc *Document) {
	s.data[docID] = doc.Clone()
}

// Stored returns the last saved copy of a document, or nil.
func (s *StubRepo) Stored(docID string) *Document {
	return s.data[docID]
}

func (s *StubRepo) Cleanup() {
	s.data = map[string]*Document{}
	s.SaveErr = nil
	s.SaveCalls = 0
}
