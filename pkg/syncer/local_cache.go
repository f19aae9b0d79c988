package syncer

import (
	"context"

	"github.com/spendwell/spendwell/pkg/budget"
)

// LocalCache is the fast write-through cache in front of the remote store.
// It must never lag behind in-memory state: the coordinator writes it
// synchronously on every mutation, before any debounced remote write.
// A miss is reported as budget.ErrNotFound.
type LocalCache interface {
	Get(ctx context.Context, docID string) (*budget.Document, error)
	Put(ctx context.Context, docID string, doc *budget.Document) error
}
