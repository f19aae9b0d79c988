package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spendwell/spendwell/pkg/budget"
)

const documentKeyPrefix = "spendwell:doc:"

// DocumentCache keeps JSON snapshots of budget documents in Redis. It is the
// fast local tier in front of the remote document store; entries have no TTL
// and are overwritten on every mutation.
type DocumentCache struct {
	client *redis.Client
}

func NewDocumentCache(client *redis.Client) *DocumentCache {
	return &DocumentCache{client: client}
}

func (c *DocumentCache) Get(ctx context.Context, docID string) (*budget.Document, error) {
	raw, err := c.client.Get(ctx, documentKeyPrefix+docID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, budget.ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not read cached document %s: %w", docID, err)
		log.Error(err)
		return nil, err
	}

	var doc budget.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		// A corrupt cache entry is treated as a miss.
		log.Warnf("discarding undecodable cached document %s: %v", docID, err)
		return nil, budget.ErrNotFound
	}
	if doc.CustomCategories == nil {
		doc.CustomCategories = []string{}
	}
	if doc.Expenses == nil {
		doc.Expenses = map[string][]budget.Expense{}
	}
	return &doc, nil
}

func (c *DocumentCache) Put(ctx context.Context, docID string, doc *budget.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not encode document %s: %w", docID, err)
	}
	if err := c.client.Set(ctx, documentKeyPrefix+docID, raw, 0).Err(); err != nil {
		err := fmt.Errorf("could not cache document %s: %w", docID, err)
		log.Error(err)
		return err
	}
	return nil
}
