package budget

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no document exists under the requested id.
var ErrNotFound = errors.New("document not found")

// Repo is the remote persistence contract for whole budget documents.
// Writes are last-write-wins at document granularity; there is no merge.
type Repo interface {
	Load(ctx context.Context, docID string) (*Document, error)
	Save(ctx context.Context, docID string, doc *Document) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Load(ctx context.Context, docID string) (*Document, error) {
	query := `SELECT doc FROM documents WHERE id = $1`
	var raw []byte
	err := r.db.QueryRowContext(ctx, query, docID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not load document %s: %w", docID, err)
		log.Error(err)
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		err := fmt.Errorf("could not decode document %s: %w", docID, err)
		log.Error(err)
		return nil, err
	}
	if doc.CustomCategories == nil {
		doc.CustomCategories = []string{}
	}
	if doc.Expenses == nil {
		doc.Expenses = map[string][]Expense{}
	}
	return &doc, nil
}

func (r *RepoImpl) Save(ctx context.Context, docID string, doc *Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not encode document %s: %w", docID, err)
	}

	kind := "personal"
	var inviteCode sql.NullString
	ownerID := docID
	if doc.IsShared() {
		kind = "shared"
		ownerID = doc.OwnerID
		inviteCode = sql.NullString{String: doc.InviteCode, Valid: doc.InviteCode != ""}
	}

	query := `INSERT INTO documents (id, owner_id, kind, invite_code, doc, updated_at)
				VALUES ($1, $2, $3, $4, $5, now())
				ON CONFLICT (id) DO UPDATE
				SET owner_id = EXCLUDED.owner_id,
				    kind = EXCLUDED.kind,
				    invite_code = EXCLUDED.invite_code,
				    doc = EXCLUDED.doc,
				    updated_at = now()`
	if _, err := r.db.ExecContext(ctx, query, docID, ownerID, kind, inviteCode, raw); err != nil {
		err := fmt.Errorf("could not save document %s: %w", docID, err)
		log.Error(err)
		return err
	}
	return nil
}
