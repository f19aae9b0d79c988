package sharing

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spendwell/spendwell/pkg/budget"
)

// Repo answers membership queries over the shared document table. Document
// loads and saves themselves go through budget.Repo; this repo only covers
// the lookups budget.Repo has no notion of.
type Repo interface {
	FindByInviteCode(ctx context.Context, code string) (string, *budget.Document, error)
	ListForMember(ctx context.Context, userID string) ([]Membership, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) FindByInviteCode(ctx context.Context, code string) (string, *budget.Document, error) {
	query := `SELECT id, doc FROM documents WHERE kind = 'shared' AND invite_code = $1`
	var docID string
	var raw []byte
	err := r.db.QueryRowContext(ctx, query, code).Scan(&docID, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, budget.ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not look up invite code: %w", err)
		log.Error(err)
		return "", nil, err
	}

	doc, err := decodeDocument(docID, raw)
	if err != nil {
		return "", nil, err
	}
	return docID, doc, nil
}

func (r *RepoImpl) ListForMember(ctx context.Context, userID string) ([]Membership, error) {
	query := `SELECT id, doc FROM documents
				WHERE kind = 'shared' AND doc->'members' @> to_jsonb($1::text)
				ORDER BY doc->>'name'`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Errorf("failed to list shared budgets for user %s: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	memberships := make([]Membership, 0)
	for rows.Next() {
		var docID string
		var raw []byte
		if err := rows.Scan(&docID, &raw); err != nil {
			log.Errorf("failed to scan shared budget row: %v", err)
			return nil, err
		}
		doc, err := decodeDocument(docID, raw)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, MembershipOf(docID, doc))
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over shared budget rows: %v", err)
		return nil, err
	}
	return memberships, nil
}

func decodeDocument(docID string, raw []byte) (*budget.Document, error) {
	var doc budget.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		err := fmt.Errorf("could not decode shared document %s: %w", docID, err)
		log.Error(err)
		return nil, err
	}
	return &doc, nil
}
