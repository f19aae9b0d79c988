package budget

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidImport is returned when an imported payload does not look like a
// budget document. Import failures never partially apply.
var ErrInvalidImport = errors.New("invalid budget document")

// Export renders the whole document as indented JSON, the exact persisted
// shape, suitable for a file download.
func Export(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not export document: %w", err)
	}
	return data, nil
}

// importShape mirrors the persisted schema loosely enough to check the
// document's shape before committing to a full decode.
type importShape struct {
	DailyGoal json.RawMessage `json:"dailyGoal"`
	Expenses  json.RawMessage `json:"expenses"`
}

// ParseImport validates and decodes an imported JSON payload. The contract is
// deliberately minimal: the payload must carry an "expenses" field and a
// numeric "dailyGoal". Unknown expense categories and duplicate custom
// categories pass through untouched. On any failure ErrInvalidImport is
// returned and no document is produced.
func ParseImport(data []byte) (*Document, error) {
	var shape importShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", ErrInvalidImport, err)
	}
	if shape.Expenses == nil {
		return nil, fmt.Errorf("%w: missing expenses field", ErrInvalidImport)
	}
	var goal float64
	if err := json.Unmarshal(shape.DailyGoal, &goal); err != nil {
		return nil, fmt.Errorf("%w: dailyGoal is not numeric", ErrInvalidImport)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if doc.CustomCategories == nil {
		doc.CustomCategories = []string{}
	}
	if doc.Expenses == nil {
		doc.Expenses = map[string][]Expense{}
	}
	// Empty buckets never persist.
	for key, bucket := range doc.Expenses {
		if len(bucket) == 0 {
			delete(doc.Expenses, key)
		}
	}
	return &doc, nil
}
