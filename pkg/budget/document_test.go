package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultDocument(t *testing.T) {
	doc := NewDefaultDocument()

	// The goal constant must carry the field's type so comparisons against
	// document values hold exactly.
	assert.Equal(t, 50.0, DefaultDailyGoal)
	assert.Equal(t, DefaultDailyGoal, doc.DailyGoal)
	assert.Empty(t, doc.CustomCategories)
	assert.Empty(t, doc.Expenses)
	assert.False(t, doc.IsShared())
	assert.False(t, doc.HasExpenses())
}
