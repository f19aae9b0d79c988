package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorForKnownCategory(t *testing.T) {
	assert.Equal(t, "#4caf50", ColorFor("groceries"))
	assert.Equal(t, "#4caf50", ColorFor("  Groceries "))
}

func TestColorForUnknownCategoryFallsBack(t *testing.T) {
	assert.Equal(t, DefaultColor, ColorFor("spaceships"))
	assert.Equal(t, DefaultColor, ColorFor(""))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"trims and lower-cases", []string{" Coffee ", "PETS"}, []string{"coffee", "pets"}},
		{"drops empties", []string{"", "  ", "books"}, []string{"books"}},
		{"keeps duplicates", []string{"gym", "gym"}, []string{"gym", "gym"}},
		{"empty input", []string{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestDefaultsAreNormalized(t *testing.T) {
	for _, c := range Defaults() {
		assert.True(t, IsDefault(c.ID))
		assert.NotEqual(t, "", c.Color)
	}
}
