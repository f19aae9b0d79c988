package category

import "strings"

// Category pairs a category identifier with its display color.
type Category struct {
	ID    string
	Color string
}

// DefaultColor is used for any category the registry does not know,
// including user-defined ones without an assigned color.
const DefaultColor = "#9e9e9e"

// defaults is the fixed built-in category set, in display order.
var defaults = []Category{
	{ID: "groceries", Color: "#4caf50"},
	{ID: "transport", Color: "#2196f3"},
	{ID: "eating out", Color: "#ff9800"},
	{ID: "entertainment", Color: "#9c27b0"},
	{ID: "shopping", Color: "#e91e63"},
	{ID: "bills", Color: "#f44336"},
	{ID: "health", Color: "#00bcd4"},
	{ID: "other", Color: "#607d8b"},
}

var colorByID = func() map[string]string {
	m := make(map[string]string, len(defaults))
	for _, c := range defaults {
		m[c.ID] = c.Color
	}
	return m
}()

// Defaults returns the fixed built-in categories in display order.
func Defaults() []Category {
	out := make([]Category, len(defaults))
	copy(out, defaults)
	return out
}

// ColorFor returns the display color for a category id. Expense categories are
// free-form strings, so unknown ids fall back to DefaultColor rather than error.
func ColorFor(id string) string {
	if color, ok := colorByID[strings.ToLower(strings.TrimSpace(id))]; ok {
		return color
	}
	return DefaultColor
}

// IsDefault reports whether id is one of the built-in categories.
func IsDefault(id string) bool {
	_, ok := colorByID[strings.ToLower(strings.TrimSpace(id))]
	return ok
}

// Normalize lower-cases and trims custom category ids and drops empty entries.
// Duplicates are deliberately kept: the document model tolerates them and
// rendering is last-write-wins.
func Normalize(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		out = append(out, id)
	}
	return out
}
