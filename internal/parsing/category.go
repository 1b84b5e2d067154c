package parsing

import "strings"

// Category is one of the fixed spending buckets
type Category string

const (
	Fruits     Category = "Fruits"
	JunkFood   Category = "Junk Food"
	Vegetables Category = "Vegetables"
	Protein    Category = "Protein"
	Dairy      Category = "Dairy"
	Drinks     Category = "Drinks"
	Snacks     Category = "Snacks"
	Household  Category = "Household"
	Other      Category = "Other"
)

var categories = []Category{Fruits, JunkFood, Vegetables, Protein, Dairy, Drinks, Snacks, Household, Other}

// Categories returns every category in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is a member of the fixed enum
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Junk reports whether spending in c counts towards potential savings
func (c Category) Junk() bool {
	return c == JunkFood
}

// Classifier maps item names to categories using a keyword table.
// It is safe for concurrent use.
type Classifier struct {
	table KeywordTable
}

// NewClassifier creates a Classifier over table. A nil table classifies
// everything as Other.
func NewClassifier(table KeywordTable) *Classifier {
	return &Classifier{table: table}
}

// Classify returns the first category in table order whose keyword appears
// anywhere in the lowercased name, or Other.
func (c *Classifier) Classify(name string) Category {
	lower := strings.ToLower(name)
	for _, entry := range c.table {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				return entry.Category
			}
		}
	}
	return Other
}
