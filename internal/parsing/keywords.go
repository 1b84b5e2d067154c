package parsing

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryKeywords lists the lowercase substrings that select a category
type CategoryKeywords struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// KeywordTable is an ordered category -> keywords mapping. Earlier entries
// win when a name matches several categories.
type KeywordTable []CategoryKeywords

// DefaultKeywordTable returns the built-in grocery keyword table
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		{Fruits, []string{"apple", "banana", "orange", "grape", "berry", "strawberry", "blueberry", "mango", "avocado", "peach", "pear", "melon", "pineapple", "kiwi", "fruit"}},
		{JunkFood, []string{"chips", "soda", "coke", "pepsi", "candy", "chocolate", "cookies", "cookie", "ice cream", "donut", "doughnut", "pizza", "fries", "burger", "energy drink"}},
		{Vegetables, []string{"lettuce", "tomato", "onion", "carrot", "broccoli", "spinach", "pepper", "cucumber", "vegetable"}},
		{Protein, []string{"chicken", "beef", "pork", "fish", "salmon", "tuna", "egg", "eggs", "turkey", "protein"}},
		{Dairy, []string{"milk", "cheese", "yogurt", "butter", "cream"}},
		{Drinks, []string{"juice", "water", "coffee", "tea", "drink"}},
		{Snacks, []string{"nuts", "granola", "cracker", "trail mix", "snack"}},
		{Household, []string{"detergent", "soap", "paper towel", "toilet paper", "cleaner", "trash bag"}},
	}
}

// keywordFile is the on-disk YAML layout:
//
//	categories:
//	  - category: Fruits
//	    keywords: [apple, banana]
type keywordFile struct {
	Categories []CategoryKeywords `yaml:"categories"`
}

// LoadKeywordTable reads a keyword table from a YAML file
func LoadKeywordTable(path string) (KeywordTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword table: %w", err)
	}
	return ParseKeywordTable(data)
}

// ParseKeywordTable decodes and validates a YAML keyword table. Keywords are
// lowercased and trimmed; entry order is preserved.
func ParseKeywordTable(data []byte) (KeywordTable, error) {
	var file keywordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding keyword table: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("keyword table has no categories")
	}

	seen := make(map[Category]bool, len(file.Categories))
	table := make(KeywordTable, 0, len(file.Categories))
	for _, entry := range file.Categories {
		if !entry.Category.Valid() {
			return nil, fmt.Errorf("unknown category %q", entry.Category)
		}
		// Other is the fallback and never matched by keyword.
		if entry.Category == Other {
			return nil, fmt.Errorf("category %q cannot have keywords", Other)
		}
		if seen[entry.Category] {
			return nil, fmt.Errorf("duplicate category %q", entry.Category)
		}
		seen[entry.Category] = true

		keywords := make([]string, 0, len(entry.Keywords))
		for _, keyword := range entry.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				return nil, fmt.Errorf("empty keyword for category %q", entry.Category)
			}
			keywords = append(keywords, keyword)
		}
		table = append(table, CategoryKeywords{Category: entry.Category, Keywords: keywords})
	}
	return table, nil
}
