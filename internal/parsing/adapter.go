package parsing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Loose is a JSON scalar that may arrive as a number or a string
// ("3.49", "$3.49", 3.49). Null and missing values decode to "".
type Loose string

// UnmarshalJSON accepts strings, numbers, booleans and null
func (l *Loose) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Loose(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*l = Loose(data)
		return nil
	}
	// Exponent forms such as 1e3 would lose their meaning in ParseAmount.
	f, err := n.Float64()
	if err != nil {
		*l = ""
		return nil
	}
	*l = Loose(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// Amount coerces the value with ParseAmount
func (l Loose) Amount() float64 {
	return ParseAmount(string(l))
}

// Candidate is an item proposed by an external extractor, before
// normalization
type Candidate struct {
	Name     string `json:"name"`
	Price    Loose  `json:"price"`
	Quantity Loose  `json:"quantity"`
	Category string `json:"category"`
}

// CandidateReceipt is the full structured answer of an external extractor
type CandidateReceipt struct {
	Merchant string      `json:"merchant"`
	Subtotal Loose       `json:"subtotal"`
	Tax      Loose       `json:"tax"`
	Total    Loose       `json:"total"`
	Items    []Candidate `json:"items"`
}

// AdaptItems normalizes externally extracted items into the Item shape.
// Items without a name or with a price outside (0, MaxItemPrice] are discarded;
// quantities below 1 become 1; unknown categories are reclassified.
func (p *Parser) AdaptItems(candidates []Candidate) []Item {
	items := make([]Item, 0, len(candidates))
	for _, c := range candidates {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		price := c.Price.Amount()
		if price <= 0 || price > MaxItemPrice {
			continue
		}

		category := Category(strings.TrimSpace(c.Category))
		if !category.Valid() {
			category = p.classifier.Classify(name)
		}

		items = append(items, Item{
			Name:     name,
			Price:    price,
			Quantity: coerceQuantity(c.Quantity),
			Category: category,
		})
	}
	return items
}

// Adapt normalizes a complete external extraction into a Draft
func (p *Parser) Adapt(candidate CandidateReceipt) Draft {
	return Draft{
		Merchant: strings.TrimSpace(candidate.Merchant),
		Items:    p.AdaptItems(candidate.Items),
		Totals: Totals{
			Subtotal: candidate.Subtotal.Amount(),
			Tax:      candidate.Tax.Amount(),
			Total:    candidate.Total.Amount(),
		},
	}
}

func coerceQuantity(q Loose) int {
	n := math.Trunc(q.Amount())
	if n < 1 || n > math.MaxInt32 {
		return 1
	}
	return int(n)
}
