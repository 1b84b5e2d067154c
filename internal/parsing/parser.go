// Package parsing interprets noisy receipt text (OCR output or pasted text)
// into line items, receipt totals and a merchant guess.
//
// Every function in this package is pure and never fails: text that cannot
// be interpreted produces empty or zero results, and the caller falls back
// to manual entry.
package parsing

// Draft is the editable result of interpreting one receipt
type Draft struct {
	Merchant string `json:"merchant"`
	Items    []Item `json:"items"`
	Totals   Totals `json:"totals"`
}

// Empty reports whether nothing usable was extracted
func (d Draft) Empty() bool {
	return d.Merchant == "" && len(d.Items) == 0 && d.Totals == (Totals{})
}

// Parser runs the heuristic extraction pipeline with a fixed classifier
type Parser struct {
	classifier *Classifier
}

// NewParser creates a Parser that categorizes items with classifier
func NewParser(classifier *Classifier) *Parser {
	return &Parser{classifier: classifier}
}

// NewDefaultParser creates a Parser using the built-in keyword table
func NewDefaultParser() *Parser {
	return NewParser(NewClassifier(DefaultKeywordTable()))
}

// Classifier returns the classifier used for item categories
func (p *Parser) Classifier() *Classifier {
	return p.classifier
}

// Parse extracts items, totals and merchant from the same raw text
func (p *Parser) Parse(raw string) Draft {
	return Draft{
		Merchant: ExtractMerchant(raw),
		Items:    p.ExtractItems(raw),
		Totals:   ExtractTotals(raw),
	}
}
