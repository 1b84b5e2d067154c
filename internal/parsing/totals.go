package parsing

import "regexp"

// Totals holds the receipt-level amounts printed on the receipt itself.
// Missing amounts stay 0.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

var (
	trailingAmountPattern = regexp.MustCompile(`(` + priceToken + `)\s*$`)
	subtotalPattern       = regexp.MustCompile(`(?i)subtotal`)
	taxPattern            = regexp.MustCompile(`(?i)\b(?:tax|vat)\b`)
	totalPattern          = regexp.MustCompile(`(?i)\btotal\b|amount due|grand total`)
)

// ExtractTotals scans raw receipt text for subtotal, tax and total lines.
// A line sets at most one field (subtotal, then tax, then total) and later
// lines overwrite earlier ones.
func ExtractTotals(raw string) Totals {
	var totals Totals
	for _, line := range NormalizeLines(raw) {
		match := trailingAmountPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		amount := ParseAmount(match[1])

		switch {
		case subtotalPattern.MatchString(line):
			totals.Subtotal = amount
		case taxPattern.MatchString(line):
			totals.Tax = amount
		case totalPattern.MatchString(line):
			totals.Total = amount
		}
	}
	return totals
}
