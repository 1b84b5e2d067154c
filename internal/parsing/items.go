package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxItemPrice is the largest price accepted for a single receipt line
const MaxItemPrice = 9999

// Item is one purchased product line
type Item struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Quantity int      `json:"quantity"`
	Category Category `json:"category"`
}

// administrativePattern matches payment and meta lines that never carry a product
var administrativePattern = regexp.MustCompile(`(?i)subtotal|tax|total|balance|change|visa|mastercard|debit|credit|cash|thank|invoice|order|auth|payment`)

// unitPricePattern catches "@ 1.50" or "1.50" left in front of the line total
var unitPricePattern = regexp.MustCompile(`\s*(?:@\s*)?\$?\s*` + priceToken + `$`)

var (
	pricePattern         = regexp.MustCompile(priceToken)
	quantityPattern      = regexp.MustCompile(`(?:^|\s)(\d+)\s*[xX](?:\s|$)`)
	trailingPricePattern = regexp.MustCompile(`\$?\s*` + priceToken + `\s*$`)
	trailingPunctPattern = regexp.MustCompile(`[-#:*]+$`)
	digitsOnlyPattern    = regexp.MustCompile(`^\d+$`)
)

// ExtractItems pulls priced product lines out of raw receipt text. Output
// order follows the text; repeated (name, price, quantity) lines are
// dropped. Text without recognizable items yields an empty slice.
func (p *Parser) ExtractItems(raw string) []Item {
	items := make([]Item, 0)
	seen := make(map[string]bool)

	for _, line := range NormalizeLines(raw) {
		if administrativePattern.MatchString(line) {
			continue
		}

		tokens := pricePattern.FindAllString(line, -1)
		if len(tokens) == 0 {
			continue
		}
		// The last token is the line total; earlier ones are unit prices.
		price := ParseAmount(tokens[len(tokens)-1])
		if price <= 0 || price > MaxItemPrice {
			continue
		}

		quantity := lineQuantity(line)
		name := itemName(line)
		if utf8.RuneCountInString(name) < 2 || digitsOnlyPattern.MatchString(name) {
			continue
		}

		key := dedupKey(name, price, quantity)
		if seen[key] {
			continue
		}
		seen[key] = true

		items = append(items, Item{
			Name:     name,
			Price:    price,
			Quantity: quantity,
			Category: p.classifier.Classify(name),
		})
	}
	return items
}

// lineQuantity reads an "Nx" multiplier, defaulting to 1
func lineQuantity(line string) int {
	match := quantityPattern.FindStringSubmatch(line)
	if match == nil {
		return 1
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// itemName strips the prices, the quantity marker and trailing punctuation
func itemName(line string) string {
	name := trailingPricePattern.ReplaceAllString(line, "")
	name = quantityPattern.ReplaceAllString(name, " ")
	name = unitPricePattern.ReplaceAllString(strings.TrimSpace(name), "")
	name = trailingPunctPattern.ReplaceAllString(strings.TrimSpace(name), "")
	return strings.TrimSpace(name)
}

func dedupKey(name string, price float64, quantity int) string {
	return strings.ToLower(name) + "|" + strconv.FormatFloat(price, 'f', -1, 64) + "|" + strconv.Itoa(quantity)
}
