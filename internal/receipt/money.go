package receipt

import (
	"github.com/shopspring/decimal"

	"github.com/zombor/grocery-tracker/internal/parsing"
)

var hundred = decimal.NewFromInt(100)

// toCents rounds a dollar amount to whole cents
func toCents(amount decimal.Decimal) int {
	return int(amount.Mul(hundred).Round(0).IntPart())
}

// lineAmount is price times quantity for one item
func lineAmount(item parsing.Item) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// itemTotals returns the total and the junk food share of items, in cents
func itemTotals(items []parsing.Item) (total, junk int) {
	sum, junkSum := decimal.Zero, decimal.Zero
	for _, item := range items {
		line := lineAmount(item)
		sum = sum.Add(line)
		if item.Category.Junk() {
			junkSum = junkSum.Add(line)
		}
	}
	return toCents(sum), toCents(junkSum)
}

// dollarsToCents converts a parsed receipt amount to cents
func dollarsToCents(amount float64) int {
	return toCents(decimal.NewFromFloat(amount))
}
