package parsing

import (
	"math"
	"strconv"
	"strings"
)

// priceToken matches a price-shaped number: 1-4 digits, a comma or period
// separator, exactly two decimals.
const priceToken = `\d{1,4}[.,]\d{2}`

// ParseAmount converts a loosely formatted monetary string to a number.
// Everything except digits, '.', ',' and '-' is dropped and the first comma
// is read as a decimal point. Unparseable input yields 0.
func ParseAmount(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, s)
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	if cleaned == "" {
		return 0
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
