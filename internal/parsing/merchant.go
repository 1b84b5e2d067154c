package parsing

import "regexp"

// merchantScanLines bounds how far down the receipt the store name may appear
const merchantScanLines = 6

var (
	wordPattern            = regexp.MustCompile(`[A-Za-z]{3,}`)
	merchantExcludePattern = regexp.MustCompile(`(?i)receipt|invoice|thank|date|time`)
)

// ExtractMerchant guesses the store name from the top of the receipt.
// It returns "" when none of the first lines looks like a name.
func ExtractMerchant(raw string) string {
	lines := NormalizeLines(raw)
	if len(lines) > merchantScanLines {
		lines = lines[:merchantScanLines]
	}
	for _, line := range lines {
		if wordPattern.MatchString(line) && !merchantExcludePattern.MatchString(line) {
			return line
		}
	}
	return ""
}
