package parsing

import "strings"

var lineReplacer = strings.NewReplacer(
	"|", " ",
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

// NormalizeLine canonicalizes one raw text line: pipes become spaces, curly
// quotes become straight quotes, whitespace runs collapse to a single space
// and the ends are trimmed.
func NormalizeLine(line string) string {
	return strings.Join(strings.Fields(lineReplacer.Replace(line)), " ")
}

// NormalizeLines splits raw text on newlines (LF or CRLF), normalizes each
// line and drops the empty ones. Order is preserved.
func NormalizeLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = NormalizeLine(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
