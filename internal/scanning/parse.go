package scanning

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zombor/grocery-tracker/internal/parsing"
)

// parseCandidateJSON extracts the JSON object from an LLM answer. Markdown
// fences and prose around the object are ignored.
func parseCandidateJSON(text string) (*parsing.CandidateReceipt, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	endIdx := strings.LastIndex(text, "}")
	if endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	var candidate parsing.CandidateReceipt
	if err := json.Unmarshal([]byte(text[startIdx:endIdx+1]), &candidate); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}
	return &candidate, nil
}

// adaptResponse turns an LLM answer into a normalized draft
func adaptResponse(parser *parsing.Parser, text string) (*parsing.Draft, error) {
	candidate, err := parseCandidateJSON(text)
	if err != nil {
		return nil, fmt.Errorf("parsing receipt data: %w", err)
	}
	draft := parser.Adapt(*candidate)
	return &draft, nil
}
