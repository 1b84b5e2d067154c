package scanning

import (
	"context"

	"github.com/zombor/grocery-tracker/internal/parsing"
)

// Heuristic implements Extractor with the local rule-based parser. It never
// fails; unusable text yields an empty draft.
type Heuristic struct {
	parser *parsing.Parser
}

// NewHeuristic creates a Heuristic extractor
func NewHeuristic(parser *parsing.Parser) *Heuristic {
	return &Heuristic{parser: parser}
}

// Extract parses rawText locally
func (h *Heuristic) Extract(ctx context.Context, rawText string) (*parsing.Draft, error) {
	draft := h.parser.Parse(rawText)
	return &draft, nil
}

// Close is a no-op
func (h *Heuristic) Close() error {
	return nil
}
