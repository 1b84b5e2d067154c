package scanning

import (
	"context"

	"github.com/zombor/grocery-tracker/internal/parsing"
)

// Recognizer turns a receipt photo or PDF into raw receipt text
type Recognizer interface {
	// Recognize extracts the text printed on the receipt
	Recognize(ctx context.Context, data []byte, contentType string) (string, error)
	// Close releases resources held by the recognizer
	Close() error
}

// Extractor interprets raw receipt text into an editable draft
type Extractor interface {
	// Extract returns the merchant, items and totals found in rawText
	Extract(ctx context.Context, rawText string) (*parsing.Draft, error)
	// Close releases resources held by the extractor
	Close() error
}
