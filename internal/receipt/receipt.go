package receipt

import (
	"time"

	"github.com/zombor/grocery-tracker/internal/parsing"
)

// Receipt represents a saved receipt. Money fields are in cents.
type Receipt struct {
	ID             string         `json:"id"`
	Merchant       string         `json:"merchant"`
	PurchaseDate   time.Time      `json:"purchase_date"`
	Items          []parsing.Item `json:"items"`
	Total          int            `json:"total"`         // Sum of item lines
	Subtotal       int            `json:"subtotal"`      // As printed on the receipt
	Tax            int            `json:"tax"`           // As printed on the receipt
	ReceiptTotal   int            `json:"receipt_total"` // As printed on the receipt
	JunkSpend      int            `json:"junk_spend"`    // Sum of junk food lines
	ImageReference string         `json:"image_reference,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ReceiptInput is a reviewed draft submitted for saving. Item fields arrive
// as loosely typed form values.
type ReceiptInput struct {
	Merchant       string              `json:"merchant"`
	PurchaseDate   string              `json:"purchase_date"` // YYYY-MM-DD
	Items          []parsing.Candidate `json:"items"`
	Totals         parsing.Totals      `json:"totals"`
	ImageReference string              `json:"image_reference,omitempty"`
}

// Scan is the unsaved result of recognizing a receipt photo
type Scan struct {
	ImageReference string         `json:"image_reference"`
	RawText        string         `json:"raw_text"`
	Draft          *parsing.Draft `json:"draft"`
}

// CategorySpend is the money spent in one category
type CategorySpend struct {
	Category parsing.Category `json:"category"`
	Amount   int              `json:"amount"`
}

// PrintedTotals aggregates the totals printed on saved receipts
type PrintedTotals struct {
	Subtotal int `json:"subtotal"`
	Tax      int `json:"tax"`
	Total    int `json:"total"`
}

// Summary is the running spending report over all saved receipts
type Summary struct {
	ReceiptCount int             `json:"receipt_count"`
	TotalSpent   int             `json:"total_spent"`
	JunkSavings  int             `json:"junk_savings"` // What skipping junk food would have saved
	Printed      PrintedTotals   `json:"printed_totals"`
	Categories   []CategorySpend `json:"categories"` // Largest spend first
}
