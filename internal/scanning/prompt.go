package scanning

import (
	"fmt"
	"strings"

	"github.com/zombor/grocery-tracker/internal/parsing"
)

// extractionPromptTemplate is the shared prompt used by all LLM providers for
// structured extraction. %s is the category list, %s the receipt text.
const extractionPromptTemplate = `You are reading the text of a grocery or retail receipt. The text came from OCR or was pasted by a user and may contain recognition errors.

Extract the following information:

1. **Merchant**: the store name, usually near the top of the receipt.
2. **Items**: every purchased product line. For each item give:
   - "name": the product name without prices or quantity markers
   - "price": the line total as a number (e.g. 3.49)
   - "quantity": how many were bought, as an integer (default 1)
   - "category": exactly one of %s
3. **Subtotal, tax and total**: as printed on the receipt, numbers only.

Do not list payment, change, card or tax lines as items.

Return ONLY valid JSON in this exact format:
{
  "merchant": "Store Name",
  "subtotal": 0.00,
  "tax": 0.00,
  "total": 0.00,
  "items": [
    {"name": "Item", "price": 0.00, "quantity": 1, "category": "Other"}
  ]
}

If you cannot find a field, use null for that field. Do not include any text before or after the JSON. Do not use markdown code blocks.

Receipt text:
%s`

// buildExtractionPrompt renders the extraction prompt for rawText
func buildExtractionPrompt(rawText string) string {
	names := make([]string, 0, len(parsing.Categories()))
	for _, c := range parsing.Categories() {
		names = append(names, fmt.Sprintf("%q", string(c)))
	}
	return fmt.Sprintf(extractionPromptTemplate, strings.Join(names, ", "), rawText)
}
