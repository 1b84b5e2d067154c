package scanning

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements the Recognizer interface with the Tesseract OCR engine.
// PDFs that already carry a text layer are read directly.
type Tesseract struct {
	tessdataPrefix string
	language       string
}

// NewTesseract creates a Tesseract recognizer. An empty tessdataPrefix uses
// the engine's compiled-in default.
func NewTesseract(tessdataPrefix, language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{
		tessdataPrefix: tessdataPrefix,
		language:       language,
	}
}

// Recognize extracts the receipt text from a photo or PDF
func (t *Tesseract) Recognize(ctx context.Context, data []byte, contentType string) (string, error) {
	if normalizeMimeType(contentType) == mimePDF {
		text, err := pdfText(data)
		if err != nil {
			slog.Debug("PDF has no readable text layer, falling back to OCR", "error", err)
		} else if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	pngData, _, err := preparePNG(data, contentType)
	if err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.tessdataPrefix != "" {
		client.SetTessdataPrefix(t.tessdataPrefix)
	}
	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("setting OCR language: %w", err)
	}
	if err := client.SetImageFromBytes(pngData); err != nil {
		return "", fmt.Errorf("setting OCR image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return text, nil
}

// Close is a no-op; a Tesseract client is created per call
func (t *Tesseract) Close() error {
	return nil
}

// pdfText reads the embedded text of a PDF row by row
func pdfText(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading PDF text: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var b strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("reading PDF page %d: %w", pageIndex, err)
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			b.WriteString(strings.Join(words, " "))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
