package receipt

import (
	"cmp"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/zombor/grocery-tracker/internal/parsing"
	"github.com/zombor/grocery-tracker/internal/scanning"
)

// defaultMerchant is used when a receipt is saved without a store name
const defaultMerchant = "Unknown store"

var (
	ErrEmptyText    = errors.New("receipt text is empty")
	ErrNoItems      = errors.New("receipt has no valid items")
	ErrMissingDate  = errors.New("purchase date is required")
	ErrInvalidDate  = errors.New("purchase date is invalid")
	ErrNoImage      = errors.New("receipt has no image")
	ErrUnknownImage = errors.New("image reference does not match a scanned image")
	purchaseFormats = []string{"2006-01-02", "2006/01/02", "01/02/2006"}
)

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// ulidGenerator generates lexically sortable IDs
type ulidGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newULIDGenerator() *ulidGenerator {
	return &ulidGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ulidGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles receipt operations
type Service struct {
	db          DB
	images      ImageStore
	recognizer  scanning.Recognizer
	extractor   scanning.Extractor
	parser      *parsing.Parser
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source.
// parser backs the heuristic fallback and the validation of saved items.
func NewService(db DB, images ImageStore, recognizer scanning.Recognizer, extractor scanning.Extractor, parser *parsing.Parser) *Service {
	return NewServiceWithDeps(db, images, recognizer, extractor, parser, newULIDGenerator(), &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, images ImageStore, recognizer scanning.Recognizer, extractor scanning.Extractor, parser *parsing.Parser, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		images:      images,
		recognizer:  recognizer,
		extractor:   extractor,
		parser:      parser,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
)

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	if unsafeFilenameChars.MatchString(ext[min(1, len(ext)):]) {
		ext = ""
	}

	base = unsafeFilenameChars.ReplaceAllString(base, "")
	base = strings.TrimSpace(whitespaceRun.ReplaceAllString(base, " "))
	if len(base) > 50 {
		base = base[:50]
	}
	if base == "" {
		base = "receipt"
	}
	return base + ext
}

// extract runs the configured extractor and falls back to the local parser
// when it fails
func (s *Service) extract(ctx context.Context, text string) *parsing.Draft {
	draft, err := s.extractor.Extract(ctx, text)
	if err != nil || draft == nil {
		slog.Warn("Extractor failed, falling back to heuristic parser", "error", err)
		fallback := s.parser.Parse(text)
		draft = &fallback
	}
	if draft.Empty() {
		slog.Info("No receipt data found in text", "length", len(text))
	}
	return draft
}

// ScanReceipt stores a receipt photo, recognizes its text and extracts a
// draft. The draft is not saved; the caller reviews it and calls
// CreateReceipt.
func (s *Service) ScanReceipt(ctx context.Context, filename string, data []byte, contentType string) (*Scan, error) {
	id := s.idGenerator.Generate()
	ref, err := s.images.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	text, err := s.recognizer.Recognize(ctx, data, contentType)
	if err != nil {
		slog.Error("Failed to recognize receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		if delErr := s.images.Delete(ref); delErr != nil {
			slog.Warn("Failed to clean up image", "ref", ref, "error", delErr)
		}
		return nil, fmt.Errorf("recognizing receipt: %w", err)
	}

	return &Scan{
		ImageReference: ref,
		RawText:        text,
		Draft:          s.extract(ctx, text),
	}, nil
}

// ParseText extracts a draft from pasted receipt text
func (s *Service) ParseText(ctx context.Context, text string) (*parsing.Draft, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	return s.extract(ctx, text), nil
}

func parsePurchaseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrMissingDate
	}
	for _, format := range purchaseFormats {
		if d, err := time.Parse(format, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// CreateReceipt validates a reviewed draft and saves it
func (s *Service) CreateReceipt(input ReceiptInput) (*Receipt, error) {
	date, err := parsePurchaseDate(input.PurchaseDate)
	if err != nil {
		return nil, err
	}

	items := s.parser.AdaptItems(input.Items)
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	merchant := strings.TrimSpace(input.Merchant)
	if merchant == "" {
		merchant = defaultMerchant
	}

	ref := strings.TrimSpace(input.ImageReference)
	if ref != "" {
		if _, err := s.images.Get(ref); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownImage, ref)
		}
	}

	total, junk := itemTotals(items)
	receipt := &Receipt{
		ID:             s.idGenerator.Generate(),
		Merchant:       merchant,
		PurchaseDate:   date,
		Items:          items,
		Total:          total,
		Subtotal:       dollarsToCents(input.Totals.Subtotal),
		Tax:            dollarsToCents(input.Totals.Tax),
		ReceiptTotal:   dollarsToCents(input.Totals.Total),
		JunkSpend:      junk,
		ImageReference: ref,
		CreatedAt:      s.timeSource.Now(),
	}

	if err := s.db.SaveReceipt(receipt); err != nil {
		return nil, fmt.Errorf("saving receipt to database: %w", err)
	}
	return receipt, nil
}

// GetReceipt retrieves a receipt by ID
func (s *Service) GetReceipt(id string) (*Receipt, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	return receipt, nil
}

// ListReceipts returns all receipts, most recently created first
func (s *Service) ListReceipts() ([]*Receipt, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	slices.SortStableFunc(receipts, func(a, b *Receipt) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return receipts, nil
}

// DeleteReceipt removes a receipt and its image
func (s *Service) DeleteReceipt(id string) error {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return fmt.Errorf("getting receipt for deletion: %w", err)
	}

	if receipt.ImageReference != "" {
		shared, err := s.imageShared(id, receipt.ImageReference)
		switch {
		case err != nil:
			slog.Warn("Keeping image, could not check other receipts", "ref", receipt.ImageReference, "error", err)
		case shared:
			slog.Info("Keeping image still used by another receipt", "ref", receipt.ImageReference)
		default:
			if err := s.images.Delete(receipt.ImageReference); err != nil {
				slog.Warn("Failed to delete image", "ref", receipt.ImageReference, "error", err)
			}
		}
	}

	if err := s.db.DeleteReceipt(id); err != nil {
		return fmt.Errorf("deleting receipt from database: %w", err)
	}
	return nil
}

// imageShared reports whether a receipt other than id points at ref
func (s *Service) imageShared(id, ref string) (bool, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return false, err
	}
	for _, r := range receipts {
		if r.ID != id && r.ImageReference == ref {
			return true, nil
		}
	}
	return false, nil
}

// GetReceiptImage returns the photo of a receipt and its sniffed content type
func (s *Service) GetReceiptImage(id string) ([]byte, string, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt: %w", err)
	}
	if receipt.ImageReference == "" {
		return nil, "", ErrNoImage
	}

	data, err := s.images.Get(receipt.ImageReference)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt image: %w", err)
	}
	return data, http.DetectContentType(data), nil
}

// Summary reports running totals over every saved receipt
func (s *Service) Summary() (*Summary, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}

	summary := &Summary{
		ReceiptCount: len(receipts),
		Categories:   make([]CategorySpend, 0),
	}
	byCategory := make(map[parsing.Category]decimal.Decimal)
	for _, r := range receipts {
		summary.TotalSpent += r.Total
		summary.JunkSavings += r.JunkSpend
		summary.Printed.Subtotal += r.Subtotal
		summary.Printed.Tax += r.Tax
		summary.Printed.Total += r.ReceiptTotal
		for _, item := range r.Items {
			byCategory[item.Category] = byCategory[item.Category].Add(lineAmount(item))
		}
	}

	for category, amount := range byCategory {
		summary.Categories = append(summary.Categories, CategorySpend{Category: category, Amount: toCents(amount)})
	}
	slices.SortFunc(summary.Categories, func(a, b CategorySpend) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return summary, nil
}
