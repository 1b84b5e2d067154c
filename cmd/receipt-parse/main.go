// Command receipt-parse turns receipt text files (or photos, with --ocr)
// into JSON drafts without running the tracker server.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/sync/errgroup"

	"github.com/zombor/grocery-tracker/internal/parsing"
	"github.com/zombor/grocery-tracker/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

// result is one parsed input
type result struct {
	Source  string         `json:"source"`
	RawText string         `json:"raw_text,omitempty"`
	Draft   *parsing.Draft `json:"draft"`
}

type input struct {
	name string
	data []byte
}

// readInputs loads every named file, or stdin when no names are given
func readInputs(names []string, stdin io.Reader) ([]input, error) {
	if len(names) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []input{{name: "-", data: data}}, nil
	}

	inputs := make([]input, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		inputs = append(inputs, input{name: name, data: data})
	}
	return inputs, nil
}

// parseAll extracts a draft for each input, at most limit at a time.
// Results keep the order of inputs.
func parseAll(ctx context.Context, inputs []input, recognizer scanning.Recognizer, extractor scanning.Extractor, limit int) ([]result, error) {
	results := make([]result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, in := range inputs {
		g.Go(func() error {
			text := string(in.data)
			if recognizer != nil {
				var err error
				text, err = recognizer.Recognize(ctx, in.data, http.DetectContentType(in.data))
				if err != nil {
					return fmt.Errorf("recognizing %s: %w", in.name, err)
				}
			}

			draft, err := extractor.Extract(ctx, text)
			if err != nil {
				return fmt.Errorf("extracting %s: %w", in.name, err)
			}

			results[i] = result{Source: in.name, Draft: draft}
			if recognizer != nil {
				results[i].RawText = text
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func main() {
	fs := ff.NewFlagSet("receipt-parse")
	var (
		categoriesPath = fs.StringLong("categories", "", "YAML category keyword table (optional)")
		ocr            = fs.BoolLong("ocr", "Treat inputs as photos or PDFs and run Tesseract first")
		tessdata       = fs.StringLong("tessdata", "", "Tesseract tessdata directory (optional)")
		ocrLanguage    = fs.StringLong("ocr-language", "eng", "Tesseract language")
		concurrency    = fs.IntLong("concurrency", 4, "Inputs processed in parallel")
		showVersion    = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("GROCERY_TRACKER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Logs go to stderr so stdout stays valid JSON.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	parser := parsing.NewDefaultParser()
	if *categoriesPath != "" {
		table, err := parsing.LoadKeywordTable(*categoriesPath)
		if err != nil {
			slog.Error("Failed to load category keywords", "error", err)
			os.Exit(1)
		}
		parser = parsing.NewParser(parsing.NewClassifier(table))
	}

	var recognizer scanning.Recognizer
	if *ocr {
		recognizer = scanning.NewTesseract(*tessdata, *ocrLanguage)
		defer recognizer.Close()
	}

	inputs, err := readInputs(fs.GetArgs(), os.Stdin)
	if err != nil {
		slog.Error("Failed to read input", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := parseAll(ctx, inputs, recognizer, scanning.NewHeuristic(parser), *concurrency)
	if err != nil {
		slog.Error("Failed to parse receipts", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		slog.Error("Failed to write output", "error", err)
		os.Exit(1)
	}
}
