package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/grocery-tracker/internal/parsing"
	"github.com/zombor/grocery-tracker/internal/receipt"
	"github.com/zombor/grocery-tracker/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

type extractorConfig struct {
	kind        string
	geminiKey   string
	geminiModel string
	ollamaURL   string
	ollamaModel string
}

// newExtractor builds the draft extractor selected on the command line
func newExtractor(cfg extractorConfig, parser *parsing.Parser) (scanning.Extractor, error) {
	switch cfg.kind {
	case "heuristic":
		slog.Info("Using heuristic extractor")
		return scanning.NewHeuristic(parser), nil
	case "gemini":
		apiKey := cfg.geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("gemini API key is required: set --gemini-key or GEMINI_API_KEY")
		}
		slog.Info("Initializing Gemini extractor...", "model", cfg.geminiModel)
		return scanning.NewGemini(apiKey, cfg.geminiModel, parser)
	case "ollama":
		slog.Info("Initializing Ollama extractor...", "url", cfg.ollamaURL, "model", cfg.ollamaModel)
		return scanning.NewOllama(cfg.ollamaURL, cfg.ollamaModel, parser)
	default:
		return nil, fmt.Errorf("invalid extractor %q: want heuristic, gemini or ollama", cfg.kind)
	}
}

// newParser loads the keyword table from path, or the built-in one when path is empty
func newParser(path string) (*parsing.Parser, error) {
	if path == "" {
		return parsing.NewDefaultParser(), nil
	}
	table, err := parsing.LoadKeywordTable(path)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded category keywords", "path", path, "categories", len(table))
	return parsing.NewParser(parsing.NewClassifier(table)), nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("grocery-tracker")
	var (
		port           = fs.IntLong("port", 8080, "HTTP server port")
		dbPath         = fs.StringLong("db", "grocery-tracker.db", "Database file path")
		storagePath    = fs.StringLong("storage", "./receipts", "Receipt photo directory")
		extractorType  = fs.StringLong("extractor", "heuristic", "Draft extractor: 'heuristic', 'gemini' or 'ollama'")
		geminiKey      = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel    = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL      = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel    = fs.StringLong("ollama-model", "llama3.1", "Ollama model name")
		tessdata       = fs.StringLong("tessdata", "", "Tesseract tessdata directory (optional)")
		ocrLanguage    = fs.StringLong("ocr-language", "eng", "Tesseract language")
		categoriesPath = fs.StringLong("categories", "", "YAML category keyword table (optional)")
		authUser       = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass       = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
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

	parser, err := newParser(*categoriesPath)
	if err != nil {
		slog.Error("Failed to load category keywords", "error", err)
		os.Exit(1)
	}

	slog.Info("Initializing database...")
	db, err := receipt.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Initializing storage...")
	images, err := receipt.NewLocalImageStore(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	recognizer := scanning.NewTesseract(*tessdata, *ocrLanguage)
	defer recognizer.Close()

	extractor, err := newExtractor(extractorConfig{
		kind:        *extractorType,
		geminiKey:   *geminiKey,
		geminiModel: *geminiModel,
		ollamaURL:   *ollamaURL,
		ollamaModel: *ollamaModel,
	}, parser)
	if err != nil {
		slog.Error("Failed to initialize extractor", "error", err)
		os.Exit(1)
	}
	defer extractor.Close()

	receiptService := receipt.NewService(db, images, recognizer, extractor, parser)
	server := receipt.NewServer(receiptService, receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	})

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
