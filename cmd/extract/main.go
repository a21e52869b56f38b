// Command extract runs OCR and LLM extraction on a single document and writes
// the transcription and the parsed result to files.
// Usage: go run ./cmd/extract -input invoice.pdf [-page 2]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"docextract/internal/config"
	"docextract/internal/export"
	"docextract/internal/extraction"
	"docextract/internal/llm/ollama"
	"docextract/internal/ocr"
	ocropenai "docextract/internal/ocr/openai"
	"docextract/internal/preprocess"
	"docextract/internal/service"
)

type options struct {
	input        string
	page         int
	ocrOutput    string
	parsedOutput string
	tablesOutput string
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "", "path to input image or PDF file (required)")
	flag.IntVar(&opts.page, "page", 1, "page number for PDF input")
	flag.StringVar(&opts.ocrOutput, "ocr-output", "ocr_output.txt", "file to save OCR output text")
	flag.StringVar(&opts.parsedOutput, "parsed-output", "parsed_output.json", "file to save parsed LLM output")
	flag.StringVar(&opts.tablesOutput, "tables-output", "", "optional .xlsx or .csv file to save extracted tables")
	flag.Parse()

	if opts.input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	templates, err := extraction.LoadTemplates(cfg.Extractor.TemplatesDir)
	if err != nil {
		return fmt.Errorf("loading prompt templates: %w", err)
	}
	extractor := extraction.NewExtractor(ollama.NewClient(&cfg.Extractor), templates, extraction.Config{
		Temperature: cfg.Extractor.Temperature,
		Concurrency: cfg.Extractor.Concurrency,
		CallTimeout: cfg.Extractor.CallTimeout(),
	})
	preparer := preprocess.NewPreparer(
		preprocess.NewPdftoppmRenderer(cfg.OCR.PdftoppmPath),
		preprocess.NewPDFAnchorBuilder(),
		&cfg.OCR,
	)
	transcriber := ocr.NewTranscriber(ocropenai.NewModel(&cfg.OCR), &cfg.OCR)

	pipeline := service.NewPipelineService(preparer, transcriber, extractor, service.PipelineConfig{
		MaxUploadBytes: cfg.Server.MaxUploadBytes(),
	})

	f, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer func() { _ = f.Close() }()

	log.Printf("Running OCR on %s (page %d)...", opts.input, opts.page)
	result, err := pipeline.FullPipeline(ctx, service.DocumentInput{
		Filename: filepath.Base(opts.input),
		Body:     f,
		Page:     opts.page,
	})
	if err != nil {
		return fmt.Errorf("processing %s: %w", opts.input, err)
	}

	if err := os.WriteFile(opts.ocrOutput, []byte(result.OCR.Text), 0o644); err != nil {
		return fmt.Errorf("writing OCR output: %w", err)
	}
	log.Printf("OCR output saved to %s", opts.ocrOutput)

	parsed, err := json.MarshalIndent(result.Extraction, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding parsed output: %w", err)
	}
	if err := os.WriteFile(opts.parsedOutput, parsed, 0o644); err != nil {
		return fmt.Errorf("writing parsed output: %w", err)
	}
	log.Printf("Parsed output saved to %s", opts.parsedOutput)

	if opts.tablesOutput != "" {
		format, err := export.ParseFormat(strings.TrimPrefix(filepath.Ext(opts.tablesOutput), "."))
		if err != nil {
			return err
		}
		data, err := export.Render(format, result.Extraction.Tables)
		if err != nil {
			return fmt.Errorf("rendering tables: %w", err)
		}
		if err := os.WriteFile(opts.tablesOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing tables: %w", err)
		}
		log.Printf("%d tables saved to %s", len(result.Extraction.Tables), opts.tablesOutput)
	}

	return nil
}
