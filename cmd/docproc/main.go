package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/doc-processor/internal/common"
	"github.com/joseph-ayodele/doc-processor/internal/export"
	"github.com/joseph-ayodele/doc-processor/internal/extract"
	"github.com/joseph-ayodele/doc-processor/internal/llm"
	"github.com/joseph-ayodele/doc-processor/internal/pipeline"
)

// docproc runs the pipeline once over a local PDF, prints the summary, and
// writes the field record next to the input as extracted_fields.json.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: docproc <file.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	model, err := llm.NewModel(cfg.LLM, logger)
	if err != nil {
		logger.Error("create model", "error", err)
		os.Exit(1)
	}

	extractor := extract.NewPDFExtractor(extract.Config{MaxPages: cfg.Extract.MaxPages}, logger)
	summarizer := llm.NewSummarizer(model, llm.SummarizerConfig{}, logger)
	fields := llm.NewFieldExtractor(model, llm.FieldExtractorConfig{}, logger)
	processor := pipeline.NewProcessor(logger, extractor, summarizer, fields)

	// One timeout budget per model call, plus headroom for extraction.
	ctx, cancel := context.WithTimeout(context.Background(), 3*cfg.LLM.Timeout)
	defer cancel()

	result, err := processor.Run(ctx, path)
	if err != nil {
		logger.Error("processing failed", "path", path, "error", err)
		os.Exit(1)
	}

	fmt.Println(result.Summary)

	out, err := export.NewService(logger).FieldsJSON(result.Fields)
	if err != nil {
		logger.Error("render fields", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile("extracted_fields.json", out, 0o644); err != nil {
		logger.Error("write extracted_fields.json", "error", err)
		os.Exit(1)
	}
	logger.Info("done",
		"pages_text_bytes", len(result.ExtractedText),
		"degraded_fields", result.Fields.Degraded(),
		"fields_file", "extracted_fields.json",
	)
}
