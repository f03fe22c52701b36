package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joseph-ayodele/doc-processor/internal/common"
	"github.com/joseph-ayodele/doc-processor/internal/export"
	"github.com/joseph-ayodele/doc-processor/internal/extract"
	"github.com/joseph-ayodele/doc-processor/internal/llm"
	"github.com/joseph-ayodele/doc-processor/internal/pipeline"
	"github.com/joseph-ayodele/doc-processor/internal/server"
)

func main() {
	cfg := common.LoadConfig()

	logger, cleanup := common.SetupLogger(cfg.Log.File, common.ParseLogLevel(cfg.Log.Level))
	defer func() { _ = cleanup() }()

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
	exporter := export.NewService(logger)

	srv := server.New(logger, processor, exporter, cfg.Server)
	httpSrv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("http server listening",
			"addr", cfg.Server.HTTPAddr,
			"provider", cfg.LLM.Provider,
			"model", cfg.LLM.Model,
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("server stopped")
}
