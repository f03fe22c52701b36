package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/doc-processor/internal/common"
)

// SummarizerConfig carries the instruction prompt for the summarization stage.
type SummarizerConfig struct {
	Template string // must contain one %s placeholder for the input text
}

// Summarizer is Stage 2: text -> natural-language summary.
type Summarizer struct {
	gen    Generator
	cfg    SummarizerConfig
	logger *slog.Logger
}

func NewSummarizer(gen Generator, cfg SummarizerConfig, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Template == "" {
		cfg.Template = DefaultSummaryTemplate
	}
	return &Summarizer{gen: gen, cfg: cfg, logger: logger.With("component", "summarizer")}
}

// Summarize renders the prompt around the text and returns the model's raw
// output unmodified. Free-form prose is the expected result; there is no
// post-processing.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	start := time.Now()
	s.logger.Info("summarize.start", "text_bytes", len(text))

	out, err := s.gen.Generate(ctx, RenderPrompt(s.cfg.Template, text))
	if err != nil {
		s.logger.Error("summarize.failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", common.NewGenerationError("error generating summary", err)
	}

	s.logger.Info("summarize.ok", "summary_bytes", len(out), "elapsed_ms", time.Since(start).Milliseconds())
	return out, nil
}
