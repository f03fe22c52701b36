package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-processor/constants"
	"github.com/joseph-ayodele/doc-processor/internal/common"
	"github.com/joseph-ayodele/doc-processor/internal/entity"
	"github.com/joseph-ayodele/doc-processor/internal/extract"
)

// Summarizer is Stage 2 as the orchestrator sees it.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// FieldExtractor is Stage 3 as the orchestrator sees it.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (entity.FieldRecord, error)
}

// Processor coordinates text extraction, summarization and field extraction
// for one document at a time. Fully synchronous; the first stage failure
// propagates with a stage-qualified message and no partial result.
type Processor struct {
	logger     *slog.Logger
	text       extract.TextExtractor
	summarizer Summarizer
	fields     FieldExtractor
	tracker    *Tracker
}

func NewProcessor(logger *slog.Logger, text extract.TextExtractor, summarizer Summarizer, fields FieldExtractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     logger.With("component", "processor"),
		text:       text,
		summarizer: summarizer,
		fields:     fields,
		tracker:    NewTracker(),
	}
}

// Tracker exposes per-stage status to the serving layer.
func (p *Processor) Tracker() *Tracker {
	return p.tracker
}

// Run processes the document at path through all three stages in order.
// On failure the tracker is left where the run stopped (typically with the
// failing stage in_progress) as an observable signal; on success every stage
// ends completed/100.
func (p *Processor) Run(ctx context.Context, path string) (entity.PipelineResult, error) {
	runID := uuid.New().String()
	log := p.logger.With("run_id", runID)
	start := time.Now()

	log.Info("pipeline.start", "path", path)
	p.tracker.Reset()

	// Stage 1: text extraction
	p.tracker.Start(constants.StageTextExtraction)
	p.tracker.Midpoint(constants.StageTextExtraction)
	extracted, err := p.text.Extract(ctx, path)
	if err != nil {
		log.Error("pipeline.extract.failed", "error", err)
		return entity.PipelineResult{}, common.WrapError(err, "text extraction stage")
	}
	p.tracker.Complete(constants.StageTextExtraction)
	log.Info("pipeline.extract.ok", "pages", extracted.Pages, "bytes", len(extracted.Text))

	// Stage 2: summarization
	p.tracker.Start(constants.StageSummarization)
	p.tracker.Midpoint(constants.StageSummarization)
	summary, err := p.summarizer.Summarize(ctx, extracted.Text)
	if err != nil {
		log.Error("pipeline.summarize.failed", "error", err)
		return entity.PipelineResult{}, common.WrapError(err, "summarization stage")
	}
	p.tracker.Complete(constants.StageSummarization)
	log.Info("pipeline.summarize.ok", "bytes", len(summary))

	// Stage 3: field extraction. The extractor absorbs JSON-parse failures
	// into a degraded record, so only an upstream model-call failure can
	// surface here.
	p.tracker.Start(constants.StageFieldExtraction)
	p.tracker.Midpoint(constants.StageFieldExtraction)
	fields, err := p.fields.ExtractFields(ctx, extracted.Text)
	if err != nil {
		log.Error("pipeline.fields.failed", "error", err)
		return entity.PipelineResult{}, common.WrapError(err, "field extraction stage")
	}
	p.tracker.Complete(constants.StageFieldExtraction)
	log.Info("pipeline.fields.ok", "degraded", fields.Degraded())

	log.Info("pipeline.ok", "elapsed_ms", time.Since(start).Milliseconds())
	return entity.PipelineResult{
		ExtractedText: extracted.Text,
		Summary:       summary,
		Fields:        fields,
	}, nil
}

// RunUpload spools the uploaded document to a temporary file, runs the
// pipeline, and removes the file on every exit path.
func (p *Processor) RunUpload(ctx context.Context, r io.Reader) (entity.PipelineResult, error) {
	tmp, err := os.CreateTemp("", "doc-processor-*.pdf")
	if err != nil {
		return entity.PipelineResult{}, common.WrapError(err, "save upload")
	}
	path := tmp.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			p.logger.Warn("pipeline.tmp_remove_failed", "path", path, "error", err)
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return entity.PipelineResult{}, common.WrapError(err, "save upload")
	}
	if err := tmp.Close(); err != nil {
		return entity.PipelineResult{}, common.WrapError(err, "save upload")
	}

	return p.Run(ctx, path)
}
