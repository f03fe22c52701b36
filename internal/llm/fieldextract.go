package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-processor/internal/common"
	"github.com/joseph-ayodele/doc-processor/internal/entity"
)

// FieldExtractorConfig couples the instruction prompt with the schema the
// prompt promises, so the orchestration stays decoupled from exact wording.
type FieldExtractorConfig struct {
	Template string         // must contain one %s placeholder for the input text
	Schema   map[string]any // advisory shape check of the parsed record; nil disables
}

// FieldExtractor is Stage 3: text -> structured FieldRecord. Model output that
// cannot be parsed as JSON after sanitization is recovered into the degraded
// record shape rather than surfaced as an error; only the underlying model
// call itself can fail this stage.
type FieldExtractor struct {
	gen    Generator
	cfg    FieldExtractorConfig
	logger *slog.Logger
}

func NewFieldExtractor(gen Generator, cfg FieldExtractorConfig, logger *slog.Logger) *FieldExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Template == "" {
		cfg.Template = DefaultFieldsTemplate
	}
	if cfg.Schema == nil {
		cfg.Schema = BuildFieldsJSONSchema()
	}
	return &FieldExtractor{gen: gen, cfg: cfg, logger: logger.With("component", "field_extractor")}
}

// ExtractFields prompts the model for the canonical field record and parses
// the response. Deterministic for a given model output: identical raw text
// always yields an identical FieldRecord.
func (e *FieldExtractor) ExtractFields(ctx context.Context, text string) (entity.FieldRecord, error) {
	rid := uuid.New().String()
	start := time.Now()

	e.logger.Info("fields.start", "req_id", rid, "text_bytes", len(text))

	raw, err := e.gen.Generate(ctx, RenderPrompt(e.cfg.Template, text))
	if err != nil {
		e.logger.Error("fields.generate_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.FieldRecord{}, common.NewGenerationError("error extracting fields", err)
	}

	cleaned := SanitizeModelJSON(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		// Recovered locally: a malformed response degrades the payload but
		// never aborts the run.
		e.logger.Warn("fields.parse_failed",
			"req_id", rid, "error", err,
			"raw_bytes", len(cleaned),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.DegradedFieldRecord(cleaned), nil
	}

	if e.cfg.Schema != nil {
		if verr := ValidateJSONAgainstSchema(e.cfg.Schema, []byte(cleaned)); verr != nil {
			// Advisory only; missing or off-shape keys are tolerated.
			e.logger.Warn("fields.schema_mismatch", "req_id", rid, "error", verr)
		}
	}

	e.logger.Info("fields.ok",
		"req_id", rid,
		"keys", len(parsed),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return entity.OkFieldRecord(parsed), nil
}
