package entity

// PipelineResult aggregates the artifacts of one processing run.
// Immutable once produced; owned by the caller of the orchestrator.
type PipelineResult struct {
	ExtractedText string      `json:"extracted_text"`
	Summary       string      `json:"summary"`
	Fields        FieldRecord `json:"fields"`
}
