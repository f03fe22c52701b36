package constants

// Stage identifies one step of the document processing pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageTextExtraction  Stage = "text_extraction"
	StageSummarization   Stage = "summarization"
	StageFieldExtraction Stage = "field_extraction"
)

// Stages lists the pipeline stages in the order they run.
var Stages = []Stage{StageTextExtraction, StageSummarization, StageFieldExtraction}

// StageStatus is the canonical status for a single pipeline stage.
type StageStatus string

// Stable values (exposed verbatim to the serving layer).
const (
	StatusPending    StageStatus = "pending"
	StatusInProgress StageStatus = "in_progress"
	StatusCompleted  StageStatus = "completed"
	StatusFailed     StageStatus = "failed"
)
