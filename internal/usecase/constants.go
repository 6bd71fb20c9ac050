package usecase

const (
	// InputFileSuffix selects files in the input directory, compared case-insensitively.
	InputFileSuffix = ".txt"

	// Messages written to the report for settled operations.
	MessageProcessed       = "processed successfully"
	MessageProcessingError = "error during processing"

	// Stages reported to Metrics.FileFailed.
	StageRead    = "read"
	StageArchive = "archive"
	StageReport  = "report"
	StagePersist = "persist"
)
