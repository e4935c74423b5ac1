package constants

// FileStatus is the canonical per-file outcome within a batch run.
type FileStatus string

// Stable values (surfaced verbatim in batch reports).
const (
	FileStatusParsed    FileStatus = "PARSED"    // stage 1 completed (layout tree produced)
	FileStatusExtracted FileStatus = "EXTRACTED" // stage 2 completed (record built and validated)
	FileStatusSkipped   FileStatus = "SKIPPED"   // rejected before parsing (size ceiling, extension)
	FileStatusFailed    FileStatus = "FAILED"    // terminal failure
)
