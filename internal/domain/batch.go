package domain

import "time"

// BatchRun summarises one run of the batch processor.
type BatchRun struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Files      int
	Archived   int
	Failed     int
	Operations int
	Succeeded  int
	Errored    int
}

// FileRecord describes one input file handled during a run.
type FileRecord struct {
	RunID       string
	Filename    string
	Checksum    string
	Records     int
	Archived    bool
	Error       string
	ProcessedAt time.Time
}
