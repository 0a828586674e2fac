package model

import "time"

// Report is the outcome of one collect-and-analyze run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Collected CollectionResult
	Analyses  map[string]AnalysisResult
	Missing   []string // requested symbols absent from Collected
}
