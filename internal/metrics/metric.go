// Package metrics records per-document segmentation outcomes and summarizes
// them for batch and watch runs.
package metrics

import "time"

// Metric represents a single segmented (or failed) document.
// Metrics are append-only records kept in memory for the life of a run.
type Metric struct {
	// Attribution (for filtering/aggregation)
	RunID      string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	DocumentID string `json:"document_id,omitempty" yaml:"document_id,omitempty"`
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`

	// Outcome
	Method   string `json:"method,omitempty" yaml:"method,omitempty"` // regex, topic_shift, synthetic
	Chapters int    `json:"chapters,omitempty" yaml:"chapters,omitempty"`
	Pages    int    `json:"pages,omitempty" yaml:"pages,omitempty"`
	Attempts int    `json:"attempts,omitempty" yaml:"attempts,omitempty"` // Pass attempts including relaxations

	// Timing
	LoadSeconds    float64 `json:"load_seconds,omitempty" yaml:"load_seconds,omitempty"`
	SegmentSeconds float64 `json:"segment_seconds,omitempty" yaml:"segment_seconds,omitempty"`
	TotalSeconds   float64 `json:"total_seconds,omitempty" yaml:"total_seconds,omitempty"`

	// Status
	Success   bool   `json:"success" yaml:"success"`
	ErrorType string `json:"error_type,omitempty" yaml:"error_type,omitempty"` // input, configuration, load, canceled

	// Metadata
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}
