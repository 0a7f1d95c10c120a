package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/jackzampolin/folio/internal/types"
)

// Recorder keeps metrics in memory. Safe for concurrent use.
type Recorder struct {
	mu      sync.RWMutex
	metrics []Metric
}

// NewRecorder creates a new metrics recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordOpts provides context for a metric recording.
type RecordOpts struct {
	RunID       string
	DocumentID  string
	Source      string
	Pages       int
	LoadTime    time.Duration
	SegmentTime time.Duration
}

// Record stores a single metric.
func (r *Recorder) Record(m Metric) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, m)
}

// RecordSegmentation records metrics from a successful segmentation result.
func (r *Recorder) RecordSegmentation(opts RecordOpts, result *types.SegmentationResult) error {
	if result == nil {
		return fmt.Errorf("nil segmentation result")
	}

	r.Record(Metric{
		// Attribution
		RunID:      opts.RunID,
		DocumentID: opts.DocumentID,
		Source:     opts.Source,

		// Outcome
		Method:   string(result.Method()),
		Chapters: len(result.Chapters),
		Pages:    opts.Pages,
		Attempts: len(result.Attempts),

		// Timing
		LoadSeconds:    opts.LoadTime.Seconds(),
		SegmentSeconds: opts.SegmentTime.Seconds(),
		TotalSeconds:   (opts.LoadTime + opts.SegmentTime).Seconds(),

		// Status
		Success: true,
	})
	return nil
}

// RecordError records a failed document as a metric.
func (r *Recorder) RecordError(opts RecordOpts, errorType string) {
	r.Record(Metric{
		RunID:          opts.RunID,
		DocumentID:     opts.DocumentID,
		Source:         opts.Source,
		Pages:          opts.Pages,
		LoadSeconds:    opts.LoadTime.Seconds(),
		SegmentSeconds: opts.SegmentTime.Seconds(),
		TotalSeconds:   (opts.LoadTime + opts.SegmentTime).Seconds(),
		Success:        false,
		ErrorType:      errorType,
	})
}

// Len returns the number of recorded metrics.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.metrics)
}
