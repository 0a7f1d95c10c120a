package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jackzampolin/folio/internal/ingest"
	"github.com/jackzampolin/folio/internal/metrics"
	"github.com/jackzampolin/folio/internal/segment"
)

// Error types recorded on reports and metrics.
const (
	ErrorTypeLoad          = "load"
	ErrorTypeInput         = "input"
	ErrorTypeConfiguration = "configuration"
	ErrorTypeCanceled      = "canceled"
)

// LoadFunc loads a document from a path.
type LoadFunc func(ctx context.Context, path string) (*ingest.Document, error)

// Config configures a new Runner.
type Config struct {
	Segmenter    *segment.Segmenter
	MaxWorkers   int               // Documents segmented at once (default: 1)
	LoadAttempts int               // Load attempts per document (default: 1)
	RetryDelay   time.Duration     // Base delay between load attempts (default: 200ms)
	Logger       *slog.Logger      // Optional
	Recorder     *metrics.Recorder // Optional; receives one metric per document
	Load         LoadFunc          // Optional; defaults to ingest.Load
}

// Runner segments documents concurrently. Safe for concurrent use.
type Runner struct {
	segmenter    atomic.Pointer[segment.Segmenter]
	maxWorkers   int
	loadAttempts int
	retryDelay   time.Duration
	logger       *slog.Logger
	recorder     *metrics.Recorder
	load         LoadFunc

	inFlight atomic.Int32
}

// NewRunner creates a new Runner.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Segmenter == nil {
		return nil, fmt.Errorf("batch runner requires a segmenter")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	loadAttempts := cfg.LoadAttempts
	if loadAttempts <= 0 {
		loadAttempts = 1
	}

	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 200 * time.Millisecond
	}

	r := &Runner{
		maxWorkers:   maxWorkers,
		loadAttempts: loadAttempts,
		retryDelay:   retryDelay,
		logger:       logger.With("component", "batch", "workers", maxWorkers),
		recorder:     cfg.Recorder,
		load:         cfg.Load,
	}
	if r.load == nil {
		r.load = func(ctx context.Context, path string) (*ingest.Document, error) {
			return ingest.Load(ctx, path, ingest.Options{Logger: logger})
		}
	}
	r.segmenter.Store(cfg.Segmenter)
	return r, nil
}

// SetSegmenter replaces the segmenter used for documents started after the call.
func (r *Runner) SetSegmenter(s *segment.Segmenter) {
	if s != nil {
		r.segmenter.Store(s)
	}
}

// InFlight returns the number of documents currently being processed.
func (r *Runner) InFlight() int {
	return int(r.inFlight.Load())
}

// Run segments every path and returns one report per path in input order.
// Document failures are recorded in their reports. The returned error is
// non-nil only when ctx ends before all documents are processed; reports
// for unstarted documents then carry ErrorTypeCanceled.
func (r *Runner) Run(ctx context.Context, paths []string) (Reports, error) {
	runID := uuid.New().String()
	reports := make(Reports, len(paths))
	r.logger.Info("batch starting", "run_id", runID, "documents", len(paths))

	var g errgroup.Group
	g.SetLimit(r.maxWorkers)
	for i, path := range paths {
		if ctx.Err() != nil {
			reports[i] = canceledReport(runID, path, ctx.Err())
			continue
		}
		g.Go(func() error {
			reports[i] = r.process(ctx, runID, path)
			return nil
		})
	}
	_ = g.Wait()

	r.logger.Info("batch complete", "run_id", runID, "documents", len(paths), "failed", reports.Failed())
	if err := ctx.Err(); err != nil {
		return reports, err
	}
	return reports, nil
}

// process loads and segments one document.
func (r *Runner) process(ctx context.Context, runID, path string) Report {
	r.inFlight.Add(1)
	defer r.inFlight.Add(-1)

	logger := r.logger.With("run_id", runID, "source", path)
	report := Report{RunID: runID, Source: path}
	opts := metrics.RecordOpts{RunID: runID, Source: path}

	start := time.Now()
	doc, err := r.loadWithRetry(ctx, path)
	opts.LoadTime = time.Since(start)
	if err != nil {
		report.Error = err.Error()
		report.ErrorType = classify(err)
		report.Seconds = time.Since(start).Seconds()
		logger.Warn("failed to load document", "error", err)
		r.recordError(opts, report.ErrorType)
		return report
	}

	report.DocumentID = doc.ID
	report.Title = doc.Title
	report.PageCount = doc.PageCount()
	opts.DocumentID = doc.ID
	opts.Pages = doc.PageCount()

	segStart := time.Now()
	result, err := r.segmenter.Load().Segment(doc.Pages)
	opts.SegmentTime = time.Since(segStart)
	report.Seconds = time.Since(start).Seconds()
	if err != nil {
		report.Error = err.Error()
		report.ErrorType = classify(err)
		logger.Warn("failed to segment document", "document_id", doc.ID, "error", err)
		r.recordError(opts, report.ErrorType)
		return report
	}

	report.Result = result
	logger.Debug("document segmented",
		"document_id", doc.ID, "method", result.Method(), "chapters", len(result.Chapters), "pages", doc.PageCount())
	if r.recorder != nil {
		if err := r.recorder.RecordSegmentation(opts, result); err != nil {
			logger.Warn("failed to record metric", "error", err)
		}
	}
	return report
}

// loadWithRetry retries loads that may succeed later, such as a file that
// is still being copied into a watched directory.
func (r *Runner) loadWithRetry(ctx context.Context, path string) (*ingest.Document, error) {
	var doc *ingest.Document
	err := retry.Do(
		func() error {
			d, err := r.load(ctx, path)
			if err != nil {
				return err
			}
			doc = d
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(r.loadAttempts)),
		retry.Delay(r.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, ingest.ErrUnsupported)
		}),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Debug("retrying document load", "source", path, "attempt", n+1, "error", err)
		}),
	)
	return doc, err
}

func (r *Runner) recordError(opts metrics.RecordOpts, errorType string) {
	if r.recorder != nil {
		r.recorder.RecordError(opts, errorType)
	}
}

// classify maps an error to a report error type.
func classify(err error) string {
	switch {
	case errors.Is(err, segment.ErrInput):
		return ErrorTypeInput
	case errors.Is(err, segment.ErrConfiguration):
		return ErrorTypeConfiguration
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeCanceled
	default:
		return ErrorTypeLoad
	}
}

func canceledReport(runID, path string, err error) Report {
	return Report{RunID: runID, Source: path, Error: err.Error(), ErrorType: ErrorTypeCanceled}
}
