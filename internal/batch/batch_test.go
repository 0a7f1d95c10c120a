package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackzampolin/folio/internal/ingest"
	"github.com/jackzampolin/folio/internal/metrics"
	"github.com/jackzampolin/folio/internal/segment"
	"github.com/jackzampolin/folio/internal/testutil"
	"github.com/jackzampolin/folio/internal/types"
)

var quietLogger = testutil.QuietLogger

// writeBook writes a JSON page document with n uniform pages.
func writeBook(t *testing.T, dir, name string, n int) string {
	t.Helper()
	return testutil.WriteJSONBook(t, dir, name, testutil.UniformPages(n))
}

func newTestRunner(t *testing.T, cfg Config) *Runner {
	t.Helper()
	if cfg.Segmenter == nil {
		seg, err := segment.New(segment.Options{Logger: quietLogger()})
		if err != nil {
			t.Fatalf("segment.New failed: %v", err)
		}
		cfg.Segmenter = seg
	}
	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Millisecond
	}
	r, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	return r
}

func TestNewRunner_RequiresSegmenter(t *testing.T) {
	if _, err := NewRunner(Config{}); err == nil {
		t.Error("expected error without segmenter")
	}
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeBook(t, dir, "large.json", 100),
		filepath.Join(dir, "missing.json"),
		writeBook(t, dir, "tiny.json", 1),
		writeBook(t, dir, "medium.json", 40),
		filepath.Join(dir, "notes.txt"),
	}

	rec := metrics.NewRecorder()
	r := newTestRunner(t, Config{MaxWorkers: 3, LoadAttempts: 2, Recorder: rec})

	reports, err := r.Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reports) != len(paths) {
		t.Fatalf("expected %d reports, got %d", len(paths), len(reports))
	}

	// Reports keep input order.
	for i, rep := range reports {
		if rep.Source != paths[i] {
			t.Errorf("report %d: got source %s, want %s", i, rep.Source, paths[i])
		}
		if rep.RunID == "" || rep.RunID != reports[0].RunID {
			t.Errorf("report %d: inconsistent run id %q", i, rep.RunID)
		}
	}

	wantTypes := []string{"", ErrorTypeLoad, ErrorTypeConfiguration, "", ErrorTypeLoad}
	for i, want := range wantTypes {
		if reports[i].ErrorType != want {
			t.Errorf("report %d: got error type %q, want %q (error: %s)", i, reports[i].ErrorType, want, reports[i].Error)
		}
	}

	large := reports[0]
	if !large.OK() || large.Result.Method() != types.MethodSynthetic || len(large.Result.Chapters) != 5 {
		t.Errorf("unexpected large report: %+v", large)
	}
	if large.PageCount != 100 || large.Title != "large" || large.DocumentID == "" {
		t.Errorf("unexpected large metadata: %+v", large)
	}
	if reports.Failed() != 3 {
		t.Errorf("expected 3 failures, got %d", reports.Failed())
	}

	summary := rec.GetSummary(metrics.Filter{RunID: large.RunID})
	if summary.Count != 5 || summary.SuccessCount != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if r.InFlight() != 0 {
		t.Errorf("expected no in-flight documents, got %d", r.InFlight())
	}
}

func TestRunner_LoadRetries(t *testing.T) {
	var calls atomic.Int32
	load := func(ctx context.Context, path string) (*ingest.Document, error) {
		if calls.Add(1) < 3 {
			return nil, fmt.Errorf("%w: truncated", ingest.ErrInvalidDocument)
		}
		return ingest.ParseJSON([]byte(`[{"page_number":1,"text":"a"},{"page_number":2,"text":"b"}]`))
	}

	cfg := segment.DefaultConfig()
	cfg.MinChapterPages = 1
	seg, err := segment.New(segment.Options{Config: cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}

	r := newTestRunner(t, Config{Segmenter: seg, LoadAttempts: 3, Load: load})
	reports, err := r.Run(context.Background(), []string{"book.json"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !reports[0].OK() {
		t.Fatalf("expected success after retries, got %s", reports[0].Error)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 load calls, got %d", calls.Load())
	}
}

func TestRunner_UnsupportedNotRetried(t *testing.T) {
	var calls atomic.Int32
	load := func(ctx context.Context, path string) (*ingest.Document, error) {
		calls.Add(1)
		return nil, fmt.Errorf("%w: %s", ingest.ErrUnsupported, path)
	}

	r := newTestRunner(t, Config{LoadAttempts: 5, Load: load})
	reports, _ := r.Run(context.Background(), []string{"book.epub"})
	if reports[0].OK() {
		t.Fatal("expected failure")
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single load call, got %d", calls.Load())
	}
}

func TestRunner_Canceled(t *testing.T) {
	dir := t.TempDir()
	path := writeBook(t, dir, "book.json", 40)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner(t, Config{})
	reports, err := r.Run(ctx, []string{path, path})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	for i, rep := range reports {
		if rep.ErrorType != ErrorTypeCanceled {
			t.Errorf("report %d: got error type %q, want canceled", i, rep.ErrorType)
		}
	}
}

func TestRunner_SetSegmenter(t *testing.T) {
	dir := t.TempDir()
	path := writeBook(t, dir, "book.json", 100)
	r := newTestRunner(t, Config{})

	cfg := segment.DefaultConfig()
	cfg.TargetChapterPages = 50
	seg, err := segment.New(segment.Options{Config: cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	r.SetSegmenter(seg)
	r.SetSegmenter(nil) // ignored

	reports, err := r.Run(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := len(reports[0].Result.Chapters); got != 2 {
		t.Errorf("expected 2 chapters with the replaced segmenter, got %d", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrapped: %w", segment.ErrInput), ErrorTypeInput},
		{fmt.Errorf("wrapped: %w", segment.ErrConfiguration), ErrorTypeConfiguration},
		{context.Canceled, ErrorTypeCanceled},
		{context.DeadlineExceeded, ErrorTypeCanceled},
		{os.ErrNotExist, ErrorTypeLoad},
	}
	for _, tt := range tests {
		if got := classify(tt.err); got != tt.want {
			t.Errorf("classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestReports_RenderText(t *testing.T) {
	reports := Reports{
		{Source: "a.json", Title: "A Book", PageCount: 40, Result: &types.SegmentationResult{
			Chapters: []types.Chapter{{Number: 1, Title: "One", StartPage: 1, EndPage: 40, DetectionMethod: types.MethodRegex}},
		}},
		{Source: "b.json", Error: "boom"},
	}
	var sb strings.Builder
	if err := reports.RenderText(&sb); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}
	for _, want := range []string{"A Book", "One", "b.json", "boom"} {
		if !strings.Contains(sb.String(), want) {
			t.Errorf("output missing %q:\n%s", want, sb.String())
		}
	}
}
