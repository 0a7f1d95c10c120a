package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jackzampolin/folio/internal/batch"
	"github.com/jackzampolin/folio/internal/metrics"
)

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"", "debug", "INFO", "warn", "error"} {
		if _, err := newLogger(level); err != nil {
			t.Errorf("%q: unexpected error: %v", level, err)
		}
	}
	if _, err := newLogger("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestBatchOutput_RenderText(t *testing.T) {
	rec := metrics.NewRecorder()
	rec.RecordError(metrics.RecordOpts{Source: "missing.pdf"}, batch.ErrorTypeLoad)

	out := batchOutput{
		Reports: batch.Reports{{Source: "missing.pdf", Error: "document not found"}},
		Summary: rec.GetSummary(metrics.Filter{}),
	}
	var buf bytes.Buffer
	if err := out.RenderText(&buf); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}
	for _, want := range []string{"missing.pdf", "document not found", "Segmentation Summary"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"segment": false, "batch": false, "watch": false, "config": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s not registered", name)
		}
	}
}
