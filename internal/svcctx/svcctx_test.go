package svcctx

import (
	"context"
	"testing"

	"github.com/jackzampolin/folio/internal/metrics"
	"github.com/jackzampolin/folio/internal/segment"
)

func TestServicesFrom(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		ctx := context.Background()
		if ServicesFrom(ctx) != nil {
			t.Error("expected nil services")
		}
		if SegmenterFrom(ctx) != nil || MetricsFrom(ctx) != nil || ConfigFrom(ctx) != nil || HomeFrom(ctx) != nil {
			t.Error("expected nil extractors")
		}
		if LoggerFrom(ctx) == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("attached services", func(t *testing.T) {
		seg, err := segment.New(segment.Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rec := metrics.NewRecorder()
		ctx := WithServices(context.Background(), &Services{Segmenter: seg, Metrics: rec})

		if SegmenterFrom(ctx) != seg {
			t.Error("segmenter not returned")
		}
		if MetricsFrom(ctx) != rec {
			t.Error("metrics recorder not returned")
		}
	})
}
