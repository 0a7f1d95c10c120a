package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/folio/internal/api"
	"github.com/jackzampolin/folio/internal/batch"
	"github.com/jackzampolin/folio/internal/ingest"
	"github.com/jackzampolin/folio/internal/metrics"
	"github.com/jackzampolin/folio/internal/segment"
	"github.com/jackzampolin/folio/internal/svcctx"
)

var (
	segMinChapters        int
	segMaxChapters        int
	segMinChapterPages    int
	segTargetChapterPages int
	segThreshold          float64
	segMergeStrategy      string
	segPatterns           []string
)

var segmentCmd = &cobra.Command{
	Use:   "segment <document> [more-parts...]",
	Short: "Segment one document into chapters",
	Long: `Segment one document into chapters and print the result.

The document can be a PDF, a JSON page document, or a directory of
page_NNNN.txt files. Several PDF parts of one book (book-1.pdf, book-2.pdf)
are read as a single document with continuous page numbers.

Flags override the corresponding config values for this run only.

Examples:
  folio segment book.pdf
  folio segment book-1.pdf book-2.pdf -o text
  folio segment pages.json --min-chapters 5 --merge-strategy earliest
  folio segment ./pages --pattern '^part\s+(\d+)\s*(.*)$'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svcs := svcctx.ServicesFrom(ctx)
		logger := svcctx.LoggerFrom(ctx)

		seg, err := segmenterWithOverrides(cmd, svcs)
		if err != nil {
			return err
		}

		start := time.Now()
		var doc *ingest.Document
		if len(args) > 1 {
			for _, a := range args {
				if !strings.EqualFold(filepath.Ext(a), ".pdf") {
					return fmt.Errorf("multiple arguments are only supported for PDF parts: %s", a)
				}
			}
			doc, err = ingest.LoadPDFs(ctx, args, ingest.Options{Logger: logger})
		} else {
			doc, err = ingest.Load(ctx, args[0], ingest.Options{Logger: logger})
		}
		if err != nil {
			return err
		}
		loadTime := time.Since(start)

		segStart := time.Now()
		result, err := seg.Segment(doc.Pages)
		if err != nil {
			return err
		}

		opts := metrics.RecordOpts{
			DocumentID:  doc.ID,
			Source:      doc.Source,
			Pages:       doc.PageCount(),
			LoadTime:    loadTime,
			SegmentTime: time.Since(segStart),
		}
		if err := svcs.Metrics.RecordSegmentation(opts, result); err != nil {
			logger.Warn("failed to record metric", "error", err)
		}

		return api.Output(batch.Report{
			DocumentID: doc.ID,
			Source:     doc.Source,
			Title:      doc.Title,
			PageCount:  doc.PageCount(),
			Result:     result,
			Seconds:    time.Since(start).Seconds(),
		})
	},
}

// segmenterWithOverrides returns the shared segmenter, or a new one when any
// segmentation flag was set.
func segmenterWithOverrides(cmd *cobra.Command, svcs *svcctx.Services) (*segment.Segmenter, error) {
	flags := cmd.Flags()
	cfg := svcs.Config.Get()
	opts := cfg.SegmenterOptions(svcs.Logger)

	changed := false
	if flags.Changed("min-chapters") {
		opts.Config.MinChapters = segMinChapters
		changed = true
	}
	if flags.Changed("max-chapters") {
		opts.Config.MaxChapters = segMaxChapters
		changed = true
	}
	if flags.Changed("min-chapter-pages") {
		opts.Config.MinChapterPages = segMinChapterPages
		changed = true
	}
	if flags.Changed("target-chapter-pages") {
		opts.Config.TargetChapterPages = segTargetChapterPages
		changed = true
	}
	if flags.Changed("threshold") {
		opts.Config.SimilarityThreshold = segThreshold
		changed = true
	}
	if flags.Changed("merge-strategy") {
		opts.Config.MergeStrategy = segment.MergeStrategy(segMergeStrategy)
		changed = true
	}
	if flags.Changed("pattern") {
		opts.HeadingPatterns = segPatterns
		changed = true
	}

	if !changed {
		return svcs.Segmenter, nil
	}
	return segment.New(opts)
}

// addSegmentationFlags registers the per-run overrides on cmd.
func addSegmentationFlags(cmd *cobra.Command) {
	d := segment.DefaultConfig()
	cmd.Flags().IntVar(&segMinChapters, "min-chapters", d.MinChapters, "fewest chapters to accept")
	cmd.Flags().IntVar(&segMaxChapters, "max-chapters", d.MaxChapters, "most chapters to accept")
	cmd.Flags().IntVar(&segMinChapterPages, "min-chapter-pages", d.MinChapterPages, "minimum pages per non-final chapter")
	cmd.Flags().IntVar(&segTargetChapterPages, "target-chapter-pages", d.TargetChapterPages, "preferred synthetic chapter length")
	cmd.Flags().Float64Var(&segThreshold, "threshold", d.SimilarityThreshold, "topic-shift similarity threshold")
	cmd.Flags().StringVar(&segMergeStrategy, "merge-strategy", string(d.MergeStrategy), "close boundary merge: strongest_drop or earliest")
	cmd.Flags().StringArrayVar(&segPatterns, "pattern", nil, "heading regular expression (repeatable, replaces the defaults)")
}

func init() {
	addSegmentationFlags(segmentCmd)
}
