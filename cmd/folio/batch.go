package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/folio/internal/api"
	"github.com/jackzampolin/folio/internal/batch"
	"github.com/jackzampolin/folio/internal/metrics"
	"github.com/jackzampolin/folio/internal/svcctx"
)

var batchWorkers int

// batchOutput is the result of `folio batch`.
type batchOutput struct {
	Reports batch.Reports    `json:"reports" yaml:"reports"`
	Summary *metrics.Summary `json:"summary" yaml:"summary"`
}

// RenderText renders every report followed by the summary box.
func (b batchOutput) RenderText(w io.Writer) error {
	if err := b.Reports.RenderText(w); err != nil {
		return err
	}
	return b.Summary.RenderText(w)
}

var batchCmd = &cobra.Command{
	Use:   "batch <document>...",
	Short: "Segment many documents concurrently",
	Long: `Segment many documents concurrently and print one report per document
followed by a summary.

Failed documents are reported without stopping the batch; the command exits
non-zero if any document failed.

Examples:
  folio batch library/*.pdf
  folio batch a.json b.json ./pages --workers 8 -o text`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svcs := svcctx.ServicesFrom(ctx)
		cfg := svcs.Config.Get()

		seg, err := segmenterWithOverrides(cmd, svcs)
		if err != nil {
			return err
		}

		workers := cfg.Batch.MaxWorkers
		if cmd.Flags().Changed("workers") {
			workers = batchWorkers
		}

		runner, err := batch.NewRunner(batch.Config{
			Segmenter:    seg,
			MaxWorkers:   workers,
			LoadAttempts: cfg.Batch.LoadAttempts,
			Logger:       svcs.Logger,
			Recorder:     svcs.Metrics,
		})
		if err != nil {
			return err
		}

		reports, runErr := runner.Run(ctx, args)
		out := batchOutput{
			Reports: reports,
			Summary: svcs.Metrics.GetSummary(metrics.Filter{}),
		}
		if err := api.Output(out); err != nil {
			return err
		}
		if runErr != nil {
			return runErr
		}
		if failed := reports.Failed(); failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(reports))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "documents segmented at once (default: config batch.max_workers)")
	addSegmentationFlags(batchCmd)
}
