package main

import (
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/folio/internal/api"
	"github.com/jackzampolin/folio/internal/batch"
	"github.com/jackzampolin/folio/internal/config"
	"github.com/jackzampolin/folio/internal/segment"
	"github.com/jackzampolin/folio/internal/svcctx"
)

var (
	watchExisting bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Segment documents as they arrive in a directory",
	Long: `Watch a directory and segment each PDF or JSON document written to it.

The default directory is the inbox in the folio home (~/.folio/inbox).
A report is printed for each document. Config file changes are picked up
without a restart. Stop with Ctrl+C.

Examples:
  folio watch
  folio watch ./incoming --existing -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svcs := svcctx.ServicesFrom(ctx)
		logger := svcs.Logger
		cfg := svcs.Config.Get()

		dir := svcs.Home.InboxPath()
		if len(args) == 1 {
			dir = args[0]
		} else if err := svcs.Home.EnsureExists(); err != nil {
			return err
		}

		debounce := time.Duration(cfg.Batch.DebounceMS) * time.Millisecond
		if cmd.Flags().Changed("debounce") {
			debounce = watchDebounce
		}

		runner, err := batch.NewRunner(batch.Config{
			Segmenter:    svcs.Segmenter,
			MaxWorkers:   cfg.Batch.MaxWorkers,
			LoadAttempts: cfg.Batch.LoadAttempts,
			Logger:       logger,
			Recorder:     svcs.Metrics,
		})
		if err != nil {
			return err
		}

		// Rebuild the segmenter when the config file changes.
		svcs.Config.OnChange(func(c *config.Config) {
			seg, err := segment.New(c.SegmenterOptions(logger))
			if err != nil {
				logger.Warn("keeping previous segmenter", "error", err)
				return
			}
			runner.SetSegmenter(seg)
			logger.Info("segmenter reconfigured")
		})
		if svcs.Config.Path() != "" {
			svcs.Config.WatchConfig()
		}

		var outMu sync.Mutex
		watcher, err := batch.NewWatcher(batch.WatcherConfig{
			Runner:          runner,
			Dir:             dir,
			Debounce:        debounce,
			ProcessExisting: watchExisting,
			Logger:          logger,
			OnReport: func(r batch.Report) {
				outMu.Lock()
				defer outMu.Unlock()
				if err := api.Output(r); err != nil {
					logger.Warn("failed to write report", "source", r.Source, "error", err)
				}
			},
		})
		if err != nil {
			return err
		}

		return watcher.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "also segment documents already in the directory")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "quiet period before a file is processed (default: config batch.debounce_ms)")
}
