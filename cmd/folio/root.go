package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/folio/internal/api"
	"github.com/jackzampolin/folio/internal/config"
	"github.com/jackzampolin/folio/internal/home"
	"github.com/jackzampolin/folio/internal/metrics"
	"github.com/jackzampolin/folio/internal/segment"
	"github.com/jackzampolin/folio/internal/svcctx"
	"github.com/jackzampolin/folio/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Statistical chapter segmentation for extracted book text",
	Long: `Folio splits the extracted text of a book into chapters.

Three passes run in order until one produces a valid segmentation:
  - Heading detection ("Chapter 3: ...", "CHAPTER IV", "Ch. 7")
  - Topic-shift detection from TF-IDF similarity between adjacent pages
  - Equal-size synthetic chapters as a guaranteed fallback

Documents can be PDFs, JSON page arrays, or directories of page_NNNN.txt files.`,
	Version:           version.GitRelease,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.folio/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "folio home directory (default: ~/.folio)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml, json, or text",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn, error (default: config log_level)",
	)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

// setupOutput applies --output. Commands that skip service setup still call it.
func setupOutput() error {
	if _, err := api.ParseOutputFormat(outputFormat); err != nil {
		return err
	}
	api.SetOutputFormat(outputFormat)
	return nil
}

// setupServices loads config and builds the services every command shares.
func setupServices(cmd *cobra.Command, args []string) error {
	if err := setupOutput(); err != nil {
		return err
	}

	h, err := home.New(homeDir)
	if err != nil {
		return err
	}

	path := cfgFile
	if path == "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return err
	}
	cfg := mgr.Get()

	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	logger, err := newLogger(level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	mgr.SetLogger(logger)

	seg, err := segment.New(cfg.SegmenterOptions(logger))
	if err != nil {
		return err
	}

	cmd.SetContext(svcctx.WithServices(cmd.Context(), &svcctx.Services{
		Config:    mgr,
		Logger:    logger,
		Home:      h,
		Segmenter: seg,
		Metrics:   metrics.NewRecorder(),
	}))
	return nil
}

// newLogger builds a stderr text logger so stdout stays machine-readable.
func newLogger(level string) (*slog.Logger, error) {
	if level == "" {
		level = "info"
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: l,
	})), nil
}
