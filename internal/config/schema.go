package config

import (
	"fmt"
	"log/slog"

	"github.com/jackzampolin/folio/internal/segment"
)

// Config holds folio configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Segmentation    SegmentationCfg `mapstructure:"segmentation" yaml:"segmentation"`
	HeadingPatterns []string        `mapstructure:"heading_patterns" yaml:"heading_patterns"` // Empty uses the built-in patterns
	Batch           BatchCfg        `mapstructure:"batch" yaml:"batch"`
	LogLevel        string          `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
}

// SegmentationCfg mirrors segment.Config with config-file keys.
type SegmentationCfg struct {
	MinChapterPages     int     `mapstructure:"min_chapter_pages" yaml:"min_chapter_pages"`
	TargetChapterPages  int     `mapstructure:"target_chapter_pages" yaml:"target_chapter_pages"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	MinChapters         int     `mapstructure:"min_chapters" yaml:"min_chapters"`
	MaxChapters         int     `mapstructure:"max_chapters" yaml:"max_chapters"`
	RelaxationSteps     int     `mapstructure:"relaxation_steps" yaml:"relaxation_steps"`
	RelaxationDecrement float64 `mapstructure:"relaxation_decrement" yaml:"relaxation_decrement"`
	MergeStrategy       string  `mapstructure:"merge_strategy" yaml:"merge_strategy"` // "strongest_drop", "earliest"
}

// BatchCfg configures batch and watch mode.
type BatchCfg struct {
	MaxWorkers   int `mapstructure:"max_workers" yaml:"max_workers"`     // Max documents segmented at once
	LoadAttempts int `mapstructure:"load_attempts" yaml:"load_attempts"` // Retries for documents still being written
	DebounceMS   int `mapstructure:"debounce_ms" yaml:"debounce_ms"`     // Quiet period before a watched file is processed
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	seg := segment.DefaultConfig()
	return &Config{
		Segmentation: SegmentationCfg{
			MinChapterPages:     seg.MinChapterPages,
			TargetChapterPages:  seg.TargetChapterPages,
			SimilarityThreshold: seg.SimilarityThreshold,
			MinChapters:         seg.MinChapters,
			MaxChapters:         seg.MaxChapters,
			RelaxationSteps:     seg.RelaxationSteps,
			RelaxationDecrement: seg.RelaxationDecrement,
			MergeStrategy:       string(seg.MergeStrategy),
		},
		Batch: BatchCfg{
			MaxWorkers:   4,
			LoadAttempts: 3,
			DebounceMS:   500,
		},
		LogLevel: "info",
	}
}

// ToSegmentConfig converts the segmentation section to a segment.Config.
func (c *Config) ToSegmentConfig() *segment.Config {
	s := c.Segmentation
	return &segment.Config{
		MinChapterPages:     s.MinChapterPages,
		TargetChapterPages:  s.TargetChapterPages,
		SimilarityThreshold: s.SimilarityThreshold,
		MinChapters:         s.MinChapters,
		MaxChapters:         s.MaxChapters,
		RelaxationSteps:     s.RelaxationSteps,
		RelaxationDecrement: s.RelaxationDecrement,
		MergeStrategy:       segment.MergeStrategy(s.MergeStrategy),
	}
}

// SegmenterOptions builds segment.Options from the config. An empty
// heading pattern list selects the built-in patterns.
func (c *Config) SegmenterOptions(logger *slog.Logger) segment.Options {
	var patterns []string
	if len(c.HeadingPatterns) > 0 {
		patterns = append(patterns, c.HeadingPatterns...)
	}
	return segment.Options{
		Config:          c.ToSegmentConfig(),
		HeadingPatterns: patterns,
		Logger:          logger,
	}
}

// Validate checks the segmentation section, heading patterns, and batch limits.
func (c *Config) Validate() error {
	if err := c.ToSegmentConfig().Validate(); err != nil {
		return err
	}
	if len(c.HeadingPatterns) > 0 {
		if _, err := segment.NewRegexDetector(c.HeadingPatterns); err != nil {
			return err
		}
	}
	if c.Batch.MaxWorkers < 1 {
		return fmt.Errorf("batch.max_workers must be at least 1, got %d", c.Batch.MaxWorkers)
	}
	if c.Batch.LoadAttempts < 1 {
		return fmt.Errorf("batch.load_attempts must be at least 1, got %d", c.Batch.LoadAttempts)
	}
	if c.Batch.DebounceMS < 0 {
		return fmt.Errorf("batch.debounce_ms cannot be negative, got %d", c.Batch.DebounceMS)
	}
	return nil
}
