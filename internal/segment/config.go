package segment

import "fmt"

// MergeStrategy selects how two topic-shift boundaries closer than
// MinChapterPages are reduced to one.
type MergeStrategy string

const (
	// MergeStrongestDrop keeps the boundary with the lower similarity
	// (the larger drop). Ties keep the earlier boundary.
	MergeStrongestDrop MergeStrategy = "strongest_drop"
	// MergeEarliest always keeps the earlier boundary.
	MergeEarliest MergeStrategy = "earliest"
)

// Config controls segmentation. It is immutable per call.
type Config struct {
	MinChapterPages     int           `mapstructure:"min_chapter_pages" yaml:"min_chapter_pages"`
	TargetChapterPages  int           `mapstructure:"target_chapter_pages" yaml:"target_chapter_pages"`
	SimilarityThreshold float64       `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	MinChapters         int           `mapstructure:"min_chapters" yaml:"min_chapters"`
	MaxChapters         int           `mapstructure:"max_chapters" yaml:"max_chapters"`
	RelaxationSteps     int           `mapstructure:"relaxation_steps" yaml:"relaxation_steps"`
	RelaxationDecrement float64       `mapstructure:"relaxation_decrement" yaml:"relaxation_decrement"`
	MergeStrategy       MergeStrategy `mapstructure:"merge_strategy" yaml:"merge_strategy"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MinChapterPages:     8,
		TargetChapterPages:  20,
		SimilarityThreshold: 0.25,
		MinChapters:         2,
		MaxChapters:         80,
		RelaxationSteps:     3,
		RelaxationDecrement: 0.05,
		MergeStrategy:       MergeStrongestDrop,
	}
}

// Validate checks that the configuration is internally consistent.
// Errors wrap ErrConfiguration.
func (c *Config) Validate() error {
	switch {
	case c.MinChapterPages < 1:
		return fmt.Errorf("%w: min_chapter_pages must be at least 1, got %d", ErrConfiguration, c.MinChapterPages)
	case c.TargetChapterPages < 1:
		return fmt.Errorf("%w: target_chapter_pages must be at least 1, got %d", ErrConfiguration, c.TargetChapterPages)
	case c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1:
		return fmt.Errorf("%w: similarity_threshold must be in (0,1], got %g", ErrConfiguration, c.SimilarityThreshold)
	case c.MinChapters < 1:
		return fmt.Errorf("%w: min_chapters must be at least 1, got %d", ErrConfiguration, c.MinChapters)
	case c.MaxChapters < c.MinChapters:
		return fmt.Errorf("%w: max_chapters (%d) is below min_chapters (%d)", ErrConfiguration, c.MaxChapters, c.MinChapters)
	case c.RelaxationSteps < 0:
		return fmt.Errorf("%w: relaxation_steps cannot be negative, got %d", ErrConfiguration, c.RelaxationSteps)
	case c.RelaxationDecrement < 0:
		return fmt.Errorf("%w: relaxation_decrement cannot be negative, got %g", ErrConfiguration, c.RelaxationDecrement)
	}
	if _, err := mergePolicyFor(c.MergeStrategy); err != nil {
		return err
	}
	return nil
}
