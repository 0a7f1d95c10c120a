package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"unicode"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// Entry represents a single configuration key with its default.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns the default configuration entries.
// These seed viper defaults and document the keys for `folio config show`.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	s := d.Segmentation
	return []Entry{
		// ===================
		// Segmentation
		// ===================
		{
			Key:         "segmentation.min_chapter_pages",
			Value:       s.MinChapterPages,
			Description: "Minimum pages in every chapter except the last",
		},
		{
			Key:         "segmentation.target_chapter_pages",
			Value:       s.TargetChapterPages,
			Description: "Preferred chapter length for synthetic chunking",
		},
		{
			Key:         "segmentation.similarity_threshold",
			Value:       s.SimilarityThreshold,
			Description: "Adjacent-page similarity below which a topic shift is a boundary",
		},
		{
			Key:         "segmentation.min_chapters",
			Value:       s.MinChapters,
			Description: "Fewest chapters an accepted result may have",
		},
		{
			Key:         "segmentation.max_chapters",
			Value:       s.MaxChapters,
			Description: "Most chapters an accepted result may have",
		},
		{
			Key:         "segmentation.relaxation_steps",
			Value:       s.RelaxationSteps,
			Description: "Extra topic-shift attempts after the first",
		},
		{
			Key:         "segmentation.relaxation_decrement",
			Value:       s.RelaxationDecrement,
			Description: "Threshold change between topic-shift attempts",
		},
		{
			Key:         "segmentation.merge_strategy",
			Value:       s.MergeStrategy,
			Description: "How close topic-shift boundaries are merged (strongest_drop, earliest)",
		},

		// ===================
		// Batch
		// ===================
		{
			Key:         "batch.max_workers",
			Value:       d.Batch.MaxWorkers,
			Description: "Maximum documents segmented concurrently",
		},
		{
			Key:         "batch.load_attempts",
			Value:       d.Batch.LoadAttempts,
			Description: "Attempts to load a document before giving up",
		},
		{
			Key:         "batch.debounce_ms",
			Value:       d.Batch.DebounceMS,
			Description: "Quiet period in milliseconds before a watched file is processed",
		},

		// ===================
		// General
		// ===================
		{
			Key:         "heading_patterns",
			Value:       []string{},
			Description: "Chapter heading regular expressions (empty uses the built-in patterns)",
		},
		{
			Key:         "log_level",
			Value:       d.LogLevel,
			Description: "Log level (debug, info, warn, error)",
		},
	}
}

// GetDefault returns the default entry for a key, or nil if not found.
func GetDefault(key string) *Entry {
	for _, e := range DefaultEntries() {
		if e.Key == key {
			return &e
		}
	}
	return nil
}

// Keys returns all known config keys, sorted.
func Keys() []string {
	entries := DefaultEntries()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	sort.Strings(keys)
	return keys
}

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	// Don't allow keys starting or ending with dots
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}

// ParseValue converts command-line arguments to the type of key's default.
// List keys take each argument as an element; scalar keys take exactly one.
func ParseValue(key string, args []string) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	def := GetDefault(key)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoDefault, key)
	}

	if _, ok := def.Value.([]string); ok {
		return append([]string{}, args...), nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("%s expects a single value, got %d", key, len(args))
	}
	raw := args[0]

	switch def.Value.(type) {
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer: %w", key, err)
		}
		return v, nil
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number: %w", key, err)
		}
		return v, nil
	default:
		return raw, nil
	}
}
