package segment

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackzampolin/folio/internal/textstat"
	"github.com/jackzampolin/folio/internal/types"
)

// Options configures a Segmenter.
type Options struct {
	// Config is the segmentation config (default: DefaultConfig()).
	Config *Config
	// HeadingPatterns are the Pass A regular expressions. nil uses
	// DefaultHeadingPatterns; an empty non-nil slice disables Pass A matches.
	HeadingPatterns []string
	// Keywords titles chapters without headings (default: textstat extractor).
	Keywords KeywordExtractor
	// MergePolicy overrides Config.MergeStrategy for topic-shift boundaries.
	MergePolicy MergePolicy
	// Logger for pass transitions (default: slog.Default()).
	Logger *slog.Logger
}

// Segmenter runs the three-pass cascade. It is safe for concurrent use.
type Segmenter struct {
	cfg       Config
	regex     *RegexDetector
	topic     *TopicShiftSegmenter
	synthetic *SyntheticSegmenter
	validator *Validator
	logger    *slog.Logger
}

// New validates opts and builds a Segmenter.
// Invalid config or heading patterns return an error wrapping ErrConfiguration.
func New(opts Options) (*Segmenter, error) {
	cfg := DefaultConfig()
	if opts.Config != nil {
		c := *opts.Config
		cfg = &c
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	patterns := opts.HeadingPatterns
	if patterns == nil {
		patterns = DefaultHeadingPatterns
	}
	regex, err := NewRegexDetector(patterns)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	keywords := opts.Keywords
	if keywords == nil {
		keywords = textstat.NewKeywordExtractor()
	}

	topic := NewTopicShiftSegmenter(*cfg, keywords, logger)
	if opts.MergePolicy != nil {
		topic = topic.WithMergePolicy(opts.MergePolicy)
	}

	return &Segmenter{
		cfg:       *cfg,
		regex:     regex,
		topic:     topic,
		synthetic: NewSyntheticSegmenter(*cfg, keywords),
		validator: NewValidator(*cfg),
		logger:    logger,
	}, nil
}

// SegmentBook segments pages with default patterns and keyword titling.
func SegmentBook(pages []types.Page, cfg *Config) (*types.SegmentationResult, error) {
	s, err := New(Options{Config: cfg})
	if err != nil {
		return nil, err
	}
	return s.Segment(pages)
}

// Config returns a copy of the segmenter's configuration.
func (s *Segmenter) Config() Config {
	return s.cfg
}

// state is a step of the segmentation cascade.
type state int

const (
	stateStart state = iota
	stateRegex
	stateTopicShift
	stateSynthetic
	stateDone
	stateError
)

func (s state) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateRegex:
		return "try_regex"
	case stateTopicShift:
		return "try_topic_shift"
	case stateSynthetic:
		return "try_synthetic"
	case stateDone:
		return "done"
	case stateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Segment partitions pages into chapters. The returned result always
// satisfies the Validator; otherwise the error wraps ErrInput (bad pages) or
// ErrConfiguration (no pass can satisfy the config for this page count).
// Pages may arrive in any order; they are sorted on a copy.
func (s *Segmenter) Segment(pages []types.Page) (*types.SegmentationResult, error) {
	pages, err := normalizePages(pages)
	if err != nil {
		return nil, err
	}
	first, last := pages[0].PageNumber, pages[len(pages)-1].PageNumber

	result := &types.SegmentationResult{}
	st := stateStart
	for {
		s.logger.Debug("segmentation state", "state", st, "pages", len(pages))

		switch st {
		case stateStart:
			st = stateRegex

		case stateRegex:
			outcome := s.regexPass(pages, first, last)
			if s.settle(result, types.MethodRegex, outcome, 0) {
				st = stateDone
			} else {
				st = stateTopicShift
			}

		case stateTopicShift:
			outcome, attempts := s.topic.Segment(pages)
			result.Attempts = append(result.Attempts, attempts...)
			if s.settle(result, types.MethodTopicShift, outcome, len(attempts)) {
				st = stateDone
			} else {
				st = stateSynthetic
			}

		case stateSynthetic:
			chapters := s.synthetic.Segment(pages)
			outcome := s.validator.Judge(chapters, first, last)
			result.Attempts = append(result.Attempts, attemptFor(types.MethodSynthetic, outcome, len(chapters)))
			if s.settle(result, types.MethodSynthetic, outcome, 1) {
				st = stateDone
				break
			}
			rejected, _ := outcome.(Rejected)
			err = fmt.Errorf("%w: cannot segment %d pages with min_chapters=%d, max_chapters=%d, min_chapter_pages=%d: %s",
				ErrConfiguration, len(pages), s.cfg.MinChapters, s.cfg.MaxChapters, s.cfg.MinChapterPages, rejected.Reason)
			st = stateError

		case stateDone:
			s.logger.Info("segmentation complete",
				"method", result.Method(), "chapters", len(result.Chapters), "pages", len(pages))
			return result, nil

		case stateError:
			s.logger.Warn("segmentation failed", "error", err)
			return nil, err
		}
	}
}

// regexPass runs Pass A. Zero candidates reject without validation.
func (s *Segmenter) regexPass(pages []types.Page, first, last int) Outcome {
	candidates := s.regex.Detect(pages)
	if len(candidates) == 0 {
		return Rejected{Reason: "no chapter headings found"}
	}
	return s.validator.Judge(BuildChapters(candidates, first, last), first, last)
}

// settle records an outcome on result. It returns true when the outcome was
// accepted and its chapters became the result. recorded is the number of
// attempts the pass already appended to result.Attempts.
func (s *Segmenter) settle(result *types.SegmentationResult, method types.DetectionMethod, outcome Outcome, recorded int) bool {
	switch o := outcome.(type) {
	case Accepted:
		if recorded == 0 {
			result.Attempts = append(result.Attempts, attemptFor(method, o, len(o.Chapters)))
		}
		result.Chapters = o.Chapters
		return true
	case Rejected:
		if recorded == 0 {
			result.Attempts = append(result.Attempts, attemptFor(method, o, 0))
		}
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", method, o.Reason))
		kind := ViolationKind("none")
		if o.Violation != nil {
			kind = o.Violation.Kind
		}
		s.logger.Info("segmentation pass rejected", "method", method, "violation", kind, "reason", o.Reason)
	}
	return false
}

func attemptFor(method types.DetectionMethod, outcome Outcome, chapters int) types.PassAttempt {
	a := types.PassAttempt{Method: method, Chapters: chapters}
	switch o := outcome.(type) {
	case Accepted:
		a.Accepted = true
		a.Chapters = len(o.Chapters)
	case Rejected:
		a.Reason = o.Reason
	}
	return a
}

// normalizePages returns a page-ordered copy of pages, rejecting empty input,
// non-positive or duplicate page numbers, and gaps.
func normalizePages(pages []types.Page) ([]types.Page, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrInput)
	}

	sorted := make([]types.Page, len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PageNumber < sorted[j].PageNumber
	})

	if sorted[0].PageNumber < 1 {
		return nil, fmt.Errorf("%w: page number %d is not positive", ErrInput, sorted[0].PageNumber)
	}
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1].PageNumber, sorted[i].PageNumber
		switch {
		case cur == prev:
			return nil, fmt.Errorf("%w: duplicate page number %d", ErrInput, cur)
		case cur != prev+1:
			return nil, fmt.Errorf("%w: pages %d to %d are missing", ErrInput, prev+1, cur-1)
		}
	}
	return sorted, nil
}
