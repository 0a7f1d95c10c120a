package segment

import (
	"log/slog"
	"math"
	"strings"

	"github.com/jackzampolin/folio/internal/textstat"
	"github.com/jackzampolin/folio/internal/types"
)

// minUnitWords is the average page length below which pages are paired into
// two-page units before vectorizing.
const minUnitWords = 40

// unit is a run of one or two consecutive pages compared as a single text.
type unit struct {
	firstPage int
	text      string
}

// TopicShiftSegmenter finds chapter boundaries from drops in lexical
// similarity between adjacent page units.
type TopicShiftSegmenter struct {
	cfg       Config
	validator *Validator
	titler    titler
	merge     MergePolicy
	logger    *slog.Logger
}

// NewTopicShiftSegmenter returns a Pass B segmenter. cfg must be valid.
func NewTopicShiftSegmenter(cfg Config, keywords KeywordExtractor, logger *slog.Logger) *TopicShiftSegmenter {
	if logger == nil {
		logger = slog.Default()
	}
	policy, err := mergePolicyFor(cfg.MergeStrategy)
	if err != nil {
		policy = StrongestDrop
	}
	return &TopicShiftSegmenter{
		cfg:       cfg,
		validator: NewValidator(cfg),
		titler:    titler{keywords: keywords},
		merge:     policy,
		logger:    logger,
	}
}

// WithMergePolicy returns a copy of s using policy to merge close boundaries.
func (s *TopicShiftSegmenter) WithMergePolicy(policy MergePolicy) *TopicShiftSegmenter {
	cp := *s
	cp.merge = policy
	return &cp
}

// Segment runs the pass over contiguous pages. It returns the outcome and one
// PassAttempt per threshold tried. The threshold starts at
// SimilarityThreshold and is lowered by RelaxationDecrement after each
// attempt that yields too few or too short chapters, at most RelaxationSteps
// times. Too many chapters or a structural violation end the pass at once.
func (s *TopicShiftSegmenter) Segment(pages []types.Page) (Outcome, []types.PassAttempt) {
	first, last := pages[0].PageNumber, pages[len(pages)-1].PageNumber

	units := buildUnits(pages)
	if len(units) < 2 {
		reason := "too few pages for topic analysis"
		return Rejected{Reason: reason}, []types.PassAttempt{{
			Method: types.MethodTopicShift,
			Reason: reason,
		}}
	}

	sims := adjacentSimilarities(units)
	if !anyComparable(sims) {
		reason := "no pages with comparable text"
		return Rejected{Reason: reason}, []types.PassAttempt{{
			Method: types.MethodTopicShift,
			Reason: reason,
		}}
	}

	var attempts []types.PassAttempt
	var outcome Outcome
	threshold := s.cfg.SimilarityThreshold
	for attempt := 0; attempt <= s.cfg.RelaxationSteps; attempt++ {
		if attempt > 0 {
			threshold -= s.cfg.RelaxationDecrement
		}
		if threshold <= 0 {
			outcome = Rejected{Reason: "similarity threshold exhausted"}
			attempts = append(attempts, types.PassAttempt{
				Method:    types.MethodTopicShift,
				Reason:    "similarity threshold exhausted",
				Threshold: threshold,
			})
			break
		}

		boundaries := s.boundaries(units, sims, threshold, first)
		chapters := s.partition(pages, boundaries, first, last)
		outcome = s.validator.Judge(chapters, first, last)

		record := types.PassAttempt{
			Method:    types.MethodTopicShift,
			Threshold: threshold,
			Chapters:  len(chapters),
		}
		switch o := outcome.(type) {
		case Accepted:
			record.Accepted = true
			attempts = append(attempts, record)
			s.title(pages, o.Chapters, first)
			return o, attempts
		case Rejected:
			record.Reason = o.Reason
			attempts = append(attempts, record)
			s.logger.Debug("topic shift attempt rejected",
				"threshold", threshold, "chapters", len(chapters), "reason", o.Reason)
			if !relaxable(o.Violation, len(chapters), s.cfg) {
				return o, attempts
			}
		}
	}
	return outcome, attempts
}

// relaxable reports whether lowering the threshold may help.
func relaxable(v *Violation, count int, cfg Config) bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case ViolationCount:
		return count < cfg.MinChapters
	case ViolationLength:
		return true
	default:
		return false
	}
}

// boundaries returns merged boundaries for one threshold.
func (s *TopicShiftSegmenter) boundaries(units []unit, sims []float64, threshold float64, first int) []Boundary {
	var candidates []Boundary
	for i, sim := range sims {
		if !math.IsNaN(sim) && sim < threshold {
			candidates = append(candidates, Boundary{Page: units[i+1].firstPage, Similarity: sim})
		}
	}
	return mergeBoundaries(candidates, first, s.cfg.MinChapterPages, s.merge)
}

func (s *TopicShiftSegmenter) partition(pages []types.Page, boundaries []Boundary, first, last int) []types.Chapter {
	starts := make([]int, 0, len(boundaries)+1)
	starts = append(starts, first)
	for _, b := range boundaries {
		starts = append(starts, b.Page)
	}

	chapters := make([]types.Chapter, len(starts))
	for i, start := range starts {
		end := last
		if i+1 < len(starts) {
			end = starts[i+1] - 1
		}
		chapters[i] = types.Chapter{
			Number:          i + 1,
			StartPage:       start,
			EndPage:         end,
			DetectionMethod: types.MethodTopicShift,
		}
	}
	return chapters
}

// title names accepted chapters in place. Rejected attempts are never titled.
func (s *TopicShiftSegmenter) title(pages []types.Page, chapters []types.Chapter, first int) {
	for i := range chapters {
		ch := &chapters[i]
		ch.Title = s.titler.title(pagesIn(pages, first, ch.StartPage, ch.EndPage), ch.Number)
	}
}

// buildUnits groups pages into one-page units, or two-page units when pages
// are too sparse to compare on their own.
func buildUnits(pages []types.Page) []unit {
	words := 0
	for _, p := range pages {
		words += len(strings.Fields(p.Text))
	}
	size := 1
	if words/len(pages) < minUnitWords {
		size = 2
	}

	units := make([]unit, 0, (len(pages)+size-1)/size)
	for i := 0; i < len(pages); i += size {
		end := min(i+size, len(pages))
		var b strings.Builder
		for _, p := range pages[i:end] {
			b.WriteString(p.Text)
			b.WriteByte('\n')
		}
		units = append(units, unit{firstPage: pages[i].PageNumber, text: b.String()})
	}
	return units
}

// adjacentSimilarities vectorizes units with a fresh TF-IDF vectorizer and
// returns the cosine similarity of each adjacent pair. A pair where either
// unit has no content terms is NaN: blank pages carry no topic to shift from.
func adjacentSimilarities(units []unit) []float64 {
	texts := make([]string, len(units))
	for i, u := range units {
		texts[i] = u.text
	}
	vectors := textstat.NewVectorizer().FitTransform(texts)

	sims := make([]float64, len(vectors)-1)
	for i := range sims {
		if len(vectors[i]) == 0 || len(vectors[i+1]) == 0 {
			sims[i] = math.NaN()
			continue
		}
		sims[i] = textstat.Cosine(vectors[i], vectors[i+1])
	}
	return sims
}

func anyComparable(sims []float64) bool {
	for _, sim := range sims {
		if !math.IsNaN(sim) {
			return true
		}
	}
	return false
}
