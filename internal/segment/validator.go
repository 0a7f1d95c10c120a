package segment

import (
	"errors"

	"github.com/jackzampolin/folio/internal/types"
)

// Validator checks chapter lists against the result invariants.
type Validator struct {
	cfg Config
}

// NewValidator returns a validator for cfg.
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate checks chapters against the expected page range [first, last].
// Checks run in order: structure, count, then chapter length.
// Returns nil or a *Violation.
func (v *Validator) Validate(chapters []types.Chapter, first, last int) error {
	if err := checkStructure(chapters, first, last); err != nil {
		return err
	}

	if n := len(chapters); n < v.cfg.MinChapters || n > v.cfg.MaxChapters {
		return violationf(ViolationCount, "%d chapters, want between %d and %d",
			n, v.cfg.MinChapters, v.cfg.MaxChapters)
	}

	for i, ch := range chapters[:len(chapters)-1] {
		if ch.PageCount() < v.cfg.MinChapterPages {
			return violationf(ViolationLength, "chapter %d spans %d pages, minimum is %d",
				i+1, ch.PageCount(), v.cfg.MinChapterPages)
		}
	}
	return nil
}

// Judge validates chapters and wraps the verdict as an Outcome.
func (v *Validator) Judge(chapters []types.Chapter, first, last int) Outcome {
	err := v.Validate(chapters, first, last)
	if err == nil {
		return Accepted{Chapters: chapters}
	}
	var violation *Violation
	if errors.As(err, &violation) {
		return rejectf(violation, "")
	}
	return Rejected{Reason: err.Error()}
}

func checkStructure(chapters []types.Chapter, first, last int) error {
	if len(chapters) == 0 {
		return violationf(ViolationStructural, "no chapters")
	}
	if chapters[0].StartPage != first {
		return violationf(ViolationStructural, "first chapter starts at page %d, document starts at %d",
			chapters[0].StartPage, first)
	}
	for i, ch := range chapters {
		if ch.Number != i+1 {
			return violationf(ViolationStructural, "chapter at position %d is numbered %d", i+1, ch.Number)
		}
		if ch.EndPage < ch.StartPage {
			return violationf(ViolationStructural, "chapter %d ends (%d) before it starts (%d)",
				ch.Number, ch.EndPage, ch.StartPage)
		}
		if i > 0 {
			prev := chapters[i-1]
			switch {
			case ch.StartPage <= prev.EndPage:
				return violationf(ViolationStructural, "chapter %d overlaps chapter %d", ch.Number, prev.Number)
			case ch.StartPage != prev.EndPage+1:
				return violationf(ViolationStructural, "gap between chapter %d and chapter %d", prev.Number, ch.Number)
			}
		}
	}
	if end := chapters[len(chapters)-1].EndPage; end != last {
		return violationf(ViolationStructural, "last chapter ends at page %d, document ends at %d", end, last)
	}
	return nil
}
