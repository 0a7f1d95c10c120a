// Package types provides shared types used across multiple packages.
// This package has no dependencies on other folio packages to avoid import cycles.
package types

// DetectionMethod indicates which segmentation pass produced a chapter.
type DetectionMethod string

const (
	// MethodRegex indicates the chapter came from an explicit heading match.
	MethodRegex DetectionMethod = "regex"
	// MethodTopicShift indicates the chapter boundary came from a drop in
	// similarity between adjacent page windows.
	MethodTopicShift DetectionMethod = "topic_shift"
	// MethodSynthetic indicates content-blind equal-size partitioning.
	MethodSynthetic DetectionMethod = "synthetic"
)

// ParseDetectionMethod converts a string to a DetectionMethod.
// Returns false if the string is not recognized.
func ParseDetectionMethod(s string) (DetectionMethod, bool) {
	switch s {
	case "regex":
		return MethodRegex, true
	case "topic_shift":
		return MethodTopicShift, true
	case "synthetic":
		return MethodSynthetic, true
	default:
		return "", false
	}
}

// Page is a single page of extracted document text.
type Page struct {
	PageNumber int    `json:"page_number" yaml:"page_number"` // 1-indexed
	Text       string `json:"text" yaml:"text"`
}

// Chapter is a contiguous, titled page range.
// Chapters are created once per segmentation call and never mutated.
type Chapter struct {
	Number          int             `json:"number" yaml:"number"` // 1-based, sequential
	Title           string          `json:"title" yaml:"title"`
	StartPage       int             `json:"start_page" yaml:"start_page"`
	EndPage         int             `json:"end_page" yaml:"end_page"` // inclusive
	DetectionMethod DetectionMethod `json:"detection_method" yaml:"detection_method"`
}

// PageCount returns the number of pages the chapter spans.
func (c Chapter) PageCount() int {
	return c.EndPage - c.StartPage + 1
}

// PassAttempt records one attempt of a segmentation pass.
type PassAttempt struct {
	Method    DetectionMethod `json:"method" yaml:"method"`
	Accepted  bool            `json:"accepted" yaml:"accepted"`
	Reason    string          `json:"reason,omitempty" yaml:"reason,omitempty"`
	Threshold float64         `json:"threshold,omitempty" yaml:"threshold,omitempty"` // topic_shift only
	Chapters  int             `json:"chapters" yaml:"chapters"`
}

// SegmentationResult is the output of one segmentation call.
type SegmentationResult struct {
	Chapters []Chapter     `json:"chapters" yaml:"chapters"`
	Warnings []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Attempts []PassAttempt `json:"attempts,omitempty" yaml:"attempts,omitempty"`
}

// Method returns the detection method of the accepted pass.
// Returns an empty string for an empty result.
func (r *SegmentationResult) Method() DetectionMethod {
	if r == nil || len(r.Chapters) == 0 {
		return ""
	}
	return r.Chapters[0].DetectionMethod
}

// Keyword is a single term returned by keyword extraction.
type Keyword struct {
	Term  string  `json:"term" yaml:"term"`
	Score float64 `json:"score" yaml:"score"`
}
