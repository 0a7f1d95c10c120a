package batch

import (
	"io"

	"github.com/jackzampolin/folio/internal/api"
	"github.com/jackzampolin/folio/internal/types"
)

// Report is the outcome of segmenting one document.
type Report struct {
	RunID      string                    `json:"run_id" yaml:"run_id"`
	DocumentID string                    `json:"document_id,omitempty" yaml:"document_id,omitempty"`
	Source     string                    `json:"source" yaml:"source"`
	Title      string                    `json:"title,omitempty" yaml:"title,omitempty"`
	PageCount  int                       `json:"page_count" yaml:"page_count"`
	Result     *types.SegmentationResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error      string                    `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType  string                    `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	Seconds    float64                   `json:"seconds" yaml:"seconds"`
}

// OK reports whether the document was segmented.
func (r Report) OK() bool {
	return r.Error == "" && r.Result != nil
}

// RenderText renders the chapter table, or a failure line.
func (r Report) RenderText(w io.Writer) error {
	if !r.OK() {
		return api.FormatFailure(w, r.Source, r.Error)
	}
	title := r.Title
	if title == "" {
		title = r.Source
	}
	return api.FormatChapters(w, title, r.PageCount, r.Result)
}

// Reports renders as a sequence of reports.
type Reports []Report

// RenderText renders each report in order.
func (rs Reports) RenderText(w io.Writer) error {
	for _, r := range rs {
		if err := r.RenderText(w); err != nil {
			return err
		}
	}
	return nil
}

// Failed returns the number of reports that carry an error.
func (rs Reports) Failed() int {
	n := 0
	for _, r := range rs {
		if !r.OK() {
			n++
		}
	}
	return n
}
