package segment

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jackzampolin/folio/internal/types"
)

// KeywordExtractor ranks the terms of a text. Implementations must tolerate
// any input; an empty result is handled by falling back to a generic title.
type KeywordExtractor interface {
	ExtractKeywords(text string, topN int) []types.Keyword
}

// titler names chapters that have no explicit heading.
type titler struct {
	keywords KeywordExtractor
}

// title returns the title-cased top keyword of the chapter's text, or
// "Section n" when extraction yields nothing.
func (t titler) title(pages []types.Page, n int) string {
	if t.keywords != nil {
		var b strings.Builder
		for _, p := range pages {
			b.WriteString(p.Text)
			b.WriteByte('\n')
		}
		if kws := t.keywords.ExtractKeywords(b.String(), 1); len(kws) > 0 && kws[0].Term != "" {
			// Casers are stateful; build one per call so titler stays shareable.
			return cases.Title(language.English).String(kws[0].Term)
		}
	}
	return fmt.Sprintf("Section %d", n)
}

// pagesIn returns the sub-slice of pages numbered [start, end]. pages must be
// contiguous and start at first.
func pagesIn(pages []types.Page, first, start, end int) []types.Page {
	return pages[start-first : end-first+1]
}
