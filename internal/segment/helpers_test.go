package segment

import (
	"github.com/jackzampolin/folio/internal/testutil"
	"github.com/jackzampolin/folio/internal/types"
)

const (
	routingText = testutil.RoutingText
	breadText   = testutil.BreadText
	loremText   = testutil.LoremText
)

var (
	quietLogger   = testutil.QuietLogger
	makePages     = testutil.MakePages
	uniformPages  = testutil.UniformPages
	twoTopicPages = testutil.TwoTopicPages
	withHeadings  = testutil.WithHeadings
)

func newTestSegmenter(cfg *Config) (*Segmenter, error) {
	return New(Options{Config: cfg, Logger: quietLogger()})
}

// checkInvariants fails the test when chapters break any result invariant.
func checkInvariants(t interface {
	Helper()
	Fatalf(string, ...any)
}, chapters []types.Chapter, first, last int, cfg Config) {
	t.Helper()
	if err := NewValidator(cfg).Validate(chapters, first, last); err != nil {
		t.Fatalf("result violates invariants: %v\nchapters: %+v", err, chapters)
	}
}

func spans(chapters []types.Chapter) [][2]int {
	out := make([][2]int, len(chapters))
	for i, ch := range chapters {
		out[i] = [2]int{ch.StartPage, ch.EndPage}
	}
	return out
}
