// Package testutil provides page corpora and helpers shared by package tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackzampolin/folio/internal/types"
)

// Topic sentences with disjoint vocabularies.
const (
	RoutingText = "Packet routing across network routers relies on routing tables, " +
		"forwarding rules, and link state advertisements between neighbouring routers. "
	BreadText = "Sourdough bread needs flour, water, salt, and a lively starter culture " +
		"kept warm while the dough ferments and rises overnight. "
	LoremText = "Lorem ipsum dolor sit amet consectetur adipiscing elit sed eiusmod " +
		"tempor incididunt labore dolore magna aliqua. "
)

// TestingT is a subset of testing.T used by the file helpers.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// QuietLogger returns a logger that discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MakePages returns n pages numbered from 1 with text from fn.
func MakePages(n int, fn func(page int) string) []types.Page {
	pages := make([]types.Page, n)
	for i := range pages {
		pages[i] = types.Page{PageNumber: i + 1, Text: fn(i + 1)}
	}
	return pages
}

// UniformPages returns n pages of identical filler text numbered from 1.
func UniformPages(n int) []types.Page {
	return MakePages(n, func(int) string { return strings.Repeat(LoremText, 5) })
}

// TwoTopicPages returns pages 1..split about routing and split+1..n about bread.
func TwoTopicPages(n, split int) []types.Page {
	return MakePages(n, func(p int) string {
		if p <= split {
			return strings.Repeat(RoutingText, 5)
		}
		return strings.Repeat(BreadText, 5)
	})
}

// WithHeadings returns a copy of pages with "Chapter N: title" lines
// prefixed to the given page numbers, numbered in page order.
func WithHeadings(pages []types.Page, headings map[int]string) []types.Page {
	out := make([]types.Page, len(pages))
	copy(out, pages)
	n := 0
	for i := range out {
		if title, ok := headings[out[i].PageNumber]; ok {
			n++
			out[i].Text = fmt.Sprintf("Chapter %d: %s\n%s", n, title, out[i].Text)
		}
	}
	return out
}

// WriteJSONBook writes pages as a JSON page document and returns its path.
func WriteJSONBook(t TestingT, dir, name string, pages []types.Page) string {
	t.Helper()
	data, err := json.Marshal(pages)
	if err != nil {
		t.Fatalf("failed to marshal pages: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
