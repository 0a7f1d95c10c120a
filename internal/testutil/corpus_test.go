package testutil

import (
	"os"
	"strings"
	"testing"
)

func TestWithHeadings(t *testing.T) {
	pages := WithHeadings(UniformPages(10), map[int]string{1: "Intro", 6: "Middle"})

	if !strings.HasPrefix(pages[0].Text, "Chapter 1: Intro\n") {
		t.Errorf("page 1: unexpected text %q", pages[0].Text[:30])
	}
	if !strings.HasPrefix(pages[5].Text, "Chapter 2: Middle\n") {
		t.Errorf("page 6: unexpected text %q", pages[5].Text[:30])
	}
	if strings.HasPrefix(pages[1].Text, "Chapter") {
		t.Error("page 2 should have no heading")
	}
}

func TestTwoTopicPages(t *testing.T) {
	pages := TwoTopicPages(10, 4)
	if len(pages) != 10 || pages[9].PageNumber != 10 {
		t.Fatalf("unexpected pages: %d", len(pages))
	}
	if !strings.Contains(pages[3].Text, "routing") || !strings.Contains(pages[4].Text, "Sourdough") {
		t.Error("topics split at the wrong page")
	}
}

func TestWriteJSONBook(t *testing.T) {
	path := WriteJSONBook(t, t.TempDir(), "book.json", UniformPages(2))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"page_number":2`) {
		t.Errorf("unexpected json: %s", data)
	}
}
