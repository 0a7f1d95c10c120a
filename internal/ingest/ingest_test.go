package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestSortPDFsByNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "already sorted",
			input:    []string{"book-1.pdf", "book-2.pdf", "book-3.pdf"},
			expected: []string{"book-1.pdf", "book-2.pdf", "book-3.pdf"},
		},
		{
			name:     "reverse order",
			input:    []string{"book-3.pdf", "book-2.pdf", "book-1.pdf"},
			expected: []string{"book-1.pdf", "book-2.pdf", "book-3.pdf"},
		},
		{
			name:     "mixed with double digits",
			input:    []string{"book-10.pdf", "book-2.pdf", "book-1.pdf"},
			expected: []string{"book-1.pdf", "book-2.pdf", "book-10.pdf"},
		},
		{
			name:     "single file without number",
			input:    []string{"book.pdf"},
			expected: []string{"book.pdf"},
		},
		{
			name:     "numbered and unnumbered",
			input:    []string{"book-2.pdf", "book.pdf", "book-1.pdf"},
			expected: []string{"book.pdf", "book-1.pdf", "book-2.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sortPDFsByNumber(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("length mismatch: got %d, want %d", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("index %d: got %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/path/to/crusade-europe.pdf", "crusade-europe"},
		{"/path/to/my-book-1.pdf", "my-book"},
		{"/path/to/my-book-10.pdf", "my-book"},
		{"simple.pdf", "simple"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := deriveTitle(tt.input)
			if result != tt.expected {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPages int
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "bare array",
			input:     `[{"page_number":1,"text":"one"},{"page_number":2,"text":"two"}]`,
			wantPages: 2,
		},
		{
			name:      "object form",
			input:     `{"title":"Networks","author":"A. Author","pages":[{"page_number":1,"text":"one"}]}`,
			wantPages: 1,
			wantTitle: "Networks",
		},
		{name: "not json", input: `{pages`, wantErr: true},
		{name: "empty array", input: `[]`, wantErr: true},
		{name: "missing text", input: `[{"page_number":1}]`, wantErr: true},
		{name: "zero page number", input: `[{"page_number":0,"text":"x"}]`, wantErr: true},
		{name: "string page number", input: `[{"page_number":"1","text":"x"}]`, wantErr: true},
		{name: "unknown page field", input: `[{"page_number":1,"text":"x","image":"p.png"}]`, wantErr: true},
		{name: "object without pages", input: `{"title":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseJSON([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDocument) {
					t.Fatalf("expected ErrInvalidDocument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.PageCount() != tt.wantPages {
				t.Errorf("got %d pages, want %d", doc.PageCount(), tt.wantPages)
			}
			if doc.Title != tt.wantTitle {
				t.Errorf("got title %q, want %q", doc.Title, tt.wantTitle)
			}
			if doc.ID == "" {
				t.Error("expected a document ID")
			}
		})
	}
}

func TestLoadJSON_TitleFromFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field-guide-2.json")
	writeFile(t, path, `[{"page_number":1,"text":"one"}]`)

	doc, err := LoadJSON(path, Options{})
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if doc.Title != "field-guide" {
		t.Errorf("got title %q, want %q", doc.Title, "field-guide")
	}
	if doc.Source != path {
		t.Errorf("got source %q, want %q", doc.Source, path)
	}
}

func TestLoadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-book")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for i := 3; i >= 1; i-- {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("page_%04d.txt", i)), fmt.Sprintf("text of page %d", i))
	}
	writeFile(t, filepath.Join(dir, "page_0004.md"), "# markdown page")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "page_0005.png"), "ignored")

	doc, err := LoadDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if doc.PageCount() != 4 {
		t.Fatalf("got %d pages, want 4", doc.PageCount())
	}
	for i, p := range doc.Pages {
		if p.PageNumber != i+1 {
			t.Errorf("index %d: got page %d", i, p.PageNumber)
		}
	}
	if doc.Pages[0].Text != "text of page 1" {
		t.Errorf("unexpected text %q", doc.Pages[0].Text)
	}
	if doc.Title != "my-book" {
		t.Errorf("got title %q, want my-book", doc.Title)
	}
}

func TestLoadDir_Empty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.txt"), "no pages here")

	if _, err := LoadDir(context.Background(), dir, Options{}); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestLoad_Dispatch(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "book.json")
	writeFile(t, jsonPath, `[{"page_number":1,"text":"one"}]`)
	txtPath := filepath.Join(dir, "book.epub")
	writeFile(t, txtPath, "not supported")

	if _, err := Load(context.Background(), jsonPath, Options{}); err != nil {
		t.Errorf("json: unexpected error: %v", err)
	}
	if _, err := Load(context.Background(), txtPath, Options{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("epub: expected ErrUnsupported, got %v", err)
	}
	if _, err := Load(context.Background(), filepath.Join(dir, "missing.pdf"), Options{}); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestLoadPDFs_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	writeFile(t, path, "this is not a pdf")

	if _, err := LoadPDFs(context.Background(), []string{path}, Options{}); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestSupported(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		path string
		want bool
	}{
		{dir, true},
		{"book.pdf", true},
		{"book.PDF", true},
		{"pages.json", true},
		{"book.epub", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
