// Package ingest loads book pages from PDF files, page JSON documents, or
// directories of per-page text files.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jackzampolin/folio/internal/types"
)

var (
	// ErrUnsupported is returned for paths that are not a PDF, a JSON page
	// document, or a directory of page files.
	ErrUnsupported = errors.New("unsupported document")

	// ErrInvalidDocument is returned when a document is readable but
	// malformed or empty.
	ErrInvalidDocument = errors.New("invalid document")
)

// Document is a loaded book ready for segmentation.
type Document struct {
	ID     string       `json:"id" yaml:"id"`
	Source string       `json:"source" yaml:"source"`
	Title  string       `json:"title" yaml:"title"`
	Author string       `json:"author,omitempty" yaml:"author,omitempty"`
	Pages  []types.Page `json:"-" yaml:"-"`
}

// PageCount returns the number of loaded pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Options configures loading.
type Options struct {
	Logger *slog.Logger // Optional logger for progress updates
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Supported reports whether path looks like a loadable document.
func Supported(path string) bool {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".json":
		return true
	}
	return false
}

// Load reads the document at path, dispatching on its type.
func Load(ctx context.Context, path string, opts Options) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("document not found: %s: %w", path, err)
	}

	var doc *Document
	switch {
	case info.IsDir():
		doc, err = LoadDir(ctx, path, opts)
	case strings.EqualFold(filepath.Ext(path), ".pdf"):
		doc, err = LoadPDFs(ctx, []string{path}, opts)
	case strings.EqualFold(filepath.Ext(path), ".json"):
		doc, err = LoadJSON(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	if err != nil {
		return nil, err
	}

	opts.logger().Debug("document loaded", "source", doc.Source, "id", doc.ID, "pages", doc.PageCount())
	return doc, nil
}

func newDocument(source, title string, pages []types.Page) *Document {
	return &Document{
		ID:     uuid.New().String(),
		Source: source,
		Title:  title,
		Pages:  pages,
	}
}

// sortPDFsByNumber sorts PDF paths by their numeric suffix.
// e.g., ["book-2.pdf", "book-1.pdf", "book-10.pdf"] -> ["book-1.pdf", "book-2.pdf", "book-10.pdf"]
func sortPDFsByNumber(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)

	re := regexp.MustCompile(`-(\d+)\.pdf$`)

	sort.Slice(sorted, func(i, j int) bool {
		mi := re.FindStringSubmatch(sorted[i])
		mj := re.FindStringSubmatch(sorted[j])

		// If both have numbers, sort numerically
		if len(mi) > 1 && len(mj) > 1 {
			ni, _ := strconv.Atoi(mi[1])
			nj, _ := strconv.Atoi(mj[1])
			return ni < nj
		}

		// Files without numbers come first
		if len(mi) > 1 {
			return false
		}
		if len(mj) > 1 {
			return true
		}

		return sorted[i] < sorted[j]
	})

	return sorted
}

// deriveTitle extracts a title from a document filename.
// e.g., "crusade-europe.pdf" -> "crusade-europe"
// e.g., "my-book-1.pdf" -> "my-book"
func deriveTitle(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	re := regexp.MustCompile(`-\d+$`)
	return re.ReplaceAllString(name, "")
}
