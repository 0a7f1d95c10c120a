package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jackzampolin/folio/internal/types"
)

// LoadPDFs extracts page text from one or more PDF parts of the same book.
// Parts are ordered by numeric suffix (book-1.pdf, book-2.pdf) and page
// numbers run on across parts. Pages without extractable text are kept
// with empty text so page numbering stays contiguous.
func LoadPDFs(ctx context.Context, paths []string, opts Options) (*Document, error) {
	log := opts.logger()
	if len(paths) == 0 {
		return nil, fmt.Errorf("no PDF paths provided")
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("PDF not found: %s", p)
		}
	}

	sortedPaths := sortPDFsByNumber(paths)
	log.Info("loading PDF", "parts", len(sortedPaths), "file", filepath.Base(sortedPaths[0]))

	var pages []types.Page
	for i, pdfPath := range sortedPaths {
		log.Debug("extracting PDF text", "file", filepath.Base(pdfPath), "part", i+1, "of", len(sortedPaths))
		partPages, err := extractText(ctx, pdfPath, len(pages), opts)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from %s: %w", pdfPath, err)
		}
		pages = append(pages, partPages...)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages in %s", ErrInvalidDocument, sortedPaths[0])
	}
	return newDocument(strings.Join(sortedPaths, ","), deriveTitle(sortedPaths[0]), pages), nil
}

// pageCount reads the page count with pdfcpu, which validates the file
// structure before text extraction begins.
func pageCount(pdfPath string) (int, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	n, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get page count: %v", ErrInvalidDocument, err)
	}
	return n, nil
}

// extractText returns the pages of one PDF numbered from pageOffset+1.
func extractText(ctx context.Context, pdfPath string, pageOffset int, opts Options) ([]types.Page, error) {
	expected, err := pageCount(pdfPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat PDF: %w", err)
	}
	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create PDF reader: %v", ErrInvalidDocument, err)
	}

	n := reader.NumPage()
	if n != expected {
		opts.logger().Warn("PDF page count mismatch", "file", filepath.Base(pdfPath), "pdfcpu", expected, "reader", n)
	}

	pages := make([]types.Page, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := pageText(reader.Page(i))
		if err != nil {
			opts.logger().Warn("failed to extract text from page", "file", filepath.Base(pdfPath), "page", i, "error", err)
		}
		pages = append(pages, types.Page{PageNumber: pageOffset + i, Text: text})
	}
	return pages, nil
}

// pageText extracts plain text from a page. The reader panics on some
// malformed content streams; that is reported as an error.
func pageText(p pdf.Page) (text string, err error) {
	if p.V.IsNull() {
		return "", nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()
	return p.GetPlainText(nil)
}
