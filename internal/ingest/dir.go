package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/jackzampolin/folio/internal/types"
)

var pageFileRe = regexp.MustCompile(`(?i)^page[_-]?(\d+)\.(txt|md)$`)

// LoadDir reads a directory of per-page text files named page_NNNN.txt or
// page_NNNN.md. The number in the file name is the page number. Other files
// are ignored; a directory with no page files is invalid.
func LoadDir(ctx context.Context, dir string, opts Options) (*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var pages []types.Page
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := pageFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: page number in %s: %v", ErrInvalidDocument, e.Name(), err)
		}
		text, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		pages = append(pages, types.Page{PageNumber: num, Text: string(text)})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no page files in %s", ErrInvalidDocument, dir)
	}
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})

	opts.logger().Debug("loaded page directory", "dir", dir, "pages", len(pages))
	return newDocument(dir, filepath.Base(filepath.Clean(dir)), pages), nil
}
