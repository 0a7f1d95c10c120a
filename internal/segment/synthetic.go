package segment

import (
	"math"

	"github.com/jackzampolin/folio/internal/types"
)

// SyntheticSegmenter partitions pages into near-equal chunks without
// looking at their content.
type SyntheticSegmenter struct {
	cfg    Config
	titler titler
}

// NewSyntheticSegmenter returns a Pass C segmenter.
func NewSyntheticSegmenter(cfg Config, keywords KeywordExtractor) *SyntheticSegmenter {
	return &SyntheticSegmenter{cfg: cfg, titler: titler{keywords: keywords}}
}

// ChapterCount returns how many chapters total pages are split into:
// round(total/TargetChapterPages) clamped to [MinChapters, MaxChapters],
// lowered when chunks would fall below MinChapterPages, and never more
// than total.
func (s *SyntheticSegmenter) ChapterCount(total int) int {
	n := int(math.Round(float64(total) / float64(s.cfg.TargetChapterPages)))
	n = clamp(n, s.cfg.MinChapters, s.cfg.MaxChapters)
	if total/n < s.cfg.MinChapterPages {
		n = max(total/s.cfg.MinChapterPages, s.cfg.MinChapters)
	}
	return min(n, total)
}

// Segment splits contiguous pages into ChapterCount chunks whose sizes differ
// by at most one page; larger chunks come first. When equal chunks would be
// shorter than MinChapterPages but (n-1) full chunks still fit, every chunk
// but the last gets exactly MinChapterPages and the last takes the rest.
func (s *SyntheticSegmenter) Segment(pages []types.Page) []types.Chapter {
	total := len(pages)
	n := s.ChapterCount(total)
	if n < 1 {
		return nil
	}
	first := pages[0].PageNumber
	sizes := s.chunkSizes(total, n)

	chapters := make([]types.Chapter, 0, n)
	start := first
	for i, size := range sizes {
		end := start + size - 1
		chapters = append(chapters, types.Chapter{
			Number:          i + 1,
			Title:           s.titler.title(pagesIn(pages, first, start, end), i+1),
			StartPage:       start,
			EndPage:         end,
			DetectionMethod: types.MethodSynthetic,
		})
		start = end + 1
	}
	return chapters
}

func (s *SyntheticSegmenter) chunkSizes(total, n int) []int {
	sizes := make([]int, n)
	minPages := s.cfg.MinChapterPages
	if n > 1 && total/n < minPages && (n-1)*minPages < total {
		for i := range sizes[:n-1] {
			sizes[i] = minPages
		}
		sizes[n-1] = total - (n-1)*minPages
		return sizes
	}

	base, extra := total/n, total%n
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
