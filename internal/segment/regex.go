package segment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jackzampolin/folio/internal/types"
)

// DefaultHeadingPatterns match common chapter headings such as
// "Chapter 1: Introduction", "CHAPTER IV", "Chapter XII - Storage",
// "Chapter Three - Storage", and "Ch. 7 Networking".
//
// Roman numerals must be well formed. Lower or mixed case numerals also need
// a separator or the end of the line after them, so "Chapter did" and
// "Chapter mix" are not headings; upper case numerals may run into the title.
var DefaultHeadingPatterns = []string{
	`^chapter\s+(?P<num>\d+|` + numberWordAlternation + `)\b\s*[:.\-–—]?\s*(?P<title>.*)$`,
	`^chapter\s+(?P<num>` + romanNumeral + `)\s*(?:[:.\-–—]\s*(?P<title>.*))?$`,
	`^chapter\s+(?P<num>(?-i:` + strings.ToUpper(romanNumeral) + `))\s+(?P<title>.*)$`,
	`^ch\.\s*(?P<num>\d+)\b\s*[:.\-–—]?\s*(?P<title>.*)$`,
}

// romanNumeral matches a well-formed roman numeral up to 3999. It also
// matches the empty string; see candidateFromMatch.
const romanNumeral = `m{0,3}(?:cm|cd|d?c{0,3})(?:xc|xl|l?x{0,3})(?:ix|iv|v?i{0,3})`

const (
	// tocMinEntries is the number of distinct headings on one page that marks
	// it as a table of contents rather than a chapter opening.
	tocMinEntries = 3

	// maxTitleRunes bounds titles captured from heading lines.
	maxTitleRunes = 80
)

// Candidate is a heading match: the page a chapter starts on.
type Candidate struct {
	PageNumber    int
	Title         string
	ChapterNumber int // 0 when the heading number could not be parsed
}

// RegexDetector scans pages for chapter headings.
type RegexDetector struct {
	patterns []*regexp.Regexp
}

// NewRegexDetector compiles heading patterns. Patterns are matched
// case-insensitively against each trimmed line and must match at the start of
// the line. An invalid pattern returns an error wrapping ErrConfiguration.
func NewRegexDetector(patterns []string) (*RegexDetector, error) {
	d := &RegexDetector{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: heading pattern %q: %v", ErrConfiguration, p, err)
		}
		d.patterns = append(d.patterns, re)
	}
	return d, nil
}

// Detect returns heading candidates in page order. It never fails; a document
// without headings yields an empty slice.
//
// Only the first heading on a page counts. Pages listing several different
// headings are treated as tables of contents and skipped. Consecutive
// candidates repeating the same chapter number (running headers) collapse to
// the first.
func (d *RegexDetector) Detect(pages []types.Page) []Candidate {
	var candidates []Candidate
	for _, page := range pages {
		matches := d.scanPage(page.Text)
		if len(matches) == 0 || distinctHeadings(matches) >= tocMinEntries {
			continue
		}
		c := matches[0]
		c.PageNumber = page.PageNumber

		if n := len(candidates); n > 0 && c.ChapterNumber != 0 &&
			candidates[n-1].ChapterNumber == c.ChapterNumber {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

func (d *RegexDetector) scanPage(text string) []Candidate {
	var matches []Candidate
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, re := range d.patterns {
			sub := re.FindStringSubmatchIndex(line)
			if sub == nil || sub[0] != 0 {
				continue
			}
			c, ok := candidateFromMatch(re, line, sub)
			if !ok {
				continue
			}
			matches = append(matches, c)
			break
		}
	}
	return matches
}

// candidateFromMatch builds a candidate from one match. A number group that
// took part in the match but captured nothing rejects the line.
func candidateFromMatch(re *regexp.Regexp, line string, sub []int) (Candidate, bool) {
	group := func(i int) string {
		if i <= 0 || 2*i+1 >= len(sub) || sub[2*i] < 0 {
			return ""
		}
		return strings.TrimSpace(line[sub[2*i]:sub[2*i+1]])
	}

	numIdx, titleIdx := re.SubexpIndex("num"), re.SubexpIndex("title")
	if numIdx < 0 && titleIdx < 0 {
		numIdx, titleIdx = 1, 2
	}

	if numIdx > 0 && 2*numIdx+1 < len(sub) && sub[2*numIdx] >= 0 && sub[2*numIdx] == sub[2*numIdx+1] {
		return Candidate{}, false
	}

	return Candidate{
		Title:         truncateRunes(group(titleIdx), maxTitleRunes),
		ChapterNumber: parseChapterNumber(group(numIdx)),
	}, true
}

func distinctHeadings(matches []Candidate) int {
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		key := strconv.Itoa(m.ChapterNumber) + "|" + strings.ToLower(m.Title)
		seen[key] = struct{}{}
	}
	return len(seen)
}

// BuildChapters converts candidates into a chapter list covering [first, last].
// Pages before the first heading fold into the first chapter.
func BuildChapters(candidates []Candidate, first, last int) []types.Chapter {
	chapters := make([]types.Chapter, 0, len(candidates))
	for i, c := range candidates {
		start := c.PageNumber
		if i == 0 {
			start = first
		}
		end := last
		if i+1 < len(candidates) {
			end = candidates[i+1].PageNumber - 1
		}

		title := c.Title
		if title == "" {
			n := c.ChapterNumber
			if n == 0 {
				n = i + 1
			}
			title = fmt.Sprintf("Chapter %d", n)
		}

		chapters = append(chapters, types.Chapter{
			Number:          i + 1,
			Title:           title,
			StartPage:       start,
			EndPage:         end,
			DetectionMethod: types.MethodRegex,
		})
	}
	return chapters
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
