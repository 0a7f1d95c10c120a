package textstat

import (
	"sort"
	"unicode/utf8"

	"github.com/jackzampolin/folio/internal/types"
)

// KeywordExtractor ranks the content words of a single text.
// Scores are relative term frequencies with a mild boost for longer words,
// which favours domain terms over short generic ones.
type KeywordExtractor struct {
	tokenizer Tokenizer
}

// NewKeywordExtractor returns a ready-to-use extractor.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

type stemStats struct {
	stem     string
	count    int
	surfaces map[string]int
}

// ExtractKeywords returns up to topN keywords of text, best first.
// Each keyword's Term is the most frequent surface form of its stem.
// Returns nil for empty text or topN <= 0.
func (k *KeywordExtractor) ExtractKeywords(text string, topN int) []types.Keyword {
	if topN <= 0 {
		return nil
	}
	tokens := k.tokenizer.Tokens(text)
	if len(tokens) == 0 {
		return nil
	}

	byStem := make(map[string]*stemStats)
	for _, tok := range tokens {
		st, ok := byStem[tok.Stem]
		if !ok {
			st = &stemStats{stem: tok.Stem, surfaces: make(map[string]int)}
			byStem[tok.Stem] = st
		}
		st.count++
		st.surfaces[tok.Surface]++
	}

	type scored struct {
		term  string
		score float64
	}
	total := float64(len(tokens))
	ranked := make([]scored, 0, len(byStem))
	for _, st := range byStem {
		term := bestSurface(st.surfaces)
		boost := 1 + float64(min(utf8.RuneCountInString(term), 12))/12
		ranked = append(ranked, scored{
			term:  term,
			score: float64(st.count) / total * boost,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].term < ranked[j].term
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	out := make([]types.Keyword, topN)
	for i := 0; i < topN; i++ {
		out[i] = types.Keyword{Term: ranked[i].term, Score: ranked[i].score}
	}
	return out
}

// bestSurface picks the most frequent surface form, breaking ties
// lexicographically so results are deterministic.
func bestSurface(surfaces map[string]int) string {
	best, bestCount := "", -1
	for s, c := range surfaces {
		if c > bestCount || (c == bestCount && s < best) {
			best, bestCount = s, c
		}
	}
	return best
}
