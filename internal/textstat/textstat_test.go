package textstat

import (
	"math"
	"strings"
	"testing"
)

func TestTokenizer_Tokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string // surfaces
	}{
		{
			name:     "drops stop words and short tokens",
			input:    "The cat is on the mat with a hat",
			expected: []string{"cat", "mat", "hat"},
		},
		{
			name:     "drops numbers and punctuation",
			input:    "Version 2024, released: routing-tables!",
			expected: []string{"version", "released", "routing", "tables"},
		},
		{
			name:     "drops page furniture",
			input:    "Chapter 3 Page 12 kernels",
			expected: []string{"kernels"},
		},
		{
			name:     "empty text",
			input:    "",
			expected: nil,
		},
	}

	var tok Tokenizer
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tok.Tokens(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens (%v), want %d", len(tokens), tokens, len(tt.expected))
			}
			for i, want := range tt.expected {
				if tokens[i].Surface != want {
					t.Errorf("token %d: got %q, want %q", i, tokens[i].Surface, want)
				}
			}
		})
	}
}

func TestTokenizer_StemsShareRoot(t *testing.T) {
	var tok Tokenizer
	stems := tok.Stems("routing routed routes")
	if len(stems) != 3 {
		t.Fatalf("expected 3 stems, got %v", stems)
	}
	for _, s := range stems {
		if s != stems[0] {
			t.Errorf("expected shared stem, got %v", stems)
		}
	}
}

func TestCosine(t *testing.T) {
	a := SparseVector{{Index: 0, Weight: 1}}
	b := SparseVector{{Index: 1, Weight: 1}}

	if got := Cosine(a, a); math.Abs(got-1) > 1e-9 {
		t.Errorf("identical vectors: got %f, want 1", got)
	}
	if got := Cosine(a, b); got != 0 {
		t.Errorf("orthogonal vectors: got %f, want 0", got)
	}
	if got := Cosine(a, nil); got != 0 {
		t.Errorf("zero vector: got %f, want 0", got)
	}
}

func TestVectorizer_FitTransform(t *testing.T) {
	texts := []string{
		"packets routing network routers packets",
		"routers forward network packets",
		"gardening soil compost tomatoes",
	}

	v := NewVectorizer()
	vecs := v.FitTransform(texts)
	if len(vecs) != len(texts) {
		t.Fatalf("expected %d vectors, got %d", len(texts), len(vecs))
	}
	if v.VocabularySize() == 0 {
		t.Fatal("expected non-empty vocabulary")
	}

	for i, vec := range vecs {
		if n := vec.Norm(); math.Abs(n-1) > 1e-9 {
			t.Errorf("vector %d: expected unit norm, got %f", i, n)
		}
		for j := 1; j < len(vec); j++ {
			if vec[j-1].Index >= vec[j].Index {
				t.Fatalf("vector %d not sorted by index", i)
			}
		}
	}

	related := Cosine(vecs[0], vecs[1])
	unrelated := Cosine(vecs[0], vecs[2])
	if related <= unrelated {
		t.Errorf("expected related texts to be more similar: related=%f unrelated=%f", related, unrelated)
	}
	if unrelated != 0 {
		t.Errorf("expected disjoint vocabularies to have similarity 0, got %f", unrelated)
	}
}

func TestVectorizer_FreshVocabularyPerInstance(t *testing.T) {
	first := NewVectorizer()
	first.FitTransform([]string{"compilers parsers lexers"})

	second := NewVectorizer()
	second.FitTransform([]string{"gardens"})

	if second.VocabularySize() != 1 {
		t.Errorf("expected vocabulary of 1, got %d", second.VocabularySize())
	}
	if first.VocabularySize() != 3 {
		t.Errorf("expected vocabulary of 3, got %d", first.VocabularySize())
	}
}

func TestVectorizer_EmptyText(t *testing.T) {
	v := NewVectorizer()
	vecs := v.FitTransform([]string{"", "networks"})
	if len(vecs[0]) != 0 {
		t.Errorf("expected empty vector for empty text, got %v", vecs[0])
	}
	if Cosine(vecs[0], vecs[1]) != 0 {
		t.Error("expected zero similarity against empty text")
	}
}

func TestKeywordExtractor_ExtractKeywords(t *testing.T) {
	k := NewKeywordExtractor()

	t.Run("most frequent term first", func(t *testing.T) {
		text := strings.Repeat("kubernetes cluster ", 5) + "cluster cluster scheduling"
		kws := k.ExtractKeywords(text, 2)
		if len(kws) != 2 {
			t.Fatalf("expected 2 keywords, got %v", kws)
		}
		if kws[0].Term != "cluster" {
			t.Errorf("expected cluster first, got %q", kws[0].Term)
		}
		if kws[0].Score < kws[1].Score {
			t.Errorf("expected descending scores, got %v", kws)
		}
	})

	t.Run("reports surface form", func(t *testing.T) {
		kws := k.ExtractKeywords("databases databases database", 1)
		if len(kws) != 1 || kws[0].Term != "databases" {
			t.Errorf("expected databases, got %v", kws)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if kws := k.ExtractKeywords("the and of", 1); kws != nil {
			t.Errorf("expected nil, got %v", kws)
		}
	})

	t.Run("non-positive topN", func(t *testing.T) {
		if kws := k.ExtractKeywords("networks", 0); kws != nil {
			t.Errorf("expected nil, got %v", kws)
		}
	})

	t.Run("deterministic ties", func(t *testing.T) {
		a := k.ExtractKeywords("zebra apple", 2)
		b := k.ExtractKeywords("apple zebra", 2)
		if a[0].Term != b[0].Term || a[1].Term != b[1].Term {
			t.Errorf("expected identical ranking, got %v and %v", a, b)
		}
	})
}
