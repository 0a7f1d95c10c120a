package textstat

import (
	"math"
	"sort"
)

// Entry is one non-zero weight of a sparse vector.
type Entry struct {
	Index  int
	Weight float64
}

// SparseVector is a vector stored as entries sorted by Index.
// Sorted storage keeps dot products independent of map iteration order.
type SparseVector []Entry

// Norm returns the L2 norm of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two index-sorted vectors.
func Dot(a, b SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index == b[j].Index:
			sum += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].Index < b[j].Index:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of a and b in [0,1].
// A zero vector has similarity 0 with everything.
func Cosine(a, b SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	sim := Dot(a, b) / (na * nb)
	// TF-IDF weights are non-negative; clamp rounding noise.
	if sim > 1 {
		return 1
	}
	if sim < 0 {
		return 0
	}
	return sim
}

// Vectorizer computes TF-IDF vectors for one set of texts.
// Construct a new Vectorizer per document; it is not safe for concurrent use.
type Vectorizer struct {
	tokenizer Tokenizer
	vocab     map[string]int
	terms     []string
	idf       []float64
}

// NewVectorizer returns an empty vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// FitTransform builds the vocabulary and idf weights from texts and returns
// one L2-normalized TF-IDF vector per text.
//
// idf uses the smoothed form ln((1+n)/(1+df))+1 so terms present in every
// text still carry weight.
func (v *Vectorizer) FitTransform(texts []string) []SparseVector {
	docs := make([][]string, len(texts))
	df := make(map[string]int)
	for i, text := range texts {
		docs[i] = v.tokenizer.Stems(text)
		seen := make(map[string]struct{}, len(docs[i]))
		for _, s := range docs[i] {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			df[s]++
		}
	}

	v.terms = make([]string, 0, len(df))
	for term := range df {
		v.terms = append(v.terms, term)
	}
	sort.Strings(v.terms)

	n := float64(len(texts))
	v.vocab = make(map[string]int, len(v.terms))
	v.idf = make([]float64, len(v.terms))
	for i, term := range v.terms {
		v.vocab[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]SparseVector, len(docs))
	for i, stems := range docs {
		vectors[i] = v.vectorize(stems)
	}
	return vectors
}

// VocabularySize returns the number of distinct terms seen by FitTransform.
func (v *Vectorizer) VocabularySize() int {
	return len(v.terms)
}

// Term returns the vocabulary term at index i.
func (v *Vectorizer) Term(i int) string {
	if i < 0 || i >= len(v.terms) {
		return ""
	}
	return v.terms[i]
}

func (v *Vectorizer) vectorize(stems []string) SparseVector {
	if len(stems) == 0 {
		return nil
	}
	counts := make(map[int]int, len(stems))
	for _, s := range stems {
		if idx, ok := v.vocab[s]; ok {
			counts[idx]++
		}
	}

	vec := make(SparseVector, 0, len(counts))
	for idx, c := range counts {
		vec = append(vec, Entry{Index: idx, Weight: float64(c) * v.idf[idx]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Index < vec[j].Index })

	norm := vec.Norm()
	if norm > 0 {
		for i := range vec {
			vec[i].Weight /= norm
		}
	}
	return vec
}
