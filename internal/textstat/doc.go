// Package textstat provides the small statistical text toolkit used for
// chapter segmentation: tokenization with English stop-word removal and
// stemming, TF-IDF vectorization, cosine similarity, and frequency-based
// keyword extraction.
//
// Nothing in this package holds state across calls. A Vectorizer is fitted
// to one set of texts and discarded, so vocabularies are never shared between
// documents.
package textstat
