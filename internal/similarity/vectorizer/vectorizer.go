// Package vectorizer fits a TF-IDF model on the documents of one comparison
// and transforms each of them into a weighted vector.
package vectorizer

import (
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/idf"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/termfreq"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/vocabulary"
)

// Vector is a TF-IDF weighted vector aligned to the model vocabulary.
type Vector []float64

// Model is the result of fitting on a document set. Vocabulary and IDF are
// specific to that set and are never reused for other documents.
type Model struct {
	Vocabulary  vocabulary.Vocabulary
	IDF         idf.Weights
	Frequencies []termfreq.Vector
	Vectors     []Vector
}

// FitTransform builds the vocabulary and idf weights from docs and returns
// one weighted vector per document, in argument order. Every vector has
// Vocabulary.Len() entries.
func FitTransform(docs ...[]tokenizer.Token) Model {
	vocab := vocabulary.Build(docs...)
	freqs := make([]termfreq.Vector, len(docs))
	for i, tokens := range docs {
		freqs[i] = termfreq.Count(tokens, vocab)
	}
	weights := idf.Compute(freqs...)
	vectors := make([]Vector, len(freqs))
	for i, tf := range freqs {
		vectors[i] = weigh(tf, weights)
	}
	return Model{
		Vocabulary:  vocab,
		IDF:         weights,
		Frequencies: freqs,
		Vectors:     vectors,
	}
}

func weigh(tf termfreq.Vector, weights idf.Weights) Vector {
	vec := make(Vector, len(tf))
	for i, count := range tf {
		if count == 0 {
			continue
		}
		vec[i] = float64(count) * weights[i]
	}
	return vec
}
