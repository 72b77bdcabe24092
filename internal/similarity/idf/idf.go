// Package idf computes smoothed inverse document frequency weights over the
// documents of a single comparison.
package idf

import (
	"math"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/termfreq"
)

// Weights holds one idf value per vocabulary index.
type Weights []float64

// Compute derives idf weights from the term-frequency vectors of every
// document in the comparison, in vocabulary order.
func Compute(vectors ...termfreq.Vector) Weights {
	df := termfreq.DocumentFrequency(vectors...)
	weights := make(Weights, len(df))
	for i, docFreq := range df {
		weights[i] = computeIDF(int64(len(vectors)), int64(docFreq))
	}
	return weights
}

// computeIDF is ln((1+N)/(1+df)) + 1. With 0 <= df <= N the log argument is
// at least 1, so every weight is finite and >= 1, including for terms that
// occur in all documents.
func computeIDF(totalDocs int64, docFreq int64) float64 {
	numerator := float64(totalDocs) + 1
	denominator := float64(docFreq) + 1
	return math.Log(numerator/denominator) + 1
}
