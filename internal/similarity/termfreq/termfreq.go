// Package termfreq counts raw term occurrences of one document against a
// shared vocabulary.
package termfreq

import (
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/vocabulary"
)

// Vector holds one raw count per vocabulary index. Absent terms are 0.
type Vector []int

// Count returns the term frequencies of tokens. Tokens outside vocab are
// ignored.
func Count(tokens []tokenizer.Token, vocab vocabulary.Vocabulary) Vector {
	counts := make(Vector, vocab.Len())
	for _, tok := range tokens {
		if i, ok := vocab.Index(tok.Term); ok {
			counts[i]++
		}
	}
	return counts
}

// Total is the number of counted tokens.
func (v Vector) Total() int {
	total := 0
	for _, c := range v {
		total += c
	}
	return total
}

// DocumentFrequency returns, per vocabulary index, how many of vectors have a
// non-zero count. All vectors must share one vocabulary.
func DocumentFrequency(vectors ...Vector) []int {
	if len(vectors) == 0 {
		return nil
	}
	df := make([]int, len(vectors[0]))
	for _, vec := range vectors {
		for i, c := range vec {
			if c > 0 {
				df[i]++
			}
		}
	}
	return df
}
