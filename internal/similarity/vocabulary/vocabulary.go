// Package vocabulary builds the ordered, duplicate-free term set shared by
// the documents of one comparison.
package vocabulary

import "github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/tokenizer"

// Vocabulary maps each distinct term to a stable vector index. Terms are
// ordered by first appearance, walking the documents in argument order.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// Build returns the vocabulary of docs. The result does not alias any input.
func Build(docs ...[]tokenizer.Token) Vocabulary {
	v := Vocabulary{index: make(map[string]int)}
	for _, tokens := range docs {
		for _, tok := range tokens {
			if _, seen := v.index[tok.Term]; seen {
				continue
			}
			v.index[tok.Term] = len(v.terms)
			v.terms = append(v.terms, tok.Term)
		}
	}
	return v
}

// Len is the vector dimensionality.
func (v Vocabulary) Len() int {
	return len(v.terms)
}

// Index returns the vector index of term.
func (v Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Terms returns a copy of the terms in index order.
func (v Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}
