// Package similarity scores the lexical overlap of an original document and
// a candidate document with a TF-IDF vector-space model and cosine
// similarity.
//
// Every comparison fits its own vocabulary and idf weights; the only state
// shared between comparisons is the read-only Tokenizer.
package similarity

import (
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/cosine"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/vectorizer"
)

// Document is raw text together with its token sequence.
type Document struct {
	Text   string
	Tokens []tokenizer.Token
}

// Result is the outcome of one comparison.
type Result struct {
	Score          float64 `json:"score"`
	Rounded        float64 `json:"rounded"`
	VocabularySize int     `json:"vocabulary_size"`
	OriginalTerms  int     `json:"original_terms"`
	CandidateTerms int     `json:"candidate_terms"`
}

// Display renders the line written to result artifacts.
func (r Result) Display() string {
	return fmt.Sprintf("Similarity score: %s", cosine.Format(r.Score))
}

// Engine runs the comparison pipeline with an injected tokenizer.
type Engine struct {
	tokenizer tokenizer.Tokenizer
}

func NewEngine(tok tokenizer.Tokenizer) *Engine {
	return &Engine{tokenizer: tok}
}

// NewDocument tokenizes text.
func (e *Engine) NewDocument(text string) Document {
	return Document{
		Text:   text,
		Tokens: e.tokenizer.Tokenize(text),
	}
}

// Compare scores candidate against original. Empty or fully disjoint inputs
// score 0; the call never fails.
func (e *Engine) Compare(original, candidate string) Result {
	return e.CompareDocuments(e.NewDocument(original), e.NewDocument(candidate))
}

// CompareDocuments scores two already tokenized documents. Extra documents
// join the idf corpus but are not scored.
func (e *Engine) CompareDocuments(original, candidate Document, corpus ...Document) Result {
	docs := make([][]tokenizer.Token, 0, 2+len(corpus))
	docs = append(docs, original.Tokens, candidate.Tokens)
	for _, d := range corpus {
		docs = append(docs, d.Tokens)
	}
	model := vectorizer.FitTransform(docs...)

	// FitTransform aligns every vector to one vocabulary, so the
	// dimensions always match.
	score, err := cosine.Similarity(model.Vectors[0], model.Vectors[1])
	if err != nil {
		score = 0
	}
	return Result{
		Score:          score,
		Rounded:        cosine.Round(score),
		VocabularySize: model.Vocabulary.Len(),
		OriginalTerms:  len(original.Tokens),
		CandidateTerms: len(candidate.Tokens),
	}
}
