package vectorizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/tokenizer"
)

var tok = tokenizer.NewWordTokenizer(tokenizer.DefaultOptions())

func TestFitTransform(t *testing.T) {
	model := FitTransform(
		tok.Tokenize("the cat sat on the mat"),
		tok.Tokenize("the cat sat on the rug"),
	)

	require.Len(t, model.Vectors, 2)
	assert.Equal(t, 6, model.Vocabulary.Len())
	for _, vec := range model.Vectors {
		assert.Len(t, vec, model.Vocabulary.Len())
	}

	unique := math.Log(1.5) + 1
	assert.Equal(t, Vector{2, 1, 1, 1, unique, 0}, model.Vectors[0])
	assert.Equal(t, Vector{2, 1, 1, 1, 0, unique}, model.Vectors[1])
}

func TestFitTransform_EmptyDocument(t *testing.T) {
	model := FitTransform(tok.Tokenize(""), tok.Tokenize("anything"))

	require.Len(t, model.Vectors, 2)
	assert.Equal(t, Vector{0}, model.Vectors[0])
	assert.Equal(t, Vector{math.Log(1.5) + 1}, model.Vectors[1])
}

func TestFitTransform_BothEmpty(t *testing.T) {
	model := FitTransform(tok.Tokenize(""), tok.Tokenize("  "))

	assert.Zero(t, model.Vocabulary.Len())
	assert.Equal(t, []Vector{{}, {}}, model.Vectors)
}

func TestFitTransform_NotReusedAcrossPairs(t *testing.T) {
	first := FitTransform(tok.Tokenize("alpha beta"), tok.Tokenize("alpha gamma"))
	second := FitTransform(tok.Tokenize("delta"), tok.Tokenize("delta"))

	assert.Equal(t, 3, first.Vocabulary.Len())
	assert.Equal(t, 1, second.Vocabulary.Len())
	assert.Equal(t, []string{"delta"}, second.Vocabulary.Terms())
}
