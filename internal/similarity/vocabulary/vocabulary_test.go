package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/tokenizer"
)

func tokens(text string) []tokenizer.Token {
	return tokenizer.NewWordTokenizer(tokenizer.DefaultOptions()).Tokenize(text)
}

func TestBuild_FirstSeenOrder(t *testing.T) {
	v := Build(tokens("the cat sat on the mat"), tokens("the cat sat on the rug"))

	assert.Equal(t, []string{"the", "cat", "sat", "on", "mat", "rug"}, v.Terms())
	assert.Equal(t, 6, v.Len())

	i, ok := v.Index("rug")
	assert.True(t, ok)
	assert.Equal(t, 5, i)

	_, ok = v.Index("dog")
	assert.False(t, ok)
}

func TestBuild_OrderDependsOnDocumentOrder(t *testing.T) {
	ab := Build(tokens("alpha beta"), tokens("gamma alpha"))
	ba := Build(tokens("gamma alpha"), tokens("alpha beta"))

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, ab.Terms())
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, ba.Terms())
	assert.ElementsMatch(t, ab.Terms(), ba.Terms())
}

func TestBuild_Empty(t *testing.T) {
	v := Build(tokens(""), tokens(""))
	assert.Zero(t, v.Len())
	assert.Empty(t, v.Terms())

	v = Build()
	assert.Zero(t, v.Len())
}

func TestTerms_ReturnsCopy(t *testing.T) {
	v := Build(tokens("alpha beta"))
	terms := v.Terms()
	terms[0] = "mutated"
	assert.Equal(t, []string{"alpha", "beta"}, v.Terms())
}
