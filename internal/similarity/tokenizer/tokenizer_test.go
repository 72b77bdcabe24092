package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordTokenizer_Tokenize(t *testing.T) {
	tests := map[string]struct {
		opts Options
		text string
		want []string
	}{
		"empty": {
			opts: DefaultOptions(),
			text: "",
			want: []string{},
		},
		"whitespace-only": {
			opts: DefaultOptions(),
			text: " \t\n ",
			want: []string{},
		},
		"keeps-order-and-duplicates": {
			opts: DefaultOptions(),
			text: "the cat sat on the mat",
			want: []string{"the", "cat", "sat", "on", "the", "mat"},
		},
		"punctuation-and-case": {
			opts: DefaultOptions(),
			text: "Hello, WORLD! hello-world",
			want: []string{"hello", "world", "hello", "world"},
		},
		"drops-single-characters": {
			opts: DefaultOptions(),
			text: "a b cd e",
			want: []string{"cd"},
		},
		"only-single-characters-kept": {
			opts: DefaultOptions(),
			text: "a b c",
			want: []string{"a", "b", "c"},
		},
		"only-single-characters-after-stop-words": {
			opts: Options{MinTermLength: 2, StopWords: true},
			text: "the x of y",
			want: []string{"x", "y"},
		},
		"min-length-one-keeps-everything": {
			opts: Options{MinTermLength: 1},
			text: "a b cd",
			want: []string{"a", "b", "cd"},
		},
		"full-width-folded": {
			opts: DefaultOptions(),
			text: "ＡＢＣ abc",
			want: []string{"abc", "abc"},
		},
		"stop-words": {
			opts: Options{MinTermLength: 2, StopWords: true},
			text: "the quick brown fox is on the mat",
			want: []string{"quick", "brown", "fox", "mat"},
		},
		"stemming": {
			opts: Options{MinTermLength: 2, Stem: true},
			text: "running searches",
			want: []string{"runn", "search"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tokens := NewWordTokenizer(tt.opts).Tokenize(tt.text)
			assert.Equal(t, tt.want, Terms(tokens))
		})
	}
}

func TestWordTokenizer_Positions(t *testing.T) {
	tokens := NewWordTokenizer(Options{MinTermLength: 2, StopWords: true}).Tokenize("the fox and the dog")
	require.Len(t, tokens, 2)
	assert.Equal(t, Token{Term: "fox", Position: 0}, tokens[0])
	assert.Equal(t, Token{Term: "dog", Position: 1}, tokens[1])
}

func TestWordTokenizer_Deterministic(t *testing.T) {
	tok := NewWordTokenizer(DefaultOptions())
	text := "Distributed search engines process queries across multiple shards."
	assert.Equal(t, tok.Tokenize(text), tok.Tokenize(text))
}

func TestNew(t *testing.T) {
	tok, err := New(ModeWord, DefaultOptions())
	require.NoError(t, err)
	assert.IsType(t, &WordTokenizer{}, tok)

	tok, err = New("", DefaultOptions())
	require.NoError(t, err)
	assert.IsType(t, &WordTokenizer{}, tok)

	_, err = New("bigram", DefaultOptions())
	assert.Error(t, err)
}

func TestSegmenter_Tokenize(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the segmentation dictionary")
	}
	seg, err := NewSegmenter(DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, seg.Tokenize(""))

	terms := Terms(seg.Tokenize("今天天气很好，我们去公园散步。"))
	assert.NotEmpty(t, terms)
	for _, term := range terms {
		assert.NotContains(t, term, "，")
		assert.NotContains(t, term, "。")
		assert.GreaterOrEqual(t, len([]rune(term)), DefaultMinTermLength)
	}

	assert.Equal(t, terms, Terms(seg.Tokenize("今天天气很好，我们去公园散步。")))
	assert.NotEmpty(t, seg.Tokenize("我"))
	assert.Contains(t, Terms(seg.Tokenize("Hello 世界")), "hello")
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, "word:min=2:stop=false:stem=false", Fingerprint("", DefaultOptions()))
	assert.NotEqual(t,
		Fingerprint(ModeSegment, DefaultOptions()),
		Fingerprint(ModeSegment, Options{MinTermLength: 2, Stem: true}),
	)
}
