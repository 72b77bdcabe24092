// Package tokenizer turns raw document text into an ordered sequence of
// terms. Text is NFKC-normalised and lower-cased, split into words (either
// on letter/digit boundaries or by dictionary segmentation for scripts
// without spaces), and filtered by a shared term filter.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	ModeWord    = "word"
	ModeSegment = "segment"
)

// DefaultMinTermLength drops single-character terms unless a document has
// nothing else.
const DefaultMinTermLength = 2

// Token represents a single normalised term and its position in the
// token sequence.
type Token struct {
	Term     string
	Position int
}

// Tokenizer produces a deterministic token sequence for a text. Implementations
// must be safe for concurrent use and must not mutate shared state.
type Tokenizer interface {
	Tokenize(text string) []Token
}

// Options configures the term filter applied after word breaking.
type Options struct {
	MinTermLength int
	StopWords     bool
	Stem          bool
}

// DefaultOptions returns the filter settings used when none are configured.
func DefaultOptions() Options {
	return Options{MinTermLength: DefaultMinTermLength}
}

// New builds the tokenizer for the given mode. The segment mode loads its
// dictionary here, so callers should construct it once and share it.
func New(mode string, opts Options) (Tokenizer, error) {
	switch mode {
	case ModeWord, "":
		return NewWordTokenizer(opts), nil
	case ModeSegment:
		return NewSegmenter(opts)
	default:
		return nil, fmt.Errorf("unknown tokenizer mode %q", mode)
	}
}

// Terms returns just the term strings of tokens.
func Terms(tokens []Token) []string {
	terms := make([]string, len(tokens))
	for i, t := range tokens {
		terms[i] = t.Term
	}
	return terms
}

// WordTokenizer splits text on every rune that is neither a letter nor a
// digit.
type WordTokenizer struct {
	opts Options
}

func NewWordTokenizer(opts Options) *WordTokenizer {
	return &WordTokenizer{opts: opts}
}

func (w *WordTokenizer) Tokenize(text string) []Token {
	return w.opts.filter(splitWords(normalize(text)))
}

// normalize folds compatibility forms (full-width letters, ligatures) and
// lower-cases the text. A Caser is stateful, so one is created per call.
func normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFKC.String(text)
	return cases.Lower(language.Und).String(text)
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, isBoundary)
}

func isBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// filter applies length, stop-word and stemming rules and assigns positions
// in order of appearance. When the length rule alone would leave a document
// with no terms, its short terms are kept so a non-empty document never
// vectorizes to zero.
func (o Options) filter(words []string) []Token {
	minLen := o.MinTermLength
	if minLen < 1 {
		minLen = 1
	}
	tokens := o.filterWith(words, minLen)
	if len(tokens) == 0 && minLen > 1 {
		tokens = o.filterWith(words, 1)
	}
	return tokens
}

func (o Options) filterWith(words []string, minLen int) []Token {
	tokens := make([]Token, 0, len(words))
	pos := 0
	for _, word := range words {
		if o.StopWords {
			if _, isStop := stopWords[word]; isStop {
				continue
			}
		}
		if o.Stem {
			word = stem(word)
		}
		if utf8.RuneCountInString(word) < minLen {
			continue
		}
		tokens = append(tokens, Token{
			Term:     word,
			Position: pos,
		})
		pos++
	}
	return tokens
}

// Fingerprint identifies a tokenizer configuration. Scores are only
// comparable between runs with equal fingerprints.
func Fingerprint(mode string, opts Options) string {
	if mode == "" {
		mode = ModeWord
	}
	return fmt.Sprintf("%s:min=%d:stop=%t:stem=%t", mode, opts.MinTermLength, opts.StopWords, opts.Stem)
}
