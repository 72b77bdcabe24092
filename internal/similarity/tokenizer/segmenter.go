package tokenizer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-ego/gse"
)

// Segmenter breaks text into words with a dictionary plus HMM model, for
// scripts such as Chinese that have no whitespace between words. Latin words
// inside mixed text come out of the segmenter intact.
//
// The dictionary is loaded once by NewSegmenter and is read-only afterwards,
// so a single Segmenter can be shared by every comparison.
type Segmenter struct {
	seg  gse.Segmenter
	opts Options
}

// NewSegmenter loads the embedded Chinese dictionary.
func NewSegmenter(opts Options) (*Segmenter, error) {
	start := time.Now()
	s := &Segmenter{opts: opts}
	if err := s.seg.LoadDictEmbed(); err != nil {
		return nil, fmt.Errorf("loading segmentation dictionary: %w", err)
	}
	slog.Default().With("component", "tokenizer").Info("segmentation dictionary loaded",
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return s, nil
}

func (s *Segmenter) Tokenize(text string) []Token {
	text = normalize(text)
	if text == "" {
		return []Token{}
	}
	segments := s.seg.Cut(text, true)
	words := make([]string, 0, len(segments))
	for _, segment := range segments {
		// Segments may carry whitespace or punctuation; only the letter and
		// digit runs become terms.
		words = append(words, splitWords(segment)...)
	}
	return s.opts.filter(words)
}
