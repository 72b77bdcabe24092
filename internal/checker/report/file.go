package report

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"unicode/utf8"

	apperrors "github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText loads a UTF-8 document from path. A leading byte-order mark is
// dropped; any other invalid encoding is rejected as malformed text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read file %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", apperrors.Newf(apperrors.ErrMalformedText, http.StatusBadRequest, "%s is not valid UTF-8", path)
	}
	return string(data), nil
}

// WriteFile writes the report's display line to path, replacing any
// previous content.
func WriteFile(path string, r Report) error {
	if err := os.WriteFile(path, []byte(r.Display()+"\n"), 0o644); err != nil {
		return fmt.Errorf("could not write result file %s: %w", path, err)
	}
	return nil
}
