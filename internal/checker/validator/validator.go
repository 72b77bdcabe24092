// Package validator checks compare requests before they reach the engine.
// Empty documents are valid and simply score zero.
package validator

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker"
)

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s:%s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// ValidateCompareRequest checks that both documents are valid UTF-8 and at
// most maxBytes long. A maxBytes of zero disables the length check.
func ValidateCompareRequest(req *checker.CompareRequest, maxBytes int64) error {
	errs := make(map[string]string)
	checkPair(errs, "", req, maxBytes)
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// ValidateBatchRequest checks the pair count against maxPairs and every pair
// as ValidateCompareRequest does.
func ValidateBatchRequest(req *checker.BatchCompareRequest, maxPairs int, maxBytes int64) error {
	errs := make(map[string]string)
	switch {
	case len(req.Pairs) == 0:
		errs["pairs"] = "at least one pair is required"
	case maxPairs > 0 && len(req.Pairs) > maxPairs:
		errs["pairs"] = fmt.Sprintf("at most %d pairs are allowed", maxPairs)
	default:
		for i := range req.Pairs {
			checkPair(errs, fmt.Sprintf("pairs[%d].", i), &req.Pairs[i], maxBytes)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func checkPair(errs map[string]string, prefix string, req *checker.CompareRequest, maxBytes int64) {
	checkText(errs, prefix+"original", req.Original, maxBytes)
	checkText(errs, prefix+"candidate", req.Candidate, maxBytes)
}

func checkText(errs map[string]string, field, text string, maxBytes int64) {
	if !utf8.ValidString(text) {
		errs[field] = "must be valid UTF-8"
		return
	}
	if maxBytes > 0 && int64(len(text)) > maxBytes {
		errs[field] = fmt.Sprintf("must be at most %d bytes", maxBytes)
	}
}
