package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker"
)

func TestValidateCompareRequest(t *testing.T) {
	tests := map[string]struct {
		req    checker.CompareRequest
		fields []string
	}{
		"valid": {
			req: checker.CompareRequest{Original: "今天是星期天", Candidate: "today is sunday"},
		},
		"empty-documents-allowed": {
			req: checker.CompareRequest{},
		},
		"invalid-utf8": {
			req:    checker.CompareRequest{Original: "ok", Candidate: string([]byte{0xff, 0xfe})},
			fields: []string{"candidate"},
		},
		"too-long": {
			req:    checker.CompareRequest{Original: strings.Repeat("a", 11), Candidate: strings.Repeat("b", 11)},
			fields: []string{"original", "candidate"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateCompareRequest(&tt.req, 10)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Fields, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestValidateCompareRequest_NoLimit(t *testing.T) {
	req := checker.CompareRequest{Original: strings.Repeat("a", 1<<16)}
	assert.NoError(t, ValidateCompareRequest(&req, 0))
}

func TestValidateBatchRequest(t *testing.T) {
	var verr *ValidationError

	err := ValidateBatchRequest(&checker.BatchCompareRequest{}, 5, 0)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "pairs")

	tooMany := checker.BatchCompareRequest{Pairs: make([]checker.CompareRequest, 6)}
	err = ValidateBatchRequest(&tooMany, 5, 0)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "at most 5 pairs are allowed", verr.Fields["pairs"])

	bad := checker.BatchCompareRequest{Pairs: []checker.CompareRequest{
		{Original: "a", Candidate: "b"},
		{Original: string([]byte{0xc3}), Candidate: "b"},
	}}
	err = ValidateBatchRequest(&bad, 5, 0)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "pairs[1].original")
	assert.Equal(t, "pairs[1].original:must be valid UTF-8", err.Error())

	assert.NoError(t, ValidateBatchRequest(&checker.BatchCompareRequest{Pairs: bad.Pairs[:1]}, 5, 0))
}
