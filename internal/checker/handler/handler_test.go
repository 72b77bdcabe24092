package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/report"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/errors"
)

type memStore struct {
	mu      sync.Mutex
	reports map[uuid.UUID]report.Report
}

func (m *memStore) Save(_ context.Context, r report.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.ID] = r
	return nil
}

func (m *memStore) Get(_ context.Context, id uuid.UUID) (*report.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, apperrors.ErrReportNotFound
	}
	return &r, nil
}

func (m *memStore) ListByPair(_ context.Context, hashA, hashB string, limit int) ([]report.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []report.Report
	for _, r := range m.reports {
		if (r.OriginalHash == hashA && r.CandidateHash == hashB) || (r.OriginalHash == hashB && r.CandidateHash == hashA) {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	return newTestMuxWith(t, config.ServerConfig{MaxBodyBytes: 64}, config.BatchConfig{Workers: 2, MaxPairs: 3})
}

func newTestMuxWith(t *testing.T, server config.ServerConfig, batch config.BatchConfig) *http.ServeMux {
	t.Helper()
	engine, fp, err := checker.NewEngine(config.SimilarityConfig{Tokenizer: "word", MinTermLength: 2})
	require.NoError(t, err)
	svc := checker.NewService(engine, fp, nil, &memStore{reports: map[uuid.UUID]report.Report{}}, nil)
	h := New(svc, server, batch)
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCompare(t *testing.T) {
	mux := newTestMux(t)

	rec := do(mux, http.MethodPost, "/api/v1/compare", `{"original":"the cat sat on the mat","candidate":"the cat sat on the rug"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp checker.CompareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.78, resp.Rounded)
	assert.Equal(t, "Similarity score: 0.78", resp.Display)
	require.NotEmpty(t, resp.ID)

	rec = do(mux, http.MethodGet, "/api/v1/reports/"+resp.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, resp.ID, rep.ID.String())
	assert.Equal(t, 0.78, rep.Rounded)
}

func TestCompare_BadRequests(t *testing.T) {
	mux := newTestMux(t)

	tests := map[string]struct {
		body   string
		status int
	}{
		"invalid-json":   {body: `{"original":`, status: http.StatusBadRequest},
		"document-limit": {body: `{"original":"` + strings.Repeat("a", 65) + `","candidate":""}`, status: http.StatusBadRequest},
		"body-limit":     {body: `{"original":"` + strings.Repeat("a", 5000) + `"}`, status: http.StatusRequestEntityTooLarge},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := do(mux, http.MethodPost, "/api/v1/compare", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCompare_EmptyDocumentsScoreZero(t *testing.T) {
	rec := do(newTestMux(t), http.MethodPost, "/api/v1/compare", `{"original":"","candidate":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp checker.CompareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Similarity score: 0.00", resp.Display)
}

func TestCompareBatch(t *testing.T) {
	mux := newTestMux(t)

	rec := do(mux, http.MethodPost, "/api/v1/compare/batch",
		`{"pairs":[{"original":"hello world","candidate":"hello world"},{"original":"alpha","candidate":"omega"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp checker.BatchCompareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 1.0, resp.Results[0].Rounded)
	assert.Equal(t, 0.0, resp.Results[1].Rounded)

	rec = do(mux, http.MethodPost, "/api/v1/compare/batch", `{"pairs":[{},{},{},{}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at most 3 pairs")
}

func TestGetReport_Errors(t *testing.T) {
	mux := newTestMux(t)

	rec := do(mux, http.MethodGet, "/api/v1/reports/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(mux, http.MethodGet, "/api/v1/reports/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "report not found")
}

func TestCacheStats_Disabled(t *testing.T) {
	rec := do(newTestMux(t), http.MethodGet, "/api/v1/cache/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["enabled"])
	assert.Equal(t, 0.0, body["hit_rate"])
}

func TestInvalidateCache_Disabled(t *testing.T) {
	rec := do(newTestMux(t), http.MethodDelete, "/api/v1/cache", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"keys_deleted":0}`, rec.Body.String())
}

func TestListReports(t *testing.T) {
	mux := newTestMux(t)

	rec := do(mux, http.MethodPost, "/api/v1/compare", `{"original":"alpha beta","candidate":"beta gamma"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	path := "/api/v1/reports?original_hash=" + report.ContentHash("beta gamma") +
		"&candidate_hash=" + report.ContentHash("alpha beta")
	rec = do(mux, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Reports []report.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Reports, 1)

	rec = do(mux, http.MethodGet, path+"&limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(mux, http.MethodGet, "/api/v1/reports?original_hash=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "both content hashes are required")
}

func TestCompareBatch_FullBatchAtDocumentLimit(t *testing.T) {
	const maxDoc = 4096
	mux := newTestMuxWith(t, config.ServerConfig{MaxBodyBytes: maxDoc}, config.BatchConfig{Workers: 2, MaxPairs: 3})

	doc := strings.Repeat("word ", maxDoc/5)
	pair := `{"original":"` + doc + `","candidate":"` + doc + `"}`
	body := `{"pairs":[` + pair + `,` + pair + `,` + pair + `]}`
	require.Greater(t, len(body), 2*maxDoc+4096)

	rec := do(mux, http.MethodPost, "/api/v1/compare/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp checker.BatchCompareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)
	assert.Equal(t, 1.0, resp.Results[0].Rounded)

	oversized := strings.Repeat("a", maxDoc+1)
	rec = do(mux, http.MethodPost, "/api/v1/compare/batch", `{"pairs":[{"original":"`+oversized+`"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "pairs[0].original")
}
