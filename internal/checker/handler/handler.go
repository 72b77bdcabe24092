// Package handler exposes the checker service over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/validator"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/logger"
)

type Handler struct {
	service      *checker.Service
	maxBodyBytes int64
	maxPairs     int
	workers      int
	logger       *slog.Logger
}

func New(svc *checker.Service, server config.ServerConfig, batch config.BatchConfig) *Handler {
	return &Handler{
		service:      svc,
		maxBodyBytes: server.MaxBodyBytes,
		maxPairs:     batch.MaxPairs,
		workers:      batch.Workers,
		logger:       logger.WithComponent("checker-handler"),
	}
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/compare", h.Compare)
	mux.HandleFunc("POST /api/v1/compare/batch", h.CompareBatch)
	mux.HandleFunc("GET /api/v1/reports", h.ListReports)
	mux.HandleFunc("GET /api/v1/reports/{id}", h.GetReport)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("DELETE /api/v1/cache", h.InvalidateCache)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req checker.CompareRequest
	if !h.decode(w, r, &req, 1) {
		return
	}
	if err := validator.ValidateCompareRequest(&req, h.maxBodyBytes); err != nil {
		h.writeValidationError(w, err)
		return
	}
	resp, err := h.service.Compare(ctx, checker.SourceHTTP, req)
	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		log.Error("compare failed", "error", err, "status_code", status)
		h.writeError(w, status, "compare failed")
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CompareBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req checker.BatchCompareRequest
	if !h.decode(w, r, &req, h.maxPairs) {
		return
	}
	if err := validator.ValidateBatchRequest(&req, h.maxPairs, h.maxBodyBytes); err != nil {
		h.writeValidationError(w, err)
		return
	}
	resp, err := h.service.CompareBatch(ctx, h.workers, req)
	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		log.Error("batch compare failed", "error", err, "pairs", len(req.Pairs))
		h.writeError(w, status, "batch compare failed")
		return
	}
	log.Info("batch compared", "pairs", len(req.Pairs))
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rep, err := h.service.Report(ctx, r.PathValue("id"))
	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		if status >= http.StatusInternalServerError {
			logger.FromContext(ctx).Error("report lookup failed", "error", err)
		}
		h.writeError(w, status, errorMessage(err))
		return
	}
	h.writeJSON(w, http.StatusOK, rep)
}

// ListReports returns the stored history of one document pair, addressed by
// the content hashes of its two documents.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	reports, err := h.service.History(ctx, q.Get("original_hash"), q.Get("candidate_hash"), limit)
	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		if status >= http.StatusInternalServerError {
			logger.FromContext(ctx).Error("report history failed", "error", err)
		}
		h.writeError(w, status, errorMessage(err))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	hits, misses, enabled := h.service.CacheStats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"enabled":  enabled,
		"hits":     hits,
		"misses":   misses,
		"hit_rate": hitRate,
	})
}

func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.InvalidateCache(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"keys_deleted": deleted})
}

// decode reads a JSON body holding up to pairs document pairs. The cap
// leaves room for every document at the per-document limit plus framing, so
// the validator and not the reader reports oversized documents.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any, pairs int) bool {
	if h.maxBodyBytes > 0 {
		if pairs < 1 {
			pairs = 1
		}
		r.Body = http.MaxBytesReader(w, r.Body, int64(pairs)*(2*h.maxBodyBytes+4096))
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
		return
	}
	h.writeError(w, http.StatusBadRequest, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if errors.Is(err, apperrors.ErrReportNotFound) {
		return apperrors.ErrReportNotFound.Error()
	}
	return "internal error"
}
