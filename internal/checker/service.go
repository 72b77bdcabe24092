package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/batch"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/cache"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/report"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/resilience"
)

// ReportStore persists and loads reports.
type ReportStore interface {
	Save(ctx context.Context, r report.Report) error
	Get(ctx context.Context, id uuid.UUID) (*report.Report, error)
	ListByPair(ctx context.Context, hashA, hashB string, limit int) ([]report.Report, error)
}

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// NewEngine builds the similarity engine described by cfg and returns it
// with the fingerprint of its tokenizer configuration.
func NewEngine(cfg config.SimilarityConfig) (*similarity.Engine, string, error) {
	opts := tokenizer.Options{
		MinTermLength: cfg.MinTermLength,
		StopWords:     cfg.StopWords,
		Stem:          cfg.Stem,
	}
	tok, err := tokenizer.New(cfg.Tokenizer, opts)
	if err != nil {
		return nil, "", fmt.Errorf("creating tokenizer: %w", err)
	}
	return similarity.NewEngine(tok), tokenizer.Fingerprint(cfg.Tokenizer, opts), nil
}

// Service scores document pairs, consulting the cache and recording reports
// when those are configured.
type Service struct {
	engine      *similarity.Engine
	fingerprint string
	cache       *cache.ResultCache
	store       ReportStore
	metrics     *metrics.Metrics
	retry       resilience.RetryConfig
	logger      *slog.Logger
}

// NewService creates a Service. resultCache, store and m may each be nil.
func NewService(
	engine *similarity.Engine,
	fingerprint string,
	resultCache *cache.ResultCache,
	store ReportStore,
	m *metrics.Metrics,
) *Service {
	return &Service{
		engine:      engine,
		fingerprint: fingerprint,
		cache:       resultCache,
		store:       store,
		metrics:     m,
		retry: resilience.RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     time.Second,
		},
		logger: logger.WithComponent("checker-service"),
	}
}

// Fingerprint identifies the tokenizer configuration behind every score.
func (s *Service) Fingerprint() string {
	return s.fingerprint
}

// Compare scores one pair. A report that cannot be stored is logged and the
// response is returned without an id.
func (s *Service) Compare(ctx context.Context, source string, req CompareRequest) (*CompareResponse, error) {
	log := logger.FromContext(ctx)
	originalHash := report.ContentHash(req.Original)
	candidateHash := report.ContentHash(req.Candidate)

	compute := func() (similarity.Result, error) {
		start := time.Now()
		result := s.engine.Compare(req.Original, req.Candidate)
		s.metrics.ObserveComparison(source, time.Since(start), result.Score, result.VocabularySize)
		return result, nil
	}

	var (
		result similarity.Result
		cached bool
		err    error
	)
	if s.cache != nil {
		key := cache.Key(s.fingerprint, originalHash, candidateHash)
		result, cached, err = s.cache.GetOrCompute(ctx, key, compute)
	} else {
		result, err = compute()
	}
	if err != nil {
		return nil, fmt.Errorf("comparing documents: %w", err)
	}

	resp := &CompareResponse{
		Score:          result.Score,
		Rounded:        result.Rounded,
		Display:        result.Display(),
		VocabularySize: result.VocabularySize,
		Cached:         cached,
	}
	if s.store != nil {
		rep := report.New(result, originalHash, candidateHash, s.fingerprint)
		err := resilience.Retry(ctx, "save-report", s.retry, func() error {
			err := s.store.Save(ctx, rep)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return resilience.Permanent(err)
			}
			return err
		})
		if err != nil {
			s.countReport("failure")
			log.Error("report not stored", "source", source, "error", err)
		} else {
			s.countReport("success")
			resp.ID = rep.ID.String()
		}
	}

	log.Info("documents compared",
		"source", source,
		"rounded", resp.Rounded,
		"vocabulary_size", resp.VocabularySize,
		"cached", cached,
	)
	return resp, nil
}

// CompareBatch scores every pair on at most workers goroutines. A failed pair
// is reported in its item and does not stop the others.
func (s *Service) CompareBatch(ctx context.Context, workers int, req BatchCompareRequest) (*BatchCompareResponse, error) {
	type indexed struct {
		index int
		pair  CompareRequest
	}
	items := make([]indexed, len(req.Pairs))
	for i, p := range req.Pairs {
		items[i] = indexed{index: i, pair: p}
	}
	results, err := batch.Map(ctx, workers, items, func(ctx context.Context, it indexed) (BatchItem, error) {
		resp, err := s.Compare(ctx, SourceBatch, it.pair)
		if err != nil {
			return BatchItem{Index: it.index, Error: err.Error()}, nil
		}
		return BatchItem{Index: it.index, CompareResponse: resp}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch compare: %w", err)
	}
	return &BatchCompareResponse{Results: results}, nil
}

// Report loads a stored report by its id string.
func (s *Service) Report(ctx context.Context, id string) (*report.Report, error) {
	if s.store == nil {
		return nil, apperrors.New(apperrors.ErrUnavailable, http.StatusServiceUnavailable, "report storage is disabled")
	}
	reportID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "invalid report id %q", id)
	}
	return s.store.Get(ctx, reportID)
}

// History lists the stored reports for a pair of content hashes, newest
// first. The pair is unordered.
func (s *Service) History(ctx context.Context, hashA, hashB string, limit int) ([]report.Report, error) {
	if s.store == nil {
		return nil, apperrors.New(apperrors.ErrUnavailable, http.StatusServiceUnavailable, "report storage is disabled")
	}
	if hashA == "" || hashB == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "both content hashes are required")
	}
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}
	reports, err := s.store.ListByPair(ctx, hashA, hashB, limit)
	if err != nil {
		return nil, fmt.Errorf("listing report history: %w", err)
	}
	if reports == nil {
		reports = []report.Report{}
	}
	return reports, nil
}

// CacheStats returns the result cache hit and miss counts, or false when no
// cache is configured.
func (s *Service) CacheStats() (hits, misses int64, enabled bool) {
	if s.cache == nil {
		return 0, 0, false
	}
	hits, misses = s.cache.Stats()
	return hits, misses, true
}

// InvalidateCache drops every cached result.
func (s *Service) InvalidateCache(ctx context.Context) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	return s.cache.Invalidate(ctx)
}

func (s *Service) countReport(status string) {
	if s.metrics != nil {
		s.metrics.ReportsStoredTotal.WithLabelValues(status).Inc()
	}
}
