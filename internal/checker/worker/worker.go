// Package worker scores compare jobs consumed from Kafka and publishes
// their results.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/validator"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/resilience"
)

// Publisher sends result events.
type Publisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

// Options tune job handling. Zero values disable the limit they name.
type Options struct {
	MaxDocumentBytes int64
	JobTimeout       time.Duration
	PublishRetry     resilience.RetryConfig
}

type Worker struct {
	service   *checker.Service
	publisher Publisher
	metrics   *metrics.Metrics
	opts      Options
	logger    *slog.Logger
}

// New creates a Worker. m may be nil.
func New(svc *checker.Service, pub Publisher, m *metrics.Metrics, opts Options) *Worker {
	return &Worker{
		service:   svc,
		publisher: pub,
		metrics:   m,
		opts:      opts,
		logger:    logger.WithComponent("compare-worker"),
	}
}

// HandleMessage is a kafka.MessageHandler. Undecodable or invalid jobs are
// dropped so they do not block the partition; invalid ones still get a
// result event carrying the error. Comparison timeouts and publish failures
// are returned, so the consumer retries the message in place and does not
// commit it.
func (w *Worker) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	log := logger.FromContext(ctx)
	job, err := kafka.DecodeJSON[checker.CompareJob](value)
	if err != nil {
		log.Error("failed to decode compare job", "error", err, "key", string(key))
		w.count("invalid")
		return nil
	}
	if job.JobID == "" {
		job.JobID = string(key)
	}

	req := checker.CompareRequest{Original: job.Original, Candidate: job.Candidate}
	if err := validator.ValidateCompareRequest(&req, w.opts.MaxDocumentBytes); err != nil {
		log.Warn("rejecting compare job", "job_id", job.JobID, "error", err)
		w.count("invalid")
		return w.publish(ctx, checker.CompareResult{
			JobID:       job.JobID,
			Error:       err.Error(),
			CompletedAt: time.Now().UTC(),
		})
	}

	var resp *checker.CompareResponse
	err = resilience.WithTimeout(ctx, w.opts.JobTimeout, "compare-job", func(ctx context.Context) error {
		r, err := w.service.Compare(ctx, checker.SourceWorker, req)
		resp = r
		return err
	})
	if err != nil {
		w.count("failure")
		return fmt.Errorf("comparing job %s: %w", job.JobID, err)
	}

	result := checker.CompareResult{
		JobID:       job.JobID,
		ReportID:    resp.ID,
		Score:       resp.Score,
		Rounded:     resp.Rounded,
		Display:     resp.Display,
		CompletedAt: time.Now().UTC(),
	}
	if err := w.publish(ctx, result); err != nil {
		w.count("failure")
		return err
	}
	w.count("success")
	log.Info("compare job processed",
		"job_id", job.JobID,
		"report_id", resp.ID,
		"rounded", resp.Rounded,
	)
	return nil
}

func (w *Worker) publish(ctx context.Context, result checker.CompareResult) error {
	err := resilience.Retry(ctx, "publish-result", w.opts.PublishRetry, func() error {
		return w.publisher.Publish(ctx, kafka.Event{Key: result.JobID, Value: result})
	})
	if err != nil {
		return fmt.Errorf("publishing result for job %s: %w", result.JobID, err)
	}
	return nil
}

func (w *Worker) count(status string) {
	if w.metrics != nil {
		w.metrics.JobsProcessedTotal.WithLabelValues(status).Inc()
	}
}
