// Command worker consumes compare jobs from Kafka, scores them, stores the
// reports in PostgreSQL and publishes the results to the results topic.
//
// Usage:
//
//	go run ./cmd/worker [-config configs/development.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/cache"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/report"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/worker"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting compare worker", "tokenizer", cfg.Similarity.Tokenizer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, fingerprint, err := checker.NewEngine(cfg.Similarity)
	if err != nil {
		slog.Error("failed to create similarity engine", "error", err)
		os.Exit(1)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer shutdownMetrics(context.Background())
	}

	var resultCache *cache.ResultCache
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, result caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			resultCache = cache.New(redisClient, cfg.Redis.CacheTTL, m)
		}
	}

	var store checker.ReportStore
	if cfg.Postgres.Enabled {
		db, err := postgres.New(cfg.Postgres)
		if err != nil {
			slog.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		reportStore := report.NewStore(db)
		if err := reportStore.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare report schema", "error", err)
			os.Exit(1)
		}
		store = reportStore
	}

	producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.CompareResults)
	defer producer.Close()

	svc := checker.NewService(engine, fingerprint, resultCache, store, m)
	w := worker.New(svc, producer, m, worker.Options{
		MaxDocumentBytes: cfg.Server.MaxBodyBytes,
		JobTimeout:       cfg.Worker.JobTimeout,
		PublishRetry: resilience.RetryConfig{
			MaxAttempts:  5,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     5 * time.Second,
		},
	})
	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.CompareRequests, w.HandleMessage)

	slog.Info("compare worker ready, consuming from kafka",
		"topic", cfg.Kafka.Topics.CompareRequests,
		"results_topic", cfg.Kafka.Topics.CompareResults,
		"group", cfg.Kafka.ConsumerGroup,
	)
	if err := consumer.Start(ctx); err != nil {
		slog.Error("consumer error", "error", err)
	}
	slog.Info("compare worker stopped")
}
