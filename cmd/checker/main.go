// Command checker serves document similarity scoring over HTTP.
//
// Redis result caching and PostgreSQL report storage are optional: when
// either is disabled or unreachable the service keeps scoring and reports
// the dependency as degraded on GET /health/ready.
//
// Usage:
//
//	go run ./cmd/checker [-config configs/development.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/cache"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/handler"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/report"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/middleware"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/redis"
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
	slog.Info("starting checker service", "port", cfg.Server.Port, "tokenizer", cfg.Similarity.Tokenizer)

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
	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, result caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			resultCache = cache.New(redisClient, cfg.Redis.CacheTTL, m)
			slog.Info("result cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	var store checker.ReportStore
	var db *postgres.Client
	if cfg.Postgres.Enabled {
		db, err = postgres.New(cfg.Postgres)
		if err != nil {
			slog.Warn("postgres unavailable, reports will not be stored", "error", err)
		} else {
			defer db.Close()
			reportStore := report.NewStore(db)
			if err := reportStore.EnsureSchema(ctx); err != nil {
				slog.Error("failed to prepare report schema", "error", err)
				os.Exit(1)
			}
			store = reportStore
			slog.Info("report store enabled", "host", cfg.Postgres.Host, "database", cfg.Postgres.Database)
		}
	}

	svc := checker.NewService(engine, fingerprint, resultCache, store, m)
	h := handler.New(svc, cfg.Server, cfg.Batch)

	hc := health.NewChecker()
	hc.Register("engine", func(ctx context.Context) health.ComponentHealth {
		return health.ComponentHealth{Status: health.StatusUp, Message: svc.Fingerprint()}
	})
	var redisPing, postgresPing func(context.Context) error
	if redisClient != nil {
		redisPing = redisClient.Ping
	}
	if db != nil {
		postgresPing = db.Ping
	}
	hc.Register("redis", health.Optional(redisPing))
	hc.Register("postgres", health.Optional(postgresPing))

	mux := http.NewServeMux()
	h.Register(mux)
	mux.HandleFunc("GET /health/live", hc.LiveHandler())
	mux.HandleFunc("GET /health/ready", hc.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	if cfg.Server.RateLimit > 0 {
		proxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
		if err != nil {
			slog.Error("invalid server.trustedProxies", "error", err)
			os.Exit(1)
		}
		limiter := middleware.NewLimiter(ctx, cfg.Server.RateLimit, cfg.Server.RateLimitWindow)
		chain = middleware.RateLimit(limiter, proxies)(chain)
	}
	if len(cfg.Server.CORSOrigins) > 0 {
		chain = middleware.CORS(cfg.Server.CORSOrigins)(chain)
	}
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("checker service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("checker service stopped")
}
