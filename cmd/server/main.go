// Command server starts the interview-engine HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blairify/interview-engine/internal/adapter/ai"
	"github.com/blairify/interview-engine/internal/adapter/cache"
	"github.com/blairify/interview-engine/internal/adapter/httpserver"
	"github.com/blairify/interview-engine/internal/adapter/observability"
	"github.com/blairify/interview-engine/internal/adapter/queue/redpanda"
	"github.com/blairify/interview-engine/internal/adapter/repo/postgres"
	"github.com/blairify/interview-engine/internal/app"
	"github.com/blairify/interview-engine/internal/config"
	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/internal/usecase"
)

// redisAdapter narrows *redis.Client to the readiness interface.
type redisAdapter struct{ *redis.Client }

func (r redisAdapter) Ping(ctx context.Context) app.RedisPingResult { return r.Client.Ping(ctx) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL, cfg.ConnectMaxElapsedTime)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	questionRepo := postgres.NewQuestionRepo(pool)
	sessionRepo := postgres.NewSessionRepo(pool)

	producer, err := redpanda.NewProducer(cfg.KafkaBrokers)
	if err != nil {
		slog.Error("redpanda producer connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			slog.Error("failed to close queue producer", slog.Any("error", err))
		}
	}()

	// The usage cache is soft state: in dev without Redis, fall back to the
	// in-process cache rather than refusing to start.
	var usage domain.UsageCache
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		usage = cache.NewRedisUsageCache(rdb, cfg.QuestionCacheTTL)
	} else {
		usage = cache.NewMemoryUsageCache(cfg.QuestionCacheTTL)
		slog.Warn("redis not configured, using in-process usage cache")
	}

	var gen domain.Generator
	if cfg.MistralAPIKey == "" && cfg.IsDev() {
		gen = ai.NewStub()
		slog.Warn("MISTRAL_API_KEY not set, using stub generation")
	} else {
		gen = ai.New(cfg)
	}

	selector := usecase.NewQuestionSelector(questionRepo, usage, cfg.QuestionPoolSize)
	turn := usecase.NewTurn(gen, sessionRepo, producer, questionRepo, selector, cfg.GenTimeout)

	var redisCheck app.RedisPinger
	if rdb != nil {
		redisCheck = redisAdapter{rdb}
	}
	dbCheck, cacheCheck := app.BuildReadinessChecks(pool, redisCheck)

	srv := httpserver.NewServer(cfg, turn, selector, sessionRepo, dbCheck, cacheCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
