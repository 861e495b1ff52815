// Command worker consumes score-session tasks from Redpanda and writes
// per-response and session-aggregate scores.
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

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blairify/interview-engine/internal/adapter/observability"
	"github.com/blairify/interview-engine/internal/adapter/queue/redpanda"
	"github.com/blairify/interview-engine/internal/adapter/repo/postgres"
	"github.com/blairify/interview-engine/internal/config"
	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	// Dedicated metrics endpoint; the worker serves no other HTTP traffic.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.WorkerMetricsPort), mux); err != nil { //nolint:gosec // Internal metrics listener.
			slog.Error("worker metrics server error", slog.Any("error", err))
		}
	}()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	slog.Info("starting worker", slog.String("env", cfg.AppEnv))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DBURL, cfg.ConnectMaxElapsedTime)
	if err != nil {
		slog.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	scorer := usecase.NewScorer(postgres.NewSessionRepo(pool))

	consumer, err := redpanda.NewConsumer(cfg.KafkaBrokers, cfg.ConsumerGroup,
		func(ctx context.Context, payload domain.ScoreTaskPayload) error {
			return scorer.ScoreSessionByID(ctx, payload.SessionID)
		})
	if err != nil {
		slog.Error("consumer init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer consumer.Close()

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("consumer stopped", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("worker shut down")
}
