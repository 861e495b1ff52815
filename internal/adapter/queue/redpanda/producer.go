// Package redpanda carries score-session tasks from the turn pipeline to the
// background scoring worker over Redpanda/Kafka.
package redpanda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/internal/observability"
)

// TopicScore is the topic scoring tasks travel on.
const TopicScore = "score-sessions"

// Producer implements domain.Queue on a franz-go client. Enqueue is
// synchronous: the turn pipeline treats a failed publish as best-effort and
// only logs it, so there is no point buffering.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer connects to the brokers and ensures the topic exists.
func NewProducer(brokers []string) (*Producer, error) {
	return newProducerWithTopic(brokers, TopicScore)
}

func newProducerWithTopic(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("op=queue.new_producer: no seed brokers")
	}

	kotelService := kotel.NewKotel(kotel.WithTracer(
		kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider())),
	))
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.WithHooks(kotelService.Hooks()...),
		kgo.RequestRetries(10),
	)
	if err != nil {
		return nil, fmt.Errorf("op=queue.new_producer: %w", err)
	}

	if err := createTopicIfNotExists(context.Background(), client, topic, 4, 1); err != nil {
		slog.Warn("topic creation failed, continuing",
			slog.String("topic", topic), slog.Any("error", err))
	}
	return &Producer{client: client, topic: topic}, nil
}

// EnqueueScore publishes one scoring task keyed by session id so tasks for
// the same session stay ordered. Returns the generated task id.
func (p *Producer) EnqueueScore(ctx domain.Context, payload domain.ScoreTaskPayload) (string, error) {
	log := observability.LoggerFromContext(ctx)
	if payload.SessionID == "" {
		return "", fmt.Errorf("op=queue.enqueue_score: session id is required: %w", domain.ErrInvalidArgument)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("op=queue.enqueue_score: marshal: %w", err)
	}

	taskID := uuid.New().String()
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(payload.SessionID),
		Value: b,
		Headers: []kgo.RecordHeader{
			{Key: "task_id", Value: []byte(taskID)},
			{Key: "request_id", Value: []byte(observability.RequestIDFromContext(ctx))},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return "", fmt.Errorf("op=queue.enqueue_score: produce: %w", err)
	}

	log.Info("scoring task enqueued",
		"session_id", payload.SessionID, "task_id", taskID, "topic", p.topic)
	return taskID, nil
}

// Close flushes and closes the underlying client.
func (p *Producer) Close() error {
	if err := p.client.Flush(context.Background()); err != nil {
		return fmt.Errorf("op=queue.close: flush: %w", err)
	}
	p.client.Close()
	return nil
}
